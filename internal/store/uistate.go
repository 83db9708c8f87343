package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const uiStateFileName = "ui_state.json"

// UIState stores small, user-facing UI state for restoring the last screen on
// relaunch. It lives inside the workspace dir so it is naturally scoped per
// workspace, and it is intentionally best-effort: callers tolerate missing or
// invalid data.
type UIState struct {
	Version int `json:"version"`

	// SelectedDate is the day the board last had focused (YYYY-MM-DD).
	SelectedDate string `json:"selectedDate,omitempty"`

	// Column is one of: capture|deferred|day
	Column string `json:"column,omitempty"`
}

func (s Store) uiStatePath() string {
	return filepath.Join(s.Dir, uiStateFileName)
}

func (s Store) LoadUIState() *UIState {
	b, err := os.ReadFile(s.uiStatePath())
	if err != nil {
		return &UIState{Version: 1}
	}
	var st UIState
	if err := json.Unmarshal(b, &st); err != nil {
		return &UIState{Version: 1}
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st
}

func (s Store) SaveUIState(st *UIState) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	st.Version = 1
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, uiStateFileName+".*.tmp", s.uiStatePath(), b, 0o644)
}
