package store

import (
	"os"
	"path/filepath"
	"testing"
)

func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TEMPO_CONFIG_DIR", dir)
	return dir
}

func TestConfigRoundTrip(t *testing.T) {
	withConfigDir(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if cfg.CurrentWorkspace != "" {
		t.Fatalf("fresh config: %+v", cfg)
	}

	cfg.CurrentWorkspace = "work"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.CurrentWorkspace != "work" {
		t.Fatalf("reload: %+v", got)
	}
}

func TestWorkspaceDirUsesConfigDir(t *testing.T) {
	dir := withConfigDir(t)
	got, err := WorkspaceDir("home")
	if err != nil {
		t.Fatalf("workspace dir: %v", err)
	}
	if got != filepath.Join(dir, "workspaces", "home") {
		t.Fatalf("got %q", got)
	}
	if _, err := WorkspaceDir("   "); err == nil {
		t.Fatal("blank workspace name accepted")
	}
}

func TestListWorkspaces(t *testing.T) {
	dir := withConfigDir(t)

	names, err := ListWorkspaces()
	if err != nil || len(names) != 0 {
		t.Fatalf("empty list: %v %v", names, err)
	}

	for _, n := range []string{"b", "a"} {
		if err := os.MkdirAll(filepath.Join(dir, "workspaces", n), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	names, err = ListWorkspaces()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names: %v", names)
	}
}

func TestUIStateRoundTripAndBestEffortLoad(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	// Missing or corrupt files degrade to a fresh state, never an error.
	if st := s.LoadUIState(); st == nil || st.Version != 1 {
		t.Fatalf("fresh state: %+v", st)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, "ui_state.json"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if st := s.LoadUIState(); st == nil || st.SelectedDate != "" {
		t.Fatalf("corrupt state: %+v", st)
	}

	if err := s.SaveUIState(&UIState{SelectedDate: "2026-03-02", Column: "day"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	st := s.LoadUIState()
	if st.SelectedDate != "2026-03-02" || st.Column != "day" || st.Version != 1 {
		t.Fatalf("reload: %+v", st)
	}
}
