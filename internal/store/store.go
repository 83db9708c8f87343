package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"tempo-cli/internal/model"
)

// SchemaVersion is the current snapshot schema version. It is embedded in
// both the payload and the snapshot file name, so a future schema bump can
// read the old file and write the new one side by side.
const SchemaVersion = 1

const snapshotFileName = "snapshot.v1.json"

// DB is the persisted snapshot: every activity plus the small amount of
// list/setting state the planner keeps.
type DB struct {
	Version    int              `json:"version"`
	Activities []model.Activity `json:"activities"`
	ListsMeta  ListsMeta        `json:"listsMeta"`
	Settings   Settings         `json:"settings"`
}

// ListsMeta holds per-bucket display metadata.
type ListsMeta struct {
	CaptureTitle  string `json:"captureTitle,omitempty"`
	DeferredTitle string `json:"deferredTitle,omitempty"`
}

// Settings are user preferences persisted alongside the activities.
type Settings struct {
	// WeekStart is "monday" or "sunday".
	WeekStart string `json:"weekStart,omitempty"`
	// TimeFormat is "24h" or "12h".
	TimeFormat string `json:"timeFormat,omitempty"`
	Theme      string `json:"theme,omitempty"`
}

func NewDB() *DB {
	return &DB{
		Version:    SchemaVersion,
		Activities: []model.Activity{},
		Settings:   Settings{WeekStart: "monday", TimeFormat: "24h"},
	}
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a project-local .tempo dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".tempo")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) snapshotPath() string {
	return filepath.Join(s.Dir, snapshotFileName)
}

// Load reads and validates the persisted snapshot. It returns nil when there
// is no usable prior state: missing file, unreadable storage, corrupt JSON,
// or a snapshot that fails validation. Callers must treat nil as "start from
// defaults", never as a fatal condition.
func (s Store) Load() *DB {
	b, err := os.ReadFile(s.snapshotPath())
	if err != nil {
		return nil
	}
	db, _ := decodeSnapshot(b)
	return db
}

// LoadOrDefault is Load with the default-state fallback applied.
func (s Store) LoadOrDefault() *DB {
	if db := s.Load(); db != nil {
		return db
	}
	return NewDB()
}

// Save serializes and writes the snapshot atomically (temp file + rename), so
// a crash mid-write never leaves a torn snapshot behind.
func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	db.Version = SchemaVersion
	b, err := json.Marshal(db)
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, snapshotFileName+".*.tmp", s.snapshotPath(), b, 0o644)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (db *DB) FindActivity(id string) (*model.Activity, bool) {
	for i := range db.Activities {
		if db.Activities[i].ID == id {
			return &db.Activities[i], true
		}
	}
	return nil, false
}

func (db *DB) RemoveActivity(id string) bool {
	for i := range db.Activities {
		if db.Activities[i].ID == id {
			db.Activities = append(db.Activities[:i], db.Activities[i+1:]...)
			return true
		}
	}
	return false
}

// BucketList returns the activities living in the given bucket, in input
// order. Callers pass the result through order.Bucket for display.
func (db *DB) BucketList(c model.Container) []model.Activity {
	var out []model.Activity
	for i := range db.Activities {
		if db.Activities[i].Container == c {
			out = append(out, db.Activities[i])
		}
	}
	return out
}

// DayList returns the activities scheduled on the given day, in input order.
func (db *DB) DayList(date string) []model.Activity {
	var out []model.Activity
	for i := range db.Activities {
		if db.Activities[i].ScheduledOn(date) {
			out = append(out, db.Activities[i])
		}
	}
	return out
}

// Clone returns a deep copy. The debounced saver snapshots state through this
// so in-flight writes never observe later mutations.
func (db *DB) Clone() *DB {
	out := &DB{
		Version:   db.Version,
		ListsMeta: db.ListsMeta,
		Settings:  db.Settings,
	}
	out.Activities = make([]model.Activity, len(db.Activities))
	for i, a := range db.Activities {
		out.Activities[i] = cloneActivity(a)
	}
	return out
}

func cloneActivity(a model.Activity) model.Activity {
	a.Date = cloneString(a.Date)
	a.Time = cloneString(a.Time)
	a.DurationMinutes = cloneInt(a.DurationMinutes)
	a.OrderIndex = cloneInt(a.OrderIndex)
	return a
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
