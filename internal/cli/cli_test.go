package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// runCLI executes one command against a workspace dir and decodes the JSON
// envelope from stdout.
func runCLI(t *testing.T, dir string, args ...string) (map[string]any, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--dir", dir}, args...))

	err := cmd.Execute()
	if err != nil {
		return nil, err
	}
	var env map[string]any
	if s := strings.TrimSpace(out.String()); s != "" {
		if jerr := json.Unmarshal([]byte(s), &env); jerr != nil {
			t.Fatalf("stdout is not JSON: %v\n%s", jerr, s)
		}
	}
	return env, nil
}

func data(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	d, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("no data object in %v", env)
	}
	return d
}

func captureOne(t *testing.T, dir, title string, extra ...string) string {
	t.Helper()
	env, err := runCLI(t, dir, append([]string{"capture", title}, extra...)...)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	id, _ := data(t, env)["id"].(string)
	if id == "" {
		t.Fatalf("capture returned no id: %v", env)
	}
	return id
}

func TestCaptureListFlow(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	id := captureOne(t, dir, "write the talk abstract")
	captureOne(t, dir, "sharpen pencils", "--deferred")

	env, err := runCLI(t, dir, "list", "--bucket", "capture")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	items, ok := env["data"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("capture bucket: %v", env["data"])
	}

	env, err = runCLI(t, dir, "show", id)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if data(t, env)["title"] != "write the talk abstract" {
		t.Fatalf("show: %v", env)
	}

	if _, err := runCLI(t, dir, "show", "act-missing1"); err == nil {
		t.Fatal("show of unknown id succeeded")
	}
}

func TestScheduleTimeDoneFlow(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	id := captureOne(t, dir, "review budget")

	if _, err := runCLI(t, dir, "schedule", id, "2026-03-10"); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	env, err := runCLI(t, dir, "time", id, "09:30", "--duration", "45")
	if err != nil {
		t.Fatalf("time: %v", err)
	}
	d := data(t, env)
	if d["time"] != "09:30" || d["durationMinutes"] != float64(45) {
		t.Fatalf("time result: %v", d)
	}

	// Setting a time on an unscheduled activity is refused with guidance.
	other := captureOne(t, dir, "someday maybe")
	if _, err := runCLI(t, dir, "time", other, "10:00"); err == nil {
		t.Fatal("time on an unscheduled activity succeeded")
	}

	env, err = runCLI(t, dir, "done", id)
	if err != nil {
		t.Fatalf("done: %v", err)
	}
	if data(t, env)["done"] != true {
		t.Fatalf("done result: %v", env)
	}

	// Done activities refuse bucket moves, with a reason in meta.
	env, err = runCLI(t, dir, "move", id, "capture")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if env["changed"] != false {
		t.Fatalf("move of done activity reported a change: %v", env)
	}
	meta, _ := env["meta"].(map[string]any)
	if meta == nil || meta["reason"] == "" {
		t.Fatalf("refusal carries no reason: %v", env)
	}
}

func TestDoneOnBucketItemSchedulesToday(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	id := captureOne(t, dir, "ship it")

	env, err := runCLI(t, dir, "done", id)
	if err != nil {
		t.Fatalf("done: %v", err)
	}
	d := data(t, env)
	if d["container"] != "scheduled" || d["date"] != time.Now().Format("2006-01-02") {
		t.Fatalf("completed bucket item: %v", d)
	}
}

func TestReorderCommand(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	a := captureOne(t, dir, "first")
	b := captureOne(t, dir, "second")

	env, err := runCLI(t, dir, "reorder", b, a, "--bucket", "capture")
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	items := env["data"].([]any)
	first := items[0].(map[string]any)
	if first["id"] != b {
		t.Fatalf("reorder result: %v", items)
	}

	if _, err := runCLI(t, dir, "reorder", a, b); err == nil {
		t.Fatal("reorder without --day/--bucket succeeded")
	}
}

func TestExportImportCommands(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	captureOne(t, dir, "survives the round trip")

	exportPath := filepath.Join(t.TempDir(), "backup.json")
	if _, err := runCLI(t, dir, "export", "-o", exportPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	fresh := t.TempDir()
	env, err := runCLI(t, fresh, "import", exportPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if env["activities"] != float64(1) {
		t.Fatalf("import envelope: %v", env)
	}

	env, err = runCLI(t, fresh, "list", "--bucket", "capture")
	if err != nil {
		t.Fatalf("list after import: %v", err)
	}
	if items := env["data"].([]any); len(items) != 1 {
		t.Fatalf("imported workspace: %v", env["data"])
	}
}

func TestImportErrorsAreDistinct(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	notJSON := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(notJSON, []byte("dear diary"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runCLI(t, dir, "import", notJSON)
	if err == nil || !strings.Contains(err.Error(), "not a JSON file") {
		t.Fatalf("non-JSON error: %v", err)
	}

	wrongShape := filepath.Join(t.TempDir(), "other.json")
	if err := os.WriteFile(wrongShape, []byte(`{"hello":"world"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = runCLI(t, dir, "import", wrongShape)
	if err == nil || !strings.Contains(err.Error(), "not a tempo snapshot") {
		t.Fatalf("wrong-shape error: %v", err)
	}
}

func TestEventsCommandRecordsMutations(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	id := captureOne(t, dir, "tracked")
	if _, err := runCLI(t, dir, "schedule", id, "2026-03-10"); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	env, err := runCLI(t, dir, "events")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	evs := env["data"].([]any)
	if len(evs) != 2 {
		t.Fatalf("got %d events", len(evs))
	}
	first := evs[0].(map[string]any)
	if first["type"] != "activity.create" {
		t.Fatalf("first event: %v", first)
	}
}

func TestWorkspaceCommands(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())

	env, err := runCLI(t, t.TempDir(), "workspace", "current")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if env["currentWorkspace"] != "default" {
		t.Fatalf("current: %v", env)
	}

	if _, err := runCLI(t, t.TempDir(), "workspace", "use", "side-project"); err != nil {
		t.Fatalf("use: %v", err)
	}
	env, err = runCLI(t, t.TempDir(), "workspace", "current")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if env["currentWorkspace"] != "side-project" {
		t.Fatalf("current after use: %v", env)
	}
}

func TestResolveDate(t *testing.T) {
	if got, err := resolveDate("2026-03-02"); err != nil || got != "2026-03-02" {
		t.Fatalf("literal: %v %v", got, err)
	}
	if got, err := resolveDate("today"); err != nil || got != time.Now().Format("2006-01-02") {
		t.Fatalf("today: %v %v", got, err)
	}
	if _, err := resolveDate("2026-3-2"); err == nil {
		t.Fatal("unpadded date accepted")
	}
	if _, err := resolveDate("someday"); err == nil {
		t.Fatal("nonsense accepted")
	}
}
