package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tareas/internal/app"
	"tareas/internal/config"
	"tareas/internal/exitcode"
	"tareas/internal/testutil"
)

var now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

type harness struct {
	t          *testing.T
	configPath string
	tuiRuns    int
	tuiSession *app.Session
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{t: t, configPath: filepath.Join(t.TempDir(), "config.toml")}
}

func (h *harness) run(args ...string) (stdout, stderr string, code int) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	env := Env{
		Stdout: &out,
		Stderr: &errOut,
		Now:    func() time.Time { return now },
		RunTUI: func(s *app.Session, cfg config.Config) error {
			h.tuiRuns++
			h.tuiSession = s
			return nil
		},
	}
	code = Execute(append([]string{"--config", h.configPath}, args...), env)
	return out.String(), errOut.String(), code
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	stdout, stderr, code := h.run(args...)
	if code != exitcode.Success {
		h.t.Fatalf("%v: exit %d, stderr %q", args, code, stderr)
	}
	return stdout
}

func (h *harness) seed() {
	h.t.Helper()
	h.mustRun("add", "-t", "Pay rent", "-d", "Monthly", "-c", "finance", "--date", "2024-05-10")
	h.mustRun("add", "--title", "Call mom", "--description", "Sunday", "--date", "2024-05-12")
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("add", "-t", "Pay rent", "-d", "Monthly", "-c", "finance", "--date", "2024-05-10")
	if out != "Tarea creada: \"Pay rent\" ha sido agregada exitosamente\n" {
		t.Errorf("unexpected add output %q", out)
	}
	h.mustRun("add", "--title", "Call mom", "--description", "Sunday", "--date", "2024-05-12")
	h.mustRun("done", "1715331600001")

	testutil.GoldenString(t, "list", h.mustRun("list"))
}

func TestListFilter(t *testing.T) {
	h := newHarness(t)
	h.seed()
	h.mustRun("done", "1715331600001")

	out := h.mustRun("list", "--filter", "in-progress")
	if !strings.Contains(out, "Pay rent") || strings.Contains(out, "Call mom") {
		t.Errorf("in-progress filter wrong:\n%s", out)
	}
	if !strings.Contains(out, "Total: 2 | En progreso: 1 | Completadas: 1") {
		t.Errorf("stats should count every task:\n%s", out)
	}

	if _, stderr, code := h.run("list", "--filter", "bogus"); code != exitcode.UserError || !strings.Contains(stderr, "unknown filter") {
		t.Errorf("expected user error for bad filter, got %d %q", code, stderr)
	}
}

func TestAddIncomplete(t *testing.T) {
	h := newHarness(t)
	_, stderr, code := h.run("add", "-t", "Only title")
	if code != exitcode.UserError {
		t.Fatalf("expected exit %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "Campos incompletos") {
		t.Errorf("expected incomplete-fields warning, got %q", stderr)
	}
	if out := h.mustRun("list"); !strings.Contains(out, "Total: 0") {
		t.Errorf("no task should exist:\n%s", out)
	}
}

func TestEditKeepsUnsetFields(t *testing.T) {
	h := newHarness(t)
	h.seed()
	out := h.mustRun("edit", "1715331600000", "--title", "Pay rent (late)")
	if out != "Tarea actualizada: Los cambios han sido guardados\n" {
		t.Errorf("unexpected edit output %q", out)
	}
	list := h.mustRun("list")
	if !strings.Contains(list, "[ ] 1715331600000  Pay rent (late)  #finance  Vence: 2024-05-10") {
		t.Errorf("edit result wrong:\n%s", list)
	}

	if _, _, code := h.run("edit", "1715331600000", "--description", " "); code != exitcode.UserError {
		t.Errorf("blank description should fail, got %d", code)
	}
	if _, _, code := h.run("edit", "42", "--title", "x"); code != exitcode.UserError {
		t.Errorf("unknown id should fail, got %d", code)
	}
}

func TestDoneTogglesAndReopens(t *testing.T) {
	h := newHarness(t)
	h.seed()
	if out := h.mustRun("done", "1715331600000"); !strings.Contains(out, "¡Tarea completada!") {
		t.Errorf("unexpected output %q", out)
	}
	if out := h.mustRun("toggle", "1715331600000"); !strings.Contains(out, "Tarea reabierta") {
		t.Errorf("unexpected output %q", out)
	}
	if _, stderr, code := h.run("done", "7"); code != exitcode.UserError || !strings.Contains(stderr, "not found") {
		t.Errorf("expected not found, got %d %q", code, stderr)
	}
	if _, stderr, code := h.run("done", "abc"); code != exitcode.UserError || !strings.Contains(stderr, "invalid task id") {
		t.Errorf("expected invalid id, got %d %q", code, stderr)
	}
}

func TestRmIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.seed()
	h.mustRun("rm", "1715331600000")
	h.mustRun("rm", "1715331600000")
	if out := h.mustRun("list"); !strings.Contains(out, "Total: 1 | En progreso: 1 | Completadas: 0") {
		t.Errorf("unexpected list after rm:\n%s", out)
	}
}

func TestRemind(t *testing.T) {
	h := newHarness(t)
	h.seed()
	h.mustRun("add", "-t", "Already paid", "-d", "x", "--date", "2024-05-10")
	h.mustRun("done", "1715331600002")

	out := h.mustRun("remind")
	if out != "Recordatorio: La tarea \"Pay rent\" vence hoy\n" {
		t.Errorf("unexpected reminders %q", out)
	}
}

func TestName(t *testing.T) {
	h := newHarness(t)
	if _, _, code := h.run("name"); code != exitcode.UserError {
		t.Errorf("expected error with no name set, got %d", code)
	}
	if out := h.mustRun("name", "Ana"); !strings.Contains(out, "Hola Ana") {
		t.Errorf("unexpected welcome %q", out)
	}
	if out := h.mustRun("name"); out != "Ana\n" {
		t.Errorf("expected stored name, got %q", out)
	}
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.seed()

	jsonOut := h.mustRun("export")
	if !strings.Contains(jsonOut, `"title": "Pay rent"`) || !strings.Contains(jsonOut, `"createdAt": "2024-05-10T09:00:00.000Z"`) {
		t.Errorf("unexpected json export:\n%s", jsonOut)
	}
	yamlOut := h.mustRun("export", "--format", "yaml")
	if !strings.Contains(yamlOut, "title: Pay rent") || !strings.Contains(yamlOut, "id: 1715331600001") {
		t.Errorf("unexpected yaml export:\n%s", yamlOut)
	}
	if _, _, code := h.run("export", "--format", "xml"); code != exitcode.UserError {
		t.Errorf("expected error for unknown format, got %d", code)
	}
}

func TestExportEmpty(t *testing.T) {
	h := newHarness(t)
	if out := h.mustRun("export"); out != "[]\n" {
		t.Errorf("expected empty array, got %q", out)
	}
}

func TestRootRunsTUI(t *testing.T) {
	h := newHarness(t)
	h.seed()
	h.mustRun()
	if h.tuiRuns != 1 || h.tuiSession == nil {
		t.Fatalf("expected one TUI run, got %d", h.tuiRuns)
	}
	if got := len(h.tuiSession.Tasks()); got != 2 {
		t.Errorf("TUI session should see stored tasks, got %d", got)
	}
}

func TestDefaultFilterFromConfig(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(h.configPath, []byte("default_filter = \"completed\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h.seed()
	if out := h.mustRun("list"); strings.Contains(out, "Pay rent") {
		t.Errorf("completed filter from config not applied:\n%s", out)
	}
}

func TestBadConfig(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(h.configPath, []byte("db_path = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	_, stderr, code := h.run("list")
	if code != exitcode.StorageError || !strings.Contains(stderr, "failed to load config") {
		t.Errorf("expected storage error, got %d %q", code, stderr)
	}
}

func TestDebugLogOpened(t *testing.T) {
	h := newHarness(t)
	dir := filepath.Dir(h.configPath)
	body := "db_path = \"tareas.db\"\ndebug_log = \"debug.log\"\n"
	if err := os.WriteFile(h.configPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	h.mustRun("list")
	if _, err := os.Stat(filepath.Join(dir, "debug.log")); err != nil {
		t.Errorf("debug log not created: %v", err)
	}
}

func TestShutdownReportsCloseError(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "debug.log"))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	var errOut bytes.Buffer
	rt := &runtime{logFile: f}
	if code := rt.shutdown(&errOut, exitcode.Success); code != exitcode.StorageError {
		t.Errorf("expected exit %d, got %d", exitcode.StorageError, code)
	}
	if !strings.Contains(errOut.String(), "error:") || !strings.Contains(errOut.String(), "already closed") {
		t.Errorf("close failure not reported: %q", errOut.String())
	}
	if rt.logFile != nil {
		t.Error("log file should be released")
	}

	errOut.Reset()
	if code := rt.shutdown(&errOut, exitcode.UserError); code != exitcode.UserError || errOut.Len() != 0 {
		t.Errorf("clean shutdown should keep the code and stay quiet, got %d %q", code, errOut.String())
	}
}
