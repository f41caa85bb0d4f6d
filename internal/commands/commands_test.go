package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/task"
	"todo/internal/testutil"
)

// newStore returns a Store on fake storage whose ids start at 1000 and step by one.
func newStore(t *testing.T, texts ...string) (*store.Store, *testutil.FakeStorage) {
	t.Helper()
	st := testutil.NewFakeStorage()
	s := store.New(st, "todos", store.WithClock(testutil.StepClock(time.UnixMilli(1000), time.Millisecond)))
	s.Load(context.Background())
	for _, text := range texts {
		if _, ok := s.Add(context.Background(), text); !ok {
			t.Fatalf("seed task %q not added", text)
		}
	}
	st.Sets = 0
	return s, st
}

// runCommand is a helper to run a command against svc.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, name := range []string{"list", "add", "toggle", "rm", "dump", "tui", "push"} {
		if !strings.Contains(stdout, "todo "+name) {
			t.Errorf("help output does not mention %q", name)
		}
	}
}

// Tests for list command
func TestListCommand_AllTasks(t *testing.T) {
	s, _ := newStore(t, "Buy milk", "Walk dog", "Read book")
	s.Toggle(context.Background(), 1001)

	cmd := &commands.ListCmd{}
	cmd.SetFilter("all")
	stdout, stderr, code := runCommand(t, cmd, s, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_all", stdout)
}

func TestListCommand_FilterKeepsPositions(t *testing.T) {
	s, _ := newStore(t, "Buy milk", "Walk dog", "Read book")
	s.Toggle(context.Background(), 1001)

	cmd := &commands.ListCmd{}
	cmd.SetFilter("pending")
	stdout, _, code := runCommand(t, cmd, s, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "   1  [ ] Buy milk\n   3  [ ] Read book\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_EmptyStates(t *testing.T) {
	tests := []struct {
		filter string
		want   string
	}{
		{"all", "No tasks yet. Add one to get started!\n"},
		{"completed", "No completed tasks yet.\n"},
		{"pending", "No pending tasks.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			s, _ := newStore(t)
			cmd := &commands.ListCmd{}
			cmd.SetFilter(tt.filter)

			stdout, _, code := runCommand(t, cmd, s, nil, false)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if stdout != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stdout)
			}
		})
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	s, _ := newStore(t)
	cmd := &commands.ListCmd{}
	cmd.SetFilter("all")

	stdout, stderr, code := runCommand(t, cmd, s, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output, got stdout %q stderr %q", stdout, stderr)
	}
}

func TestListCommand_UnknownFilter(t *testing.T) {
	s, _ := newStore(t)
	cmd := &commands.ListCmd{}
	cmd.SetFilter("someday")

	_, stderr, code := runCommand(t, cmd, s, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown filter: someday\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestListCommand_UnexpectedArgument(t *testing.T) {
	s, _ := newStore(t)
	cmd := &commands.ListCmd{}

	_, stderr, code := runCommand(t, cmd, s, []string{"extra"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	s, st := newStore(t)
	cmd := &commands.AddCmd{}

	stdout, stderr, code := runCommand(t, cmd, s, []string{"Buy", " milk "}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	tasks := s.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Text != "Buy  milk" {
		t.Errorf("expected trimmed text %q, got %q", "Buy  milk", tasks[0].Text)
	}
	if tasks[0].Completed {
		t.Error("new task must be pending")
	}
	if st.Sets != 1 {
		t.Errorf("expected 1 write, got %d", st.Sets)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	s, _ := newStore(t)
	cmd := &commands.AddCmd{}

	stdout, _, code := runCommand(t, cmd, s, []string{"Buy milk"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
	if len(s.Tasks()) != 1 {
		t.Errorf("expected 1 task, got %d", len(s.Tasks()))
	}
}

func TestAddCommand_EmptyTextIgnored(t *testing.T) {
	for _, args := range [][]string{nil, {""}, {"   ", "\t"}} {
		s, st := newStore(t)
		cmd := &commands.AddCmd{}

		stdout, stderr, code := runCommand(t, cmd, s, args, false)

		if code != exitcode.Success {
			t.Errorf("%q: expected exit code %d, got %d", args, exitcode.Success, code)
		}
		if stdout != "" || stderr != "" {
			t.Errorf("%q: expected no output, got stdout %q stderr %q", args, stdout, stderr)
		}
		if len(s.Tasks()) != 0 || st.Sets != 0 {
			t.Errorf("%q: expected no task and no write", args)
		}
	}
}

// Tests for toggle command
func TestToggleCommand_ByPosition(t *testing.T) {
	s, st := newStore(t, "Buy milk", "Walk dog")
	cmd := &commands.ToggleCmd{}

	stdout, stderr, code := runCommand(t, cmd, s, []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if got, _ := s.Find(1001); !got.Completed {
		t.Error("expected second task completed")
	}
	if got, _ := s.Find(1000); got.Completed {
		t.Error("first task must be untouched")
	}
	if st.Sets != 1 {
		t.Errorf("expected 1 write, got %d", st.Sets)
	}
}

func TestToggleCommand_TwiceRestores(t *testing.T) {
	s, _ := newStore(t, "Buy milk")
	cmd := &commands.ToggleCmd{}

	runCommand(t, cmd, s, []string{"@1000"}, true)
	runCommand(t, cmd, s, []string{"@1000"}, true)

	if got, _ := s.Find(1000); got.Completed {
		t.Error("expected task pending after two toggles")
	}
}

func TestToggleCommand_NoRef(t *testing.T) {
	s, _ := newStore(t, "Buy milk")
	cmd := &commands.ToggleCmd{}

	_, stderr, code := runCommand(t, cmd, s, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestToggleCommand_InvalidRef(t *testing.T) {
	s, _ := newStore(t, "Buy milk")
	cmd := &commands.ToggleCmd{}

	_, stderr, code := runCommand(t, cmd, s, []string{"first"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid task reference: first\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestToggleCommand_OutOfRange(t *testing.T) {
	s, st := newStore(t, "Buy milk")
	cmd := &commands.ToggleCmd{}

	for _, ref := range []string{"0", "2", "@42"} {
		_, stderr, code := runCommand(t, cmd, s, []string{ref}, false)

		if code != exitcode.UserError {
			t.Errorf("%s: expected exit code %d, got %d", ref, exitcode.UserError, code)
		}
		if stderr != "error: task not found: "+ref+"\n" {
			t.Errorf("%s: unexpected stderr %q", ref, stderr)
		}
	}
	if st.Sets != 0 {
		t.Errorf("expected no writes, got %d", st.Sets)
	}
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	s, st := newStore(t, "Buy milk", "Walk dog", "Read book")
	cmd := &commands.RmCmd{}

	stdout, stderr, code := runCommand(t, cmd, s, []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	var texts []string
	for _, tk := range s.Tasks() {
		texts = append(texts, tk.Text)
	}
	if strings.Join(texts, ",") != "Buy milk,Read book" {
		t.Errorf("unexpected remaining tasks %v", texts)
	}
	if st.Sets != 1 {
		t.Errorf("expected 1 write, got %d", st.Sets)
	}
}

func TestRmCommand_ByID(t *testing.T) {
	s, _ := newStore(t, "Buy milk", "Walk dog")
	cmd := &commands.RmCmd{}

	_, _, code := runCommand(t, cmd, s, []string{"@1000"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if _, ok := s.Find(1000); ok {
		t.Error("expected task 1000 removed")
	}
	if len(s.Tasks()) != 1 {
		t.Errorf("expected 1 task left, got %d", len(s.Tasks()))
	}
}

func TestRmCommand_NoRef(t *testing.T) {
	s, _ := newStore(t, "Buy milk")
	cmd := &commands.RmCmd{}

	_, stderr, code := runCommand(t, cmd, s, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(s.Tasks()) != 1 {
		t.Error("task list must be unchanged")
	}
}

// Tests for dump command
func TestDumpCommand_JSON(t *testing.T) {
	s, _ := newStore(t, "Buy milk", "Walk dog")
	s.Toggle(context.Background(), 1000)
	cmd := &commands.DumpCmd{}
	cmd.SetFormat("json")

	stdout, stderr, code := runCommand(t, cmd, s, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "dump_json", stdout)
}

func TestDumpCommand_JSONEmpty(t *testing.T) {
	s, _ := newStore(t)
	cmd := &commands.DumpCmd{}
	cmd.SetFormat("json")

	stdout, _, _ := runCommand(t, cmd, s, nil, false)

	if stdout != "[]\n" {
		t.Errorf("expected '[]\\n', got %q", stdout)
	}
}

func TestDumpCommand_YAML(t *testing.T) {
	s, _ := newStore(t, "Buy milk", "Walk dog")
	s.Toggle(context.Background(), 1001)
	cmd := &commands.DumpCmd{}
	cmd.SetFormat("yaml")

	stdout, stderr, code := runCommand(t, cmd, s, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}

	var got []task.Task
	if err := yaml.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, stdout)
	}
	want := s.Tasks()
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestDumpCommand_UnknownFormat(t *testing.T) {
	s, _ := newStore(t)
	cmd := &commands.DumpCmd{}
	cmd.SetFormat("xml")

	_, stderr, code := runCommand(t, cmd, s, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown format: xml\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestScenario_AddToggleFilter(t *testing.T) {
	s, _ := newStore(t)

	if _, _, code := runCommand(t, &commands.AddCmd{}, s, []string{"Buy milk"}, true); code != exitcode.Success {
		t.Fatalf("add failed with %d", code)
	}
	if _, _, code := runCommand(t, &commands.ToggleCmd{}, s, []string{"1"}, true); code != exitcode.Success {
		t.Fatalf("toggle failed with %d", code)
	}

	pending := &commands.ListCmd{}
	pending.SetFilter("pending")
	if stdout, _, _ := runCommand(t, pending, s, nil, false); stdout != "No pending tasks.\n" {
		t.Errorf("pending: got %q", stdout)
	}

	completed := &commands.ListCmd{}
	completed.SetFilter("completed")
	if stdout, _, _ := runCommand(t, completed, s, nil, false); stdout != "   1  [x] Buy milk\n" {
		t.Errorf("completed: got %q", stdout)
	}
}

func TestTuiCommand_UnexpectedArgument(t *testing.T) {
	s, _ := newStore(t)
	cmd := &commands.TuiCmd{}

	stdout, stderr, code := runCommand(t, cmd, s, []string{"now"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: unexpected argument: now\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestDumpCommand_WriteError(t *testing.T) {
	s, _ := newStore(t, "Buy milk")
	cmd := &commands.DumpCmd{}
	cmd.SetFormat("json")

	var errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir()}
	code := cmd.Run(context.Background(), cfg, s, nil, failingWriter{}, &errBuf)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if errBuf.String() != "error: broken pipe\n" {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
}

func TestHelpCommand_DescribesDoneAsToggle(t *testing.T) {
	stdout, _, _ := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	if !strings.Contains(stdout, "Flip a task between completed and pending (alias: done)") {
		t.Errorf("help does not describe done as a toggle:\n%s", stdout)
	}
	if !strings.Contains(stdout, "todo add -- -5 degrees jacket") {
		t.Errorf("help does not explain the -- separator:\n%s", stdout)
	}
}

func TestDoneAliasToggles(t *testing.T) {
	cmd, ok := commands.DefaultRegistry.Find("done")
	if !ok {
		t.Fatal("done alias not registered")
	}
	s, _ := newStore(t, "Buy milk")
	s.Toggle(context.Background(), 1000)

	if _, _, code := runCommand(t, cmd, s, []string{"1"}, true); code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got, _ := s.Find(1000); got.Completed {
		t.Error("done on a completed task must reopen it")
	}
}
