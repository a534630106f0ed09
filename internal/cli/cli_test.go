package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"taskdeck/internal/model"
)

// run executes a fresh root command against dir and returns stdout.
func run(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("taskdeck %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func runErr(t *testing.T, dir string, args ...string) error {
	t.Helper()
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	return cmd.Execute()
}

func TestTaskAddListShow(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out := run(t, dir, "task", "add",
		"--title", "Write release notes",
		"--description", "Summarise the changes for the announce email",
		"--due", "2026-09-05",
		"--priority", "high",
		"--tag", "docs")

	var created model.Task
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("decode created task: %v\n%s", err, out)
	}
	if created.ID == "" || created.Status != model.StatusTodo {
		t.Fatalf("unexpected created task: %#v", created)
	}

	out = run(t, dir, "task", "list")
	var tasks []model.Task
	if err := json.Unmarshal([]byte(out), &tasks); err != nil {
		t.Fatalf("decode task list: %v\n%s", err, out)
	}
	if len(tasks) != 1 || tasks[0].Title != "Write release notes" {
		t.Fatalf("unexpected list: %#v", tasks)
	}

	out = run(t, dir, "task", "show", created.ID)
	var shown model.Task
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("decode shown task: %v", err)
	}
	if shown.ID != created.ID {
		t.Fatalf("show returned %q, want %q", shown.ID, created.ID)
	}
}

func TestTaskMoveAndRemove(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out := run(t, dir, "task", "add",
		"--title", "Triage inbox",
		"--description", "Clear the support queue before standup",
		"--due", "2026-09-02")
	var task model.Task
	if err := json.Unmarshal([]byte(out), &task); err != nil {
		t.Fatalf("decode created task: %v", err)
	}

	out = run(t, dir, "task", "move", task.ID, "done")
	var moved model.Task
	if err := json.Unmarshal([]byte(out), &moved); err != nil {
		t.Fatalf("decode moved task: %v", err)
	}
	if moved.Status != model.StatusDone {
		t.Fatalf("status = %q, want done", moved.Status)
	}

	run(t, dir, "task", "rm", task.ID)
	if err := runErr(t, dir, "task", "show", task.ID); err == nil {
		t.Fatal("show after rm should fail")
	}
}

func TestSeedAndBoard(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out := run(t, dir, "seed")
	if !strings.Contains(out, "seeded 12 tasks and 5 users") {
		t.Fatalf("unexpected seed output: %q", out)
	}

	// A second bare seed refuses to clobber existing data.
	if err := runErr(t, dir, "seed"); err == nil {
		t.Fatal("second seed without --reset should fail")
	}
	run(t, dir, "seed", "--reset")

	out = run(t, dir, "board")
	for _, want := range []string{"todo (", "in-progress (", "done (", "task-1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("board output missing %q:\n%s", want, out)
		}
	}
}

func TestStateBookmarkRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	run(t, dir, "seed")

	run(t, dir, "--user", "user-2", "state", "bookmark", "add", "task-3")

	out := run(t, dir, "--user", "user-2", "state", "show")
	var st model.AppState
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("decode app state: %v\n%s", err, out)
	}
	if len(st.Bookmarks) != 1 || st.Bookmarks[0] != "task-3" {
		t.Fatalf("bookmarks = %#v, want [task-3]", st.Bookmarks)
	}

	run(t, dir, "--user", "user-2", "state", "bookmark", "rm", "task-3")
	run(t, dir, "--user", "user-2", "state", "reset")

	out = run(t, dir, "--user", "user-2", "state", "show")
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("decode app state: %v", err)
	}
	if len(st.Bookmarks) != 0 || st.Version != 1 {
		t.Fatalf("reset state = %#v", st)
	}
}

func TestUsersCommand(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	run(t, dir, "seed")

	out := run(t, dir, "users")
	var users []model.User
	if err := json.Unmarshal([]byte(out), &users); err != nil {
		t.Fatalf("decode users: %v\n%s", err, out)
	}
	if len(users) != 5 {
		t.Fatalf("got %d users, want 5", len(users))
	}
}
