package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"taskdeck/internal/model"
)

func TestViewCache_MissingAndCorrupted(t *testing.T) {
	t.Parallel()
	s := Store{Dir: t.TempDir()}

	vc, err := s.LoadViewCache()
	if err != nil {
		t.Fatalf("LoadViewCache on empty dir: %v", err)
	}
	if vc.Version != 1 || vc.AppState != nil {
		t.Fatalf("empty cache = %#v", vc)
	}

	if err := os.WriteFile(filepath.Join(s.Dir, viewCacheFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	vc, err = s.LoadViewCache()
	if err != nil {
		t.Fatalf("LoadViewCache on garbage: %v", err)
	}
	if vc.AppState != nil {
		t.Fatal("corrupted cache should read as missing")
	}
}

func TestViewCache_RoundTrip(t *testing.T) {
	t.Parallel()
	s := Store{Dir: t.TempDir()}

	st := model.NewAppState("user-1")
	st.Bookmarks = []string{"task-3"}
	st.Sequences[model.StatusTodo] = model.CustomTaskSequence{
		UseSequence: true,
		Sequence:    []string{"task-2", "task-1"},
	}
	if err := s.SaveViewCache(&ViewCache{UserID: "user-1", AppState: st}); err != nil {
		t.Fatalf("SaveViewCache: %v", err)
	}

	vc, err := s.LoadViewCache()
	if err != nil {
		t.Fatalf("LoadViewCache: %v", err)
	}
	if vc.UserID != "user-1" || vc.AppState == nil {
		t.Fatalf("cache = %#v", vc)
	}
	if got := vc.AppState.Sequences[model.StatusTodo].Sequence; !reflect.DeepEqual(got, []string{"task-2", "task-1"}) {
		t.Fatalf("sequence = %v", got)
	}
}

func TestReconcileSequences(t *testing.T) {
	t.Parallel()

	mk := func(id string, created time.Time) model.Task {
		return model.Task{ID: id, Status: model.StatusTodo, CreatedAt: created}
	}
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	grouped := model.GroupedTasks{
		model.StatusTodo: {mk("task-1", base.Add(2 * time.Hour)), mk("task-2", base.Add(time.Hour))},
		model.StatusDone: {},
	}

	seqs := model.CustomTaskSequences{
		// Stale id pruned, order still custom: stays active.
		model.StatusTodo: {UseSequence: true, Sequence: []string{"task-2", "task-gone", "task-1"}},
		// Every listed id gone: what remains matches natural order, so the
		// sequence deactivates.
		model.StatusDone: {UseSequence: true, Sequence: []string{"task-gone"}},
	}

	out := ReconcileSequences(seqs, grouped)

	todo := out[model.StatusTodo]
	if !todo.UseSequence {
		t.Fatal("custom todo order should survive reconciliation")
	}
	if !reflect.DeepEqual(todo.Sequence, []string{"task-2", "task-1"}) {
		t.Fatalf("todo sequence = %v", todo.Sequence)
	}

	done := out[model.StatusDone]
	if done.UseSequence {
		t.Fatal("sequence equal to natural order should deactivate")
	}
	if len(done.Sequence) != 0 {
		t.Fatalf("done sequence = %v", done.Sequence)
	}
}
