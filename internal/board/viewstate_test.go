package board

import (
	"reflect"
	"testing"

	"taskdeck/internal/model"
)

func TestViewState_DraftDecoupledFromApplied(t *testing.T) {
	t.Parallel()

	v := NewViewState()

	draft := v.Draft()
	draft.Priorities = []model.TaskPriority{model.PriorityHigh}
	draft.Query = "auth"
	v.SetDraft(draft)

	if !v.Applied().IsEmpty() {
		t.Fatalf("editing the draft must not touch the applied filter")
	}

	v.ApplyDraft()
	if !reflect.DeepEqual(v.Applied().Priorities, []model.TaskPriority{model.PriorityHigh}) {
		t.Fatalf("apply did not commit the draft: %#v", v.Applied())
	}

	// Start a new edit, then abandon it.
	draft = v.Draft()
	draft.Query = "something else"
	v.SetDraft(draft)
	v.RevertDraft()
	if v.Draft().Query != "auth" {
		t.Fatalf("revert should reset draft to applied, got %q", v.Draft().Query)
	}

	v.ClearFilters()
	if !v.Applied().IsEmpty() || !v.Draft().IsEmpty() {
		t.Fatalf("clear should reset both draft and applied")
	}
}

func TestViewState_ErrorSlotLastWins(t *testing.T) {
	t.Parallel()

	v := NewViewState()
	if v.Error() != "" {
		t.Fatalf("fresh state should have no error")
	}
	v.SetError("first failure")
	v.SetError("second failure")
	if v.Error() != "second failure" {
		t.Fatalf("last error should win, got %q", v.Error())
	}
	v.DismissError()
	if v.Error() != "" {
		t.Fatalf("dismiss should clear the slot")
	}
}

func TestViewState_StaleAppStateResponseDropped(t *testing.T) {
	t.Parallel()

	v := NewViewState()

	older := v.BeginSync()
	newer := v.BeginSync()

	fresh := *model.NewAppState("user-1")
	fresh.Bookmarks = []string{"t9"}
	fresh.Version = 7
	if !v.AdoptAppState(fresh, newer) {
		t.Fatalf("newest response must be adopted")
	}

	stale := *model.NewAppState("user-1")
	stale.Bookmarks = []string{"t1"}
	stale.Version = 3
	if v.AdoptAppState(stale, older) {
		t.Fatalf("stale response must be dropped")
	}

	if !reflect.DeepEqual(v.Bookmarks(), []string{"t9"}) {
		t.Fatalf("stale response clobbered state: %v", v.Bookmarks())
	}
	if v.Version() != 7 {
		t.Fatalf("version should track the adopted state, got %d", v.Version())
	}
}

func TestViewState_SequenceToggles(t *testing.T) {
	t.Parallel()

	v := NewViewState()
	v.SetSequence(model.StatusTodo, []string{"t2", "t1"})
	if !v.Sequences()[model.StatusTodo].UseSequence {
		t.Fatalf("SetSequence should activate the column sequence")
	}
	v.DisableSequence(model.StatusTodo)
	if v.Sequences()[model.StatusTodo].UseSequence {
		t.Fatalf("DisableSequence should deactivate the column sequence")
	}
}

func TestViewState_ResolvePipeline(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("t1", model.StatusTodo, model.PriorityHigh, "2025-01-10"),
		task("t2", model.StatusTodo, model.PriorityLow, "2025-01-05"),
		task("t3", model.StatusDone, model.PriorityLow, "2025-01-06"),
	}

	v := NewViewState()
	cfg := model.ColumnSortConfig{
		model.StatusTodo: {{Field: model.SortByDueDate, Direction: model.SortAscending}},
	}
	v.SetSortConfigs(cfg)

	got := v.Resolve(tasks, nil)
	if !reflect.DeepEqual(ids(got[model.StatusTodo]), []string{"t2", "t1"}) {
		t.Fatalf("resolve with sort config: %v", ids(got[model.StatusTodo]))
	}

	// Bookmark filter flows through the same pipeline.
	v.SetBookmarks([]string{"t1"})
	f := v.Draft()
	f.ShowBookmarkedOnly = true
	v.SetDraft(f)
	v.ApplyDraft()

	got = v.Resolve(tasks, nil)
	if !reflect.DeepEqual(ids(got[model.StatusTodo]), []string{"t1"}) {
		t.Fatalf("bookmarked-only resolve: %v", ids(got[model.StatusTodo]))
	}
	if len(got[model.StatusDone]) != 0 {
		t.Fatalf("unbookmarked tasks should be filtered out")
	}
}
