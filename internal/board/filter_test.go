package board

import (
	"reflect"
	"testing"

	"taskdeck/internal/model"
)

func task(id string, status model.TaskStatus, prio model.TaskPriority, due string) model.Task {
	return model.Task{
		ID:          id,
		Title:       "Task " + id,
		Description: "Description for " + id,
		Status:      status,
		Priority:    prio,
		DueDate:     due,
		Tags:        []string{},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestFilter_EmptyCriteriaKeepsEverything(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("t1", model.StatusTodo, model.PriorityHigh, "2025-01-10"),
		task("t2", model.StatusDone, model.PriorityLow, "2025-01-05"),
	}
	got := Filter(tasks, model.NewFilterState(), nil)
	if !reflect.DeepEqual(ids(got), []string{"t1", "t2"}) {
		t.Fatalf("expected identity, got %v", ids(got))
	}

	// The result must be a fresh slice, not an alias of the input.
	got[0].ID = "mutated"
	if tasks[0].ID != "t1" {
		t.Fatalf("filter aliased its input")
	}
}

func TestFilter_ByPriority_ScenarioE(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("t1", model.StatusTodo, model.PriorityHigh, "2025-01-10"),
		task("t2", model.StatusTodo, model.PriorityLow, "2025-01-05"),
	}
	f := model.NewFilterState()
	f.Priorities = []model.TaskPriority{model.PriorityHigh}

	got := Filter(tasks, f, nil)
	if !reflect.DeepEqual(ids(got), []string{"t1"}) {
		t.Fatalf("want [t1], got %v", ids(got))
	}
}

func TestFilter_ByAssignee(t *testing.T) {
	t.Parallel()

	a := task("a", model.StatusTodo, model.PriorityLow, "2025-01-01")
	a.AssigneeID = "user-1"
	b := task("b", model.StatusTodo, model.PriorityLow, "2025-01-01")
	b.AssigneeID = "user-2"
	c := task("c", model.StatusTodo, model.PriorityLow, "2025-01-01")

	f := model.NewFilterState()
	f.AssigneeIDs = []string{"user-2"}

	got := Filter([]model.Task{a, b, c}, f, nil)
	if !reflect.DeepEqual(ids(got), []string{"b"}) {
		t.Fatalf("want [b], got %v", ids(got))
	}
}

func TestFilter_BookmarkedOnly(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("t1", model.StatusTodo, model.PriorityLow, "2025-01-01"),
		task("t2", model.StatusTodo, model.PriorityLow, "2025-01-01"),
	}
	f := model.NewFilterState()
	f.ShowBookmarkedOnly = true

	got := Filter(tasks, f, []string{"t2"})
	if !reflect.DeepEqual(ids(got), []string{"t2"}) {
		t.Fatalf("want [t2], got %v", ids(got))
	}

	// No bookmarks at all => nothing survives.
	if got := Filter(tasks, f, nil); len(got) != 0 {
		t.Fatalf("want empty, got %v", ids(got))
	}
}

func TestFilter_DueDateRange(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("early", model.StatusTodo, model.PriorityLow, "2025-01-02"),
		task("mid", model.StatusTodo, model.PriorityLow, "2025-01-10T15:30:00Z"),
		task("late", model.StatusTodo, model.PriorityLow, "2025-02-01"),
		task("junk", model.StatusTodo, model.PriorityLow, "not-a-date"),
	}

	cases := []struct {
		name string
		from string
		to   string
		want []string
	}{
		{"both bounds", "2025-01-05", "2025-01-20", []string{"mid", "junk"}},
		{"open lower", "", "2025-01-05", []string{"early", "junk"}},
		{"open upper", "2025-01-05", "", []string{"mid", "late", "junk"}},
		// End-of-day inclusive: a task due at 15:30 on the "to" day stays in.
		{"to is end of day", "2025-01-10", "2025-01-10", []string{"mid", "junk"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := model.NewFilterState()
			f.DueDateRange = &model.DueDateRange{From: tc.from, To: tc.to}
			got := Filter(tasks, f, nil)
			if !reflect.DeepEqual(ids(got), tc.want) {
				t.Fatalf("want %v, got %v", tc.want, ids(got))
			}
		})
	}
}

func TestFilter_Search(t *testing.T) {
	t.Parallel()

	a := model.Task{ID: "a", Title: "Fix login flow", Description: "OAuth redirect", Tags: []string{"auth"}, Status: model.StatusTodo, Priority: model.PriorityLow}
	b := model.Task{ID: "b", Title: "Write docs", Description: "cover the login page", Tags: []string{"docs"}, Status: model.StatusTodo, Priority: model.PriorityLow}
	c := model.Task{ID: "c", Title: "Refactor", Description: "cleanup", Tags: []string{"Login-Screen"}, Status: model.StatusTodo, Priority: model.PriorityLow}
	tasks := []model.Task{a, b, c}

	cases := []struct {
		name  string
		scope model.SearchScope
		query string
		want  []string
	}{
		{"all matches any field", model.SearchAll, "login", []string{"a", "b", "c"}},
		{"title only", model.SearchTitle, "login", []string{"a"}},
		{"description only", model.SearchDescription, "login", []string{"b"}},
		{"tags only, case-insensitive", model.SearchTags, "login", []string{"c"}},
		{"blank query is a no-op", model.SearchTitle, "   ", []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := model.NewFilterState()
			f.SearchBy = tc.scope
			f.Query = tc.query
			got := Filter(tasks, f, nil)
			if !reflect.DeepEqual(ids(got), tc.want) {
				t.Fatalf("want %v, got %v", tc.want, ids(got))
			}
		})
	}
}

func TestFilter_CriteriaCombineConjunctively(t *testing.T) {
	t.Parallel()

	a := task("a", model.StatusTodo, model.PriorityHigh, "2025-01-10")
	a.AssigneeID = "user-1"
	b := task("b", model.StatusTodo, model.PriorityHigh, "2025-01-10")
	b.AssigneeID = "user-2"
	c := task("c", model.StatusTodo, model.PriorityLow, "2025-01-10")
	c.AssigneeID = "user-1"

	f := model.NewFilterState()
	f.AssigneeIDs = []string{"user-1"}
	f.Priorities = []model.TaskPriority{model.PriorityHigh}

	got := Filter([]model.Task{a, b, c}, f, nil)
	if !reflect.DeepEqual(ids(got), []string{"a"}) {
		t.Fatalf("want [a], got %v", ids(got))
	}
}

func TestFilter_Idempotent(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("t1", model.StatusTodo, model.PriorityHigh, "2025-01-10"),
		task("t2", model.StatusTodo, model.PriorityLow, "2025-01-05"),
		task("t3", model.StatusDone, model.PriorityMedium, "2025-01-07"),
	}
	f := model.NewFilterState()
	f.Priorities = []model.TaskPriority{model.PriorityHigh, model.PriorityMedium}
	f.Query = "task"

	once := Filter(tasks, f, nil)
	twice := Filter(once, f, nil)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Fatalf("filter not idempotent: %v vs %v", ids(once), ids(twice))
	}
}
