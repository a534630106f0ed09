package board

import (
	"reflect"
	"testing"

	"taskdeck/internal/model"
)

func testUsers() map[string]model.User {
	return UserIndex([]model.User{
		{ID: "user-1", Name: "alice"},
		{ID: "user-2", Name: "Bob"},
		{ID: "user-3", Name: "carol"},
	})
}

func TestSort_EmptyOptionsIsIdentity(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("t1", model.StatusTodo, model.PriorityLow, "2025-01-10"),
		task("t2", model.StatusTodo, model.PriorityHigh, "2025-01-05"),
	}
	got := Sort(tasks, nil, nil)
	if !reflect.DeepEqual(ids(got), []string{"t1", "t2"}) {
		t.Fatalf("want identity, got %v", ids(got))
	}
}

func TestSort_DueDate(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("t1", model.StatusTodo, model.PriorityLow, "2025-01-10"),
		task("t2", model.StatusTodo, model.PriorityLow, "2025-01-05"),
		task("t3", model.StatusTodo, model.PriorityLow, "2025-01-07T12:00:00Z"),
	}

	asc := Sort(tasks, []model.SortOption{{Field: model.SortByDueDate, Direction: model.SortAscending}}, nil)
	if !reflect.DeepEqual(ids(asc), []string{"t2", "t3", "t1"}) {
		t.Fatalf("ascending: got %v", ids(asc))
	}

	desc := Sort(tasks, []model.SortOption{{Field: model.SortByDueDate, Direction: model.SortDescending}}, nil)
	if !reflect.DeepEqual(ids(desc), []string{"t1", "t3", "t2"}) {
		t.Fatalf("descending: got %v", ids(desc))
	}
}

func TestSort_PriorityTotalOrder(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("m", model.StatusTodo, model.PriorityMedium, ""),
		task("l", model.StatusTodo, model.PriorityLow, ""),
		task("h", model.StatusTodo, model.PriorityHigh, ""),
	}
	got := Sort(tasks, []model.SortOption{{Field: model.SortByPriority, Direction: model.SortDescending}}, nil)
	if !reflect.DeepEqual(ids(got), []string{"h", "m", "l"}) {
		t.Fatalf("want [h m l], got %v", ids(got))
	}
}

func TestSort_AssigneeNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	a := task("a", model.StatusTodo, model.PriorityLow, "")
	a.AssigneeID = "user-3" // carol
	b := task("b", model.StatusTodo, model.PriorityLow, "")
	b.AssigneeID = "user-2" // Bob
	c := task("c", model.StatusTodo, model.PriorityLow, "")
	c.AssigneeID = "user-1" // alice

	got := Sort([]model.Task{a, b, c}, []model.SortOption{{Field: model.SortByAssignee, Direction: model.SortAscending}}, testUsers())
	if !reflect.DeepEqual(ids(got), []string{"c", "b", "a"}) {
		t.Fatalf("want [c b a], got %v", ids(got))
	}
}

func TestSort_UnresolvedAssigneeSortsFirstAscending(t *testing.T) {
	t.Parallel()

	a := task("a", model.StatusTodo, model.PriorityLow, "")
	a.AssigneeID = "user-1" // alice
	b := task("b", model.StatusTodo, model.PriorityLow, "")
	b.AssigneeID = "user-ghost" // no such user => empty name
	c := task("c", model.StatusTodo, model.PriorityLow, "")
	// no assignee at all

	got := Sort([]model.Task{a, b, c}, []model.SortOption{{Field: model.SortByAssignee, Direction: model.SortAscending}}, testUsers())
	if got[len(got)-1].ID != "a" {
		t.Fatalf("resolved assignee should sort last among empties, got %v", ids(got))
	}
}

func TestSort_MultiKeyFallthrough(t *testing.T) {
	t.Parallel()

	// Same due date; priority breaks the tie.
	a := task("a", model.StatusTodo, model.PriorityLow, "2025-01-10")
	b := task("b", model.StatusTodo, model.PriorityHigh, "2025-01-10")
	c := task("c", model.StatusTodo, model.PriorityMedium, "2025-01-05")

	opts := []model.SortOption{
		{Field: model.SortByDueDate, Direction: model.SortAscending},
		{Field: model.SortByPriority, Direction: model.SortDescending},
	}
	got := Sort([]model.Task{a, b, c}, opts, nil)
	if !reflect.DeepEqual(ids(got), []string{"c", "b", "a"}) {
		t.Fatalf("want [c b a], got %v", ids(got))
	}
}

func TestSort_StableOnFullTies(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("first", model.StatusTodo, model.PriorityMedium, "2025-01-10"),
		task("second", model.StatusTodo, model.PriorityMedium, "2025-01-10"),
		task("third", model.StatusTodo, model.PriorityMedium, "2025-01-10"),
	}
	opts := []model.SortOption{
		{Field: model.SortByDueDate, Direction: model.SortAscending},
		{Field: model.SortByPriority, Direction: model.SortAscending},
	}
	got := Sort(tasks, opts, nil)
	if !reflect.DeepEqual(ids(got), []string{"first", "second", "third"}) {
		t.Fatalf("stability violated: %v", ids(got))
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("t1", model.StatusTodo, model.PriorityLow, "2025-01-10"),
		task("t2", model.StatusTodo, model.PriorityHigh, "2025-01-05"),
	}
	_ = Sort(tasks, []model.SortOption{{Field: model.SortByDueDate, Direction: model.SortAscending}}, nil)
	if !reflect.DeepEqual(ids(tasks), []string{"t1", "t2"}) {
		t.Fatalf("input mutated: %v", ids(tasks))
	}
}
