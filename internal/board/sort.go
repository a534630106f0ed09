package board

import (
	"sort"
	"strings"

	"taskdeck/internal/model"
)

var priorityWeight = map[model.TaskPriority]int{
	model.PriorityLow:    1,
	model.PriorityMedium: 2,
	model.PriorityHigh:   3,
}

// UserIndex builds the id lookup the assignee comparator needs.
func UserIndex(users []model.User) map[string]model.User {
	idx := make(map[string]model.User, len(users))
	for _, u := range users {
		idx[u.ID] = u
	}
	return idx
}

// Sort returns a new list ordered by the given keys, first key primary.
// The sort is stable: tasks equal on every key keep their input order, and
// an empty option list returns the input order unchanged.
func Sort(tasks []model.Task, opts []model.SortOption, users map[string]model.User) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	if len(opts) == 0 {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return compareTasks(out[i], out[j], opts, users) < 0
	})
	return out
}

func compareTasks(a, b model.Task, opts []model.SortOption, users map[string]model.User) int {
	for _, opt := range opts {
		c := compareByField(a, b, opt.Field, users)
		if c == 0 {
			continue
		}
		if opt.Direction == model.SortDescending {
			return -c
		}
		return c
	}
	return 0
}

func compareByField(a, b model.Task, field model.SortField, users map[string]model.User) int {
	switch field {
	case model.SortByDueDate:
		// Unparseable dates compare as the zero instant (first ascending).
		ta, _ := ParseDueDate(a.DueDate)
		tb, _ := ParseDueDate(b.DueDate)
		return ta.Compare(tb)
	case model.SortByPriority:
		return priorityWeight[a.Priority] - priorityWeight[b.Priority]
	case model.SortByAssignee:
		return strings.Compare(assigneeName(a, users), assigneeName(b, users))
	}
	return 0
}

// assigneeName resolves the display name for sorting; an unresolved or
// empty assignee compares as the empty string.
func assigneeName(t model.Task, users map[string]model.User) string {
	if t.AssigneeID == "" {
		return ""
	}
	u, ok := users[t.AssigneeID]
	if !ok {
		return ""
	}
	return strings.ToLower(u.Name)
}
