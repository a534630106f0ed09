// Package board holds the task-ordering core: the filter, sort and
// sequence engines, the per-column precedence resolver, the drag-and-drop
// session, and the view state that feeds them. Everything here is
// synchronous and pure over its inputs; persistence stays behind the
// backend contract.
package board

import (
	"strings"

	"taskdeck/internal/model"
)

// Filter applies the given criteria conjunctively and returns the matching
// tasks in their input order. Absent or empty criteria are no-ops; the
// function never fails.
func Filter(tasks []model.Task, f model.FilterState, bookmarks []string) []model.Task {
	out := tasks

	if len(f.AssigneeIDs) > 0 {
		allowed := toSet(f.AssigneeIDs)
		out = keep(out, func(t model.Task) bool { return allowed[t.AssigneeID] })
	}

	if len(f.Priorities) > 0 {
		allowed := map[model.TaskPriority]bool{}
		for _, p := range f.Priorities {
			allowed[p] = true
		}
		out = keep(out, func(t model.Task) bool { return allowed[t.Priority] })
	}

	if f.ShowBookmarkedOnly {
		marked := toSet(bookmarks)
		out = keep(out, func(t model.Task) bool { return marked[t.ID] })
	}

	if r := f.DueDateRange; r != nil && (r.From != "" || r.To != "") {
		from, hasFrom := parseRangeBound(r.From, false)
		to, hasTo := parseRangeBound(r.To, true)
		out = keep(out, func(t model.Task) bool {
			due, ok := ParseDueDate(t.DueDate)
			if !ok {
				// Unparseable due dates fall outside any comparison; keep
				// the task rather than silently hiding it.
				return true
			}
			if hasFrom && due.Before(from) {
				return false
			}
			if hasTo && due.After(to) {
				return false
			}
			return true
		})
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query != "" {
		out = keep(out, func(t model.Task) bool { return matchesQuery(t, f.SearchBy, query) })
	}

	// Always hand back a fresh slice so callers can't alias the input.
	if len(out) == len(tasks) {
		cp := make([]model.Task, len(out))
		copy(cp, out)
		return cp
	}
	return out
}

func matchesQuery(t model.Task, scope model.SearchScope, query string) bool {
	title := strings.Contains(strings.ToLower(t.Title), query)
	desc := strings.Contains(strings.ToLower(t.Description), query)
	tags := false
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			tags = true
			break
		}
	}
	switch scope {
	case model.SearchTitle:
		return title
	case model.SearchDescription:
		return desc
	case model.SearchTags:
		return tags
	default:
		return title || desc || tags
	}
}

func keep(tasks []model.Task, pred func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
