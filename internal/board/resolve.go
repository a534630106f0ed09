package board

import (
	"strings"

	"taskdeck/internal/model"
)

// Resolve groups filtered tasks by status and orders each column by the
// first applicable rule: active custom sequence, then configured sort,
// then natural order (the order the tasks arrived in, newest-first from
// the store). Membership comes only from each task's own status.
func Resolve(filtered []model.Task, cfg model.ColumnSortConfig, seqs model.CustomTaskSequences, users map[string]model.User) model.GroupedTasks {
	grouped := model.NewGroupedTasks()
	for _, t := range filtered {
		if !t.Status.IsValid() {
			continue
		}
		grouped[t.Status] = append(grouped[t.Status], t)
	}

	for _, st := range model.Statuses() {
		switch {
		case seqs[st].UseSequence:
			grouped[st] = ApplySequence(grouped[st], seqs[st].Sequence)
		case len(cfg[st]) > 0:
			grouped[st] = Sort(grouped[st], cfg[st], users)
		}
	}
	return grouped
}

// Indicator describes which ordering rule governs a column, derived from
// the same precedence Resolve uses. Shown in column headers.
func Indicator(st model.TaskStatus, cfg model.ColumnSortConfig, seqs model.CustomTaskSequences) string {
	if seqs[st].UseSequence {
		return "custom order"
	}
	opts := cfg[st]
	if len(opts) == 0 {
		return "newest first"
	}
	parts := make([]string, 0, len(opts))
	for _, opt := range opts {
		parts = append(parts, sortKeyLabel(opt))
	}
	return strings.Join(parts, ", ")
}

func sortKeyLabel(opt model.SortOption) string {
	var name string
	switch opt.Field {
	case model.SortByDueDate:
		name = "due date"
	case model.SortByPriority:
		name = "priority"
	case model.SortByAssignee:
		name = "assignee"
	default:
		name = string(opt.Field)
	}
	if opt.Direction == model.SortDescending {
		return name + " ↓"
	}
	return name + " ↑"
}
