package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/model"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// filterPanel edits a draft FilterState; nothing applies to the board
// until the user confirms, and esc throws the draft away.
type filterPanel struct {
	draft model.FilterState
	users []model.User
	row   int
}

const (
	filterRowPriorities = iota
	filterRowAssignees
	filterRowBookmarked
	filterRowScope
	filterRowDueFrom
	filterRowDueTo
	filterRowCount
)

func newFilterPanel(draft model.FilterState, users map[string]model.User) filterPanel {
	list := make([]model.User, 0, len(users))
	for _, u := range users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return filterPanel{draft: draft, users: list}
}

func (m appModel) updateFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBoard
		m.view.RevertDraft()
		return m, nil

	case "enter":
		m.mode = modeBoard
		m.view.SetDraft(m.filter.draft)
		m.view.ApplyDraft()
		m.resolve()
		return m, nil

	case "up", "k":
		if m.filter.row > 0 {
			m.filter.row--
		}
		return m, nil
	case "down", "j":
		if m.filter.row < filterRowCount-1 {
			m.filter.row++
		}
		return m, nil

	case "c":
		m.filter.draft = model.NewFilterState()
		return m, nil

	case " ", "left", "right", "h", "l":
		m.filter.toggle(msg.String())
		return m, nil
	}
	return m, nil
}

func (p *filterPanel) toggle(key string) {
	forward := key != "left" && key != "h"
	switch p.row {
	case filterRowPriorities:
		p.draft.Priorities = cycleSetPriority(p.draft.Priorities)
	case filterRowAssignees:
		p.draft.AssigneeIDs = cycleAssignees(p.draft.AssigneeIDs, p.users, forward)
	case filterRowBookmarked:
		p.draft.ShowBookmarkedOnly = !p.draft.ShowBookmarkedOnly
	case filterRowScope:
		p.draft.SearchBy = cycleScope(p.draft.SearchBy, forward)
	case filterRowDueFrom:
		p.draft.DueDateRange = cycleDueRange(p.draft.DueDateRange, true, forward)
	case filterRowDueTo:
		p.draft.DueDateRange = cycleDueRange(p.draft.DueDateRange, false, forward)
	}
}

// cycleSetPriority walks none -> high -> medium -> low -> high+medium ->
// none; small fixed loop, enough for a keyboard UI.
func cycleSetPriority(cur []model.TaskPriority) []model.TaskPriority {
	states := [][]model.TaskPriority{
		{},
		{model.PriorityHigh},
		{model.PriorityMedium},
		{model.PriorityLow},
		{model.PriorityHigh, model.PriorityMedium},
	}
	for i, s := range states {
		if prioritiesEqual(cur, s) {
			return states[(i+1)%len(states)]
		}
	}
	return states[0]
}

func prioritiesEqual(a, b []model.TaskPriority) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// cycleAssignees steps through: everyone, then each user alone.
func cycleAssignees(cur []string, users []model.User, forward bool) []string {
	n := len(users) + 1
	idx := 0
	if len(cur) == 1 {
		for i, u := range users {
			if u.ID == cur[0] {
				idx = i + 1
				break
			}
		}
	}
	if forward {
		idx = (idx + 1) % n
	} else {
		idx = (idx - 1 + n) % n
	}
	if idx == 0 {
		return []string{}
	}
	return []string{users[idx-1].ID}
}

func cycleScope(cur model.SearchScope, forward bool) model.SearchScope {
	scopes := []model.SearchScope{model.SearchAll, model.SearchTitle, model.SearchDescription, model.SearchTags}
	idx := 0
	for i, s := range scopes {
		if s == cur {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(scopes)
	} else {
		idx = (idx - 1 + len(scopes)) % len(scopes)
	}
	return scopes[idx]
}

// cycleDueRange steps a bound through: unset, today, +7d (or -7d for the
// lower bound going backwards).
func cycleDueRange(cur *model.DueDateRange, isFrom, forward bool) *model.DueDateRange {
	r := model.DueDateRange{}
	if cur != nil {
		r = *cur
	}
	step := func(v string) string {
		opts := []string{"", "today", "+7d", "-7d"}
		idx := 0
		for i, o := range opts {
			if o == v {
				idx = i
				break
			}
		}
		if forward {
			idx = (idx + 1) % len(opts)
		} else {
			idx = (idx - 1 + len(opts)) % len(opts)
		}
		return opts[idx]
	}
	if isFrom {
		r.From = resolveRelativeDate(step(relKey(r.From)))
	} else {
		r.To = resolveRelativeDate(step(relKey(r.To)))
	}
	if r.From == "" && r.To == "" {
		return nil
	}
	return &r
}

// relKey maps a concrete bound back to the option it was produced from
// so cycling continues from the right spot.
func relKey(v string) string {
	switch v {
	case "":
		return ""
	case isoDate(0):
		return "today"
	case isoDate(7):
		return "+7d"
	case isoDate(-7):
		return "-7d"
	}
	return ""
}

func resolveRelativeDate(opt string) string {
	switch opt {
	case "today":
		return isoDate(0)
	case "+7d":
		return isoDate(7)
	case "-7d":
		return isoDate(-7)
	}
	return ""
}

func isoDate(daysFromNow int) string {
	return timeNow().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}

func (m appModel) renderFilterPanel() string {
	p := m.filter
	var b strings.Builder
	b.WriteString(styleColumnHeader(false).Render("Filters"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"priorities", prioritiesLabel(p.draft.Priorities)},
		{"assignee", assigneeLabel(p.draft.AssigneeIDs, p.users)},
		{"bookmarked only", boolLabel(p.draft.ShowBookmarkedOnly)},
		{"search in", string(p.draft.SearchBy)},
		{"due from", rangeLabel(p.draft.DueDateRange, true)},
		{"due to", rangeLabel(p.draft.DueDateRange, false)},
	}
	for i, r := range rows {
		cursor := "  "
		if i == p.row {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-16s %s\n", cursor, r.label, r.value))
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("space/←/→ change · c clear · enter apply · esc cancel"))
	return b.String()
}

func prioritiesLabel(ps []model.TaskPriority) string {
	if len(ps) == 0 {
		return "all"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}

func assigneeLabel(ids []string, users []model.User) string {
	if len(ids) == 0 {
		return "everyone"
	}
	for _, u := range users {
		if u.ID == ids[0] {
			return u.Name
		}
	}
	return ids[0]
}

func boolLabel(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func rangeLabel(r *model.DueDateRange, isFrom bool) string {
	if r == nil {
		return "(unset)"
	}
	v := r.To
	if isFrom {
		v = r.From
	}
	if v == "" {
		return "(unset)"
	}
	return v
}
