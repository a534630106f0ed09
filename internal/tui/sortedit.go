package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/model"
)

// sortEditor edits one column's ordered sort keys. Changes persist on
// enter; esc discards them.
type sortEditor struct {
	status model.TaskStatus
	opts   []model.SortOption
	row    int
	all    bool
}

func newSortEditor(st model.TaskStatus, cfg model.ColumnSortConfig, all bool) sortEditor {
	opts := make([]model.SortOption, len(cfg[st]))
	copy(opts, cfg[st])
	return sortEditor{status: st, opts: opts, all: all}
}

var sortFields = []model.SortField{model.SortByDueDate, model.SortByPriority, model.SortByAssignee}

func (m appModel) updateSortKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &m.sort
	switch msg.String() {
	case "esc":
		m.mode = modeBoard
		return m, nil

	case "enter":
		m.mode = modeBoard
		cfg := m.view.SortConfigs()
		next := model.ColumnSortConfig{}
		for st, opts := range cfg {
			next[st] = opts
		}
		if e.all {
			for _, st := range columnStatuses() {
				next[st] = e.opts
			}
		} else {
			next[e.status] = e.opts
		}
		m.view.SetSortConfigs(next)
		m.view.SetApplyToAll(e.all)
		m.resolve()
		return m, saveSortConfigCmd(m.backend, m.userID, next, e.all, m.view.Version(), m.view.BeginSync())

	case "up", "k":
		if e.row > 0 {
			e.row--
		}
		return m, nil
	case "down", "j":
		if e.row < len(e.opts)-1 {
			e.row++
		}
		return m, nil

	case "a":
		// Append the first field not already used.
		used := map[model.SortField]bool{}
		for _, o := range e.opts {
			used[o.Field] = true
		}
		for _, f := range sortFields {
			if !used[f] {
				e.opts = append(e.opts, model.SortOption{Field: f, Direction: model.SortAscending})
				e.row = len(e.opts) - 1
				break
			}
		}
		return m, nil

	case "d", "backspace":
		if e.row >= 0 && e.row < len(e.opts) {
			e.opts = append(e.opts[:e.row], e.opts[e.row+1:]...)
			if e.row >= len(e.opts) {
				e.row = len(e.opts) - 1
			}
		}
		return m, nil

	case " ", "right", "l":
		if e.row >= 0 && e.row < len(e.opts) {
			e.opts[e.row].Field = nextField(e.opts[e.row].Field)
		}
		return m, nil

	case "r":
		if e.row >= 0 && e.row < len(e.opts) {
			if e.opts[e.row].Direction == model.SortAscending {
				e.opts[e.row].Direction = model.SortDescending
			} else {
				e.opts[e.row].Direction = model.SortAscending
			}
		}
		return m, nil

	case "A":
		e.all = !e.all
		return m, nil
	}
	return m, nil
}

func nextField(f model.SortField) model.SortField {
	for i, x := range sortFields {
		if x == f {
			return sortFields[(i+1)%len(sortFields)]
		}
	}
	return sortFields[0]
}

func (m appModel) renderSortEditor() string {
	e := m.sort
	var b strings.Builder
	b.WriteString(styleColumnHeader(false).Render("Sort: " + columnLabel(e.status)))
	b.WriteString("\n\n")

	if len(e.opts) == 0 {
		b.WriteString(styleMuted().Render("(no sort keys; natural order)"))
		b.WriteString("\n")
	}
	for i, o := range e.opts {
		cursor := "  "
		if i == e.row {
			cursor = "> "
		}
		arrow := "↑"
		if o.Direction == model.SortDescending {
			arrow = "↓"
		}
		b.WriteString(fmt.Sprintf("%s%d. %s %s\n", cursor, i+1, o.Field, arrow))
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render(fmt.Sprintf("apply to all columns: %s (A toggles)", boolLabel(e.all))))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("a add · d remove · space field · r direction · enter save · esc cancel"))
	return b.String()
}
