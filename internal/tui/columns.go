package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"taskdeck/internal/board"
	"taskdeck/internal/model"
)

func columnStatuses() []model.TaskStatus { return model.Statuses() }

func columnLabel(st model.TaskStatus) string {
	switch st {
	case model.StatusTodo:
		return "To Do"
	case model.StatusInProgress:
		return "In Progress"
	case model.StatusDone:
		return "Done"
	}
	return string(st)
}

func selectedStatus(sel selection) model.TaskStatus {
	cols := columnStatuses()
	if sel.Col < 0 || sel.Col >= len(cols) {
		return cols[0]
	}
	return cols[sel.Col]
}

func indexOfTaskID(g model.GroupedTasks, id string) (int, int, bool) {
	if id == "" {
		return 0, 0, false
	}
	for ci, st := range columnStatuses() {
		for ri, t := range g[st] {
			if t.ID == id {
				return ci, ri, true
			}
		}
	}
	return 0, 0, false
}

// clampSelection keeps the selection on a real card, preferring the
// stable id over positional indexes.
func clampSelection(g model.GroupedTasks, sel selection) selection {
	cols := columnStatuses()

	if ci, ri, ok := indexOfTaskID(g, sel.ID); ok {
		sel.Col = ci
		sel.Row = ri
		return sel
	}
	sel.ID = ""

	if sel.Col < 0 {
		sel.Col = 0
	}
	if sel.Col >= len(cols) {
		sel.Col = len(cols) - 1
	}
	n := len(g[cols[sel.Col]])
	if n == 0 {
		sel.Row = -1
		return sel
	}
	if sel.Row < 0 {
		sel.Row = 0
	}
	if sel.Row >= n {
		sel.Row = n - 1
	}
	sel.ID = g[cols[sel.Col]][sel.Row].ID
	return sel
}

func moveSelection(g model.GroupedTasks, sel selection, dCol, dRow int) selection {
	sel = clampSelection(g, sel)
	if dCol != 0 {
		sel.Col += dCol
		sel.ID = ""
	}
	if dRow != 0 {
		sel.Row += dRow
		sel.ID = ""
	}
	return clampSelection(g, sel)
}

func selectedTask(g model.GroupedTasks, sel selection) (model.Task, bool) {
	sel = clampSelection(g, sel)
	if sel.Row < 0 {
		return model.Task{}, false
	}
	return g[selectedStatus(sel)][sel.Row], true
}

// renderColumns lays the three columns side by side. In move mode the
// dragged card is highlighted at its provisional position.
func (m appModel) renderColumns() string {
	cols := columnStatuses()
	n := len(cols)

	gap := 2
	avail := m.width - gap*(n-1)
	if avail < n {
		avail = n
	}
	colW := avail / n
	if colW < 14 {
		colW = 14
	}

	maxRows := m.height - 8
	if maxRows < 3 {
		maxRows = 3
	}

	movingID := ""
	if m.drag != nil {
		movingID = m.drag.Dragging().ID
	}

	rendered := make([]string, 0, n)
	for ci, st := range cols {
		tasks := m.grouped[st]
		var b strings.Builder

		header := fmt.Sprintf("%s (%d)", columnLabel(st), len(tasks))
		b.WriteString(styleColumnHeader(ci == m.sel.Col).Render(xansi.Truncate(header, colW, "…")))
		b.WriteString("\n")
		b.WriteString(styleMuted().Render(xansi.Truncate(board.Indicator(st, m.view.SortConfigs(), m.view.Sequences()), colW, "…")))
		b.WriteString("\n\n")

		shown := tasks
		if len(shown) > maxRows {
			shown = shown[:maxRows]
		}
		for ri, t := range shown {
			selected := ci == m.sel.Col && ri == m.sel.Row && m.drag == nil
			moving := movingID != "" && t.ID == movingID
			b.WriteString(m.renderCard(t, colW, selected, moving))
			b.WriteString("\n")
		}
		if extra := len(tasks) - len(shown); extra > 0 {
			b.WriteString(styleMuted().Render(fmt.Sprintf("… %d more", extra)))
			b.WriteString("\n")
		}
		if len(tasks) == 0 {
			b.WriteString(styleMuted().Render("(empty)"))
			b.WriteString("\n")
		}

		rendered = append(rendered, lipgloss.NewStyle().Width(colW).Render(b.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, interleaveGap(rendered, gap)...)
}

func interleaveGap(cols []string, gap int) []string {
	spacer := strings.Repeat(" ", gap)
	out := make([]string, 0, len(cols)*2)
	for i, c := range cols {
		if i > 0 {
			out = append(out, spacer)
		}
		out = append(out, c)
	}
	return out
}

func (m appModel) renderCard(t model.Task, width int, selected, moving bool) string {
	inner := width - 2
	if inner < 4 {
		inner = 4
	}

	title := xansi.Truncate(t.Title, inner, "…")
	meta := cardMeta(t, m.users, m.view.IsBookmarked(t.ID))
	meta = xansi.Truncate(meta, inner, "…")

	card := title + "\n" + styleMuted().Render(meta)
	st := lipgloss.NewStyle().Width(width).Padding(0, 1)
	switch {
	case moving:
		st = st.Background(colorMoveBg).Bold(true)
	case selected:
		st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	}
	return st.Render(card)
}

func cardMeta(t model.Task, users map[string]model.User, bookmarked bool) string {
	parts := make([]string, 0, 4)
	parts = append(parts, string(t.Priority))
	if t.DueDate != "" {
		if due, ok := board.ParseDueDate(t.DueDate); ok {
			parts = append(parts, due.Format("Jan 2"))
		} else {
			parts = append(parts, t.DueDate)
		}
	}
	if u, ok := users[t.AssigneeID]; ok {
		parts = append(parts, u.Name)
	}
	if bookmarked {
		parts = append(parts, "★")
	}
	return strings.Join(parts, " · ")
}
