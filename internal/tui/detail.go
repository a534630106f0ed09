package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/board"
	"taskdeck/internal/model"
)

func (m appModel) renderDetail() string {
	var task model.Task
	found := false
	for _, t := range m.tasks {
		if t.ID == m.detailID {
			task = t
			found = true
			break
		}
	}
	if !found {
		return styleMuted().Render("task no longer exists")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(task.Title))
	b.WriteString("\n\n")

	prio := lipgloss.NewStyle().Foreground(priorityColor(string(task.Priority))).Render(string(task.Priority))
	b.WriteString(fmt.Sprintf("%s · %s", columnLabel(task.Status), prio))
	if due, ok := board.ParseDueDate(task.DueDate); ok {
		b.WriteString(" · due " + due.Format("Mon, Jan 2 2006"))
	}
	b.WriteString("\n")
	if u, ok := m.users[task.AssigneeID]; ok {
		b.WriteString("assignee: " + u.Name + "\n")
	}
	if len(task.Tags) > 0 {
		b.WriteString("tags: " + strings.Join(task.Tags, ", ") + "\n")
	}
	if m.view.IsBookmarked(task.ID) {
		b.WriteString("bookmarked\n")
	}
	b.WriteString("\n")
	b.WriteString(renderMarkdown(task.Description, m.width))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("esc close"))
	return b.String()
}

// renderMarkdown renders the description through glamour, falling back to
// plain text when rendering fails (e.g. no TTY in tests).
func renderMarkdown(src string, width int) string {
	if width <= 0 || width > 100 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n")
}
