package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	var b strings.Builder

	title := "taskdeck"
	if m.mode == modeMove {
		title += " · move mode"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title))

	applied := m.view.Applied()
	if !applied.IsEmpty() {
		b.WriteString(styleMuted().Render("  (filtered)"))
	}
	b.WriteString("\n")

	if msg := m.view.Error(); msg != "" {
		b.WriteString(styleErrorBanner().Render("! " + msg + "  (esc dismisses)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.mode {
	case modeFilter:
		b.WriteString(m.renderFilterPanel())
	case modeSort:
		b.WriteString(m.renderSortEditor())
	case modeDetail:
		b.WriteString(m.renderDetail())
	default:
		if m.loading {
			b.WriteString(styleMuted().Render("loading board…"))
		} else {
			b.WriteString(m.renderColumns())
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m appModel) renderFooter() string {
	switch m.mode {
	case modeMove:
		return styleMuted().Render("arrows move card · enter drop · esc cancel")
	case modeSearch:
		return fmt.Sprintf("/ %s\n%s", m.search.View(),
			styleMuted().Render("enter apply · esc close"))
	case modeFilter, modeSort, modeDetail:
		return ""
	}
	help := "←↓↑→ select · enter move · 1-3 send to column · / search · f filter · s sort · b bookmark · space detail · o natural order · c clear · r reload · q quit"
	return styleMuted().Render(help)
}
