package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The board must stay readable on light and dark terminals, so every
// color is a lipgloss.AdaptiveColor pair.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorHeaderFg   lipgloss.TerminalColor = ac("235", "252")
	colorAccent     lipgloss.TerminalColor = ac("25", "39")
	colorDanger     lipgloss.TerminalColor = ac("124", "203")
	colorMoveBg     lipgloss.TerminalColor = ac("#fff3c4", "#3a3000")

	colorPriorityHigh   lipgloss.TerminalColor = ac("124", "203")
	colorPriorityMedium lipgloss.TerminalColor = ac("130", "214")
	colorPriorityLow    lipgloss.TerminalColor = ac("28", "77")
)

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleColumnHeader(selected bool) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true).Foreground(colorHeaderFg)
	if selected {
		st = st.Foreground(colorAccent).Underline(true)
	}
	return st
}

func styleErrorBanner() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorDanger)
}

// ForceColorProfile pins rendering for tests so output does not depend on
// the terminal the tests run in.
func ForceColorProfile() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func priorityColor(p string) lipgloss.TerminalColor {
	switch p {
	case "high":
		return colorPriorityHigh
	case "low":
		return colorPriorityLow
	default:
		return colorPriorityMedium
	}
}
