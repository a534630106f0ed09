// Package tui is the interactive kanban board: three status columns over
// the resolved task ordering, with keyboard-driven drag and drop, search,
// filters and per-column sorting.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/backend"
	"taskdeck/internal/store"
)

// Run opens the board against the given backend and blocks until the
// user quits. cacheDir, when non-empty, is where the view cache snapshot
// is kept so the next open starts from the last-known ordering.
func Run(b backend.Backend, userID, cacheDir string) error {
	var cache *store.Store
	if strings.TrimSpace(cacheDir) != "" {
		cache = &store.Store{Dir: cacheDir}
	}
	m := newAppModel(b, userID, cache)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
