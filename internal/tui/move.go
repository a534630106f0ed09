package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/board"
)

// Move mode is the keyboard drag gesture: enter grabs the selected card,
// arrows hover-preview it through the columns, enter drops and persists,
// esc reverts. The session's provisional view is shown while it lasts.

func (m appModel) beginMove() (tea.Model, tea.Cmd) {
	if m.drag != nil {
		return m, nil
	}
	task, ok := selectedTask(m.grouped, m.sel)
	if !ok {
		return m, nil
	}
	m.drag = board.BeginDrag(m.grouped, task, m.sel.Row)
	m.mode = modeMove
	return m, nil
}

func (m appModel) updateMoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.drag == nil {
		m.mode = modeBoard
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.grouped = m.drag.Cancel()
		m.drag = nil
		m.mode = modeBoard
		m.sel = clampSelection(m.grouped, m.sel)
		return m, nil

	case "up", "k":
		return m.hoverMove(0, -1)
	case "down", "j":
		return m.hoverMove(0, 1)
	case "left", "h":
		return m.hoverMove(-1, 0)
	case "right", "l":
		return m.hoverMove(1, 0)

	case "enter", "m":
		commit, ok := m.drag.Drop()
		if !ok {
			// Nothing moved; end the gesture where it started.
			m.grouped = m.drag.Cancel()
			m.drag = nil
			m.mode = modeBoard
			return m, nil
		}
		// Show the provisional result immediately; dropSavedMsg either
		// confirms it or reverts.
		m.grouped = commit.Grouped
		m.mode = modeBoard
		return m, persistDropCmd(m.backend, m.userID, commit, m.view.Version(), m.view.BeginSync())
	}
	return m, nil
}

// hoverMove computes the next hover position from the card's current
// provisional spot and feeds it to the session.
func (m appModel) hoverMove(dCol, dRow int) (tea.Model, tea.Cmd) {
	cols := columnStatuses()
	view := m.drag.View()
	id := m.drag.Dragging().ID

	ci, ri, ok := indexOfTaskID(view, id)
	if !ok {
		return m, nil
	}

	if dCol != 0 {
		ci += dCol
		if ci < 0 || ci >= len(cols) {
			return m, nil
		}
		st := cols[ci]
		// Land at the same row when the column is long enough, otherwise
		// at its tail.
		if ri < len(view[st]) {
			over := view[st][ri]
			m.grouped = m.drag.HoverCard(over.ID, st, ri)
		} else {
			m.grouped = m.drag.HoverColumn(st)
		}
		m.sel = selection{Col: ci, ID: id}
		m.sel = clampSelection(m.grouped, m.sel)
		return m, nil
	}

	st := cols[ci]
	ri += dRow
	if ri < 0 || ri >= len(view[st]) {
		return m, nil
	}
	over := view[st][ri]
	m.grouped = m.drag.HoverCard(over.ID, st, ri)
	m.sel = selection{Col: ci, ID: id}
	m.sel = clampSelection(m.grouped, m.sel)
	return m, nil
}

// updateDropSaved finalizes or reverts an in-flight drop.
func (m appModel) updateDropSaved(msg dropSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.drag != nil {
			m.grouped = m.drag.Cancel()
		}
		m.drag = nil
		m.view.SetError("saving move failed: " + msg.err.Error())
		// Resync both halves; the status write may have landed even if
		// the sequence write did not.
		return m, tea.Batch(
			loadTasksCmd(m.backend),
			loadAppStateCmd(m.backend, m.userID, m.view.BeginSync()),
		)
	}
	m.drag = nil
	adopted := m.view.AdoptAppState(msg.appState, msg.gen)
	if adopted {
		m.cacheSeeded = false
		m.saveCachedState()
	}
	if msg.commit.StatusChanged {
		// Keep showing the committed view until the refreshed task list
		// arrives; resolving against stale statuses would bounce the card
		// back for a frame.
		return m, loadTasksCmd(m.backend)
	}
	if adopted {
		m.resolve()
	}
	return m, nil
}
