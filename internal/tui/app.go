package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/backend"
	"taskdeck/internal/board"
	"taskdeck/internal/model"
	"taskdeck/internal/store"
)

type mode int

const (
	modeBoard mode = iota
	modeMove
	modeSearch
	modeFilter
	modeSort
	modeDetail
)

// selection tracks the focused card. ID is preferred over indexes so
// focus survives re-sorts and column moves.
type selection struct {
	Col int
	Row int
	ID  string
}

type appModel struct {
	backend backend.Backend
	userID  string

	// cache holds the local write-through snapshot; nil disables it.
	cache       *store.Store
	cacheSeeded bool

	width  int
	height int

	mode mode

	tasks   []model.Task
	users   map[string]model.User
	view    *board.ViewState
	grouped model.GroupedTasks
	sel     selection

	drag *board.DragSession

	search    textinput.Model
	searchSeq int

	filter filterPanel
	sort   sortEditor

	detailID string

	loading bool
}

func newAppModel(b backend.Backend, userID string, cache *store.Store) appModel {
	search := textinput.New()
	search.Placeholder = "search tasks"
	search.CharLimit = 120
	search.Width = 40

	m := appModel{
		backend: b,
		userID:  userID,
		cache:   cache,
		users:   map[string]model.User{},
		view:    board.NewViewState(),
		grouped: model.NewGroupedTasks(),
		search:  search,
		loading: true,
	}
	m.loadCachedState()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		loadTasksCmd(m.backend),
		loadUsersCmd(m.backend),
		loadAppStateCmd(m.backend, m.userID, m.view.BeginSync()),
	)
}

// resolve recomputes the grouped view from the current tasks, filters and
// ordering state, then re-clamps the selection.
func (m *appModel) resolve() {
	m.grouped = m.view.Resolve(m.tasks, m.users)
	m.sel = clampSelection(m.grouped, m.sel)
}

// adoptAppState folds a backend AppState response into the view state,
// dropping it when a newer response already landed.
func (m *appModel) adoptAppState(st model.AppState, gen uint64) {
	if !m.view.AdoptAppState(st, gen) {
		return
	}
	m.cacheSeeded = false
	m.resolve()
	m.saveCachedState()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.view.SetError("loading tasks failed: " + msg.err.Error())
			return m, nil
		}
		m.tasks = msg.tasks
		m.reconcileCachedSequences()
		m.resolve()
		return m, nil

	case usersLoadedMsg:
		if msg.err != nil {
			m.view.SetError("loading users failed: " + msg.err.Error())
			return m, nil
		}
		m.users = board.UserIndex(msg.users)
		m.resolve()
		return m, nil

	case appStateLoadedMsg:
		if msg.err != nil {
			m.view.SetError("loading app state failed: " + msg.err.Error())
			return m, nil
		}
		m.adoptAppState(msg.state, msg.gen)
		return m, nil

	case appStateSavedMsg:
		if msg.err != nil {
			m.view.SetError("saving app state failed: " + msg.err.Error())
			// Refetch so the board reflects whatever the server holds.
			return m, loadAppStateCmd(m.backend, m.userID, m.view.BeginSync())
		}
		m.adoptAppState(msg.state, msg.gen)
		return m, nil

	case dropSavedMsg:
		return m.updateDropSaved(msg)

	case taskMutatedMsg:
		if msg.err != nil {
			m.view.SetError("updating task failed: " + msg.err.Error())
			return m, nil
		}
		return m, loadTasksCmd(m.backend)

	case searchDebounceMsg:
		// Only the latest keystroke's tick applies the query.
		if msg.seq != m.searchSeq {
			return m, nil
		}
		draft := m.view.Draft()
		draft.Query = m.search.Value()
		m.view.SetDraft(draft)
		m.view.ApplyDraft()
		m.resolve()
		m.saveCachedState()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.mode == modeSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The error banner swallows the first keypress that dismisses it.
	if m.view.Error() != "" && msg.String() == "esc" {
		m.view.DismissError()
		return m, nil
	}

	switch m.mode {
	case modeMove:
		return m.updateMoveKey(msg)
	case modeSearch:
		return m.updateSearchKey(msg)
	case modeFilter:
		return m.updateFilterKey(msg)
	case modeSort:
		return m.updateSortKey(msg)
	case modeDetail:
		return m.updateDetailKey(msg)
	}
	return m.updateBoardKey(msg)
}

func (m appModel) updateBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r":
		m.loading = true
		return m, tea.Batch(
			loadTasksCmd(m.backend),
			loadAppStateCmd(m.backend, m.userID, m.view.BeginSync()),
		)

	case "left", "h":
		m.sel = moveSelection(m.grouped, m.sel, -1, 0)
		return m, nil
	case "right", "l":
		m.sel = moveSelection(m.grouped, m.sel, 1, 0)
		return m, nil
	case "up", "k":
		m.sel = moveSelection(m.grouped, m.sel, 0, -1)
		return m, nil
	case "down", "j":
		m.sel = moveSelection(m.grouped, m.sel, 0, 1)
		return m, nil

	case "enter", "m":
		return m.beginMove()

	case "1", "2", "3":
		// Send the selected card straight to a column, skipping the
		// move gesture. Ordering lands at the column's natural spot.
		task, ok := selectedTask(m.grouped, m.sel)
		if !ok {
			return m, nil
		}
		st := columnStatuses()[int(msg.String()[0]-'1')]
		if st == task.Status {
			return m, nil
		}
		return m, updateTaskStatusCmd(m.backend, task.ID, st)

	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.view.Draft().Query)
		m.search.Focus()
		return m, textinput.Blink

	case "f":
		m.mode = modeFilter
		m.filter = newFilterPanel(m.view.Draft(), m.users)
		return m, nil

	case "s":
		m.mode = modeSort
		m.sort = newSortEditor(selectedStatus(m.sel), m.view.SortConfigs(), m.view.ApplyToAll())
		return m, nil

	case "b":
		task, ok := selectedTask(m.grouped, m.sel)
		if !ok {
			return m, nil
		}
		return m, toggleBookmarkCmd(
			m.backend, m.userID, task.ID,
			m.view.IsBookmarked(task.ID),
			m.view.BeginSync(),
		)

	case "o":
		// Drop the column's custom order, falling back to its sort.
		st := selectedStatus(m.sel)
		m.view.DisableSequence(st)
		m.resolve()
		return m, saveSequencesCmd(m.backend, m.userID, model.CustomTaskSequences{
			st: {UseSequence: false, Sequence: []string{}},
		}, m.view.Version(), m.view.BeginSync())

	case "c":
		m.view.ClearFilters()
		m.search.SetValue("")
		m.resolve()
		m.saveCachedState()
		return m, nil

	case " ":
		if task, ok := selectedTask(m.grouped, m.sel); ok {
			m.detailID = task.ID
			m.mode = modeDetail
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBoard
		m.search.Blur()
		return m, nil
	case "enter":
		m.mode = modeBoard
		m.search.Blur()
		draft := m.view.Draft()
		draft.Query = m.search.Value()
		m.view.SetDraft(draft)
		m.view.ApplyDraft()
		m.resolve()
		m.saveCachedState()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.searchSeq++
	return m, tea.Batch(cmd, searchDebounceCmd(m.searchSeq))
}

func (m appModel) updateDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", " ":
		m.mode = modeBoard
		m.detailID = ""
	}
	return m, nil
}
