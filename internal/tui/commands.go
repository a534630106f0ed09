package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/backend"
	"taskdeck/internal/board"
	"taskdeck/internal/model"
)

const backendTimeout = 10 * time.Second

type tasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

type usersLoadedMsg struct {
	users []model.User
	err   error
}

// appStateLoadedMsg carries the generation token handed out by
// ViewState.BeginSync so stale responses can be dropped.
type appStateLoadedMsg struct {
	state model.AppState
	gen   uint64
	err   error
}

type appStateSavedMsg struct {
	state model.AppState
	gen   uint64
	err   error
}

// dropSavedMsg reports the outcome of persisting a drag commit. On
// failure the board reverts to the pre-drag view.
type dropSavedMsg struct {
	commit   board.Commit
	appState model.AppState
	gen      uint64
	err      error
}

type taskMutatedMsg struct {
	task model.Task
	err  error
}

type searchDebounceMsg struct{ seq int }

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), backendTimeout)
}

func loadTasksCmd(b backend.Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		tasks, err := b.GetAllTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func loadUsersCmd(b backend.Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		users, err := b.GetAllUsers(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func loadAppStateCmd(b backend.Backend, userID string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		st, err := b.GetAppState(ctx, userID)
		return appStateLoadedMsg{state: st, gen: gen, err: err}
	}
}

func saveSortConfigCmd(b backend.Backend, userID string, cfg model.ColumnSortConfig, applyToAll bool, version int, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		st, err := b.UpdateSortConfig(ctx, userID, cfg, applyToAll, version)
		return appStateSavedMsg{state: st, gen: gen, err: err}
	}
}

func saveSequencesCmd(b backend.Backend, userID string, seqs model.CustomTaskSequences, version int, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		st, err := b.UpdateSequences(ctx, userID, seqs, version)
		return appStateSavedMsg{state: st, gen: gen, err: err}
	}
}

func toggleBookmarkCmd(b backend.Backend, userID, taskID string, bookmarked bool, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		var (
			st  model.AppState
			err error
		)
		if bookmarked {
			st, err = b.RemoveBookmark(ctx, userID, taskID)
		} else {
			st, err = b.AddBookmark(ctx, userID, taskID)
		}
		return appStateSavedMsg{state: st, gen: gen, err: err}
	}
}

// persistDropCmd stamps the task's new status first, then writes the
// affected sequences; either failure aborts the whole commit.
func persistDropCmd(b backend.Backend, userID string, c board.Commit, version int, gen uint64) tea.Cmd {
	seqs := model.CustomTaskSequences{}
	for st, ids := range c.Sequences {
		seqs[st] = model.CustomTaskSequence{UseSequence: true, Sequence: ids}
	}
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		if c.StatusChanged {
			if _, err := b.UpdateTaskStatus(ctx, c.TaskID, c.To); err != nil {
				return dropSavedMsg{commit: c, gen: gen, err: err}
			}
		}
		st, err := b.UpdateSequences(ctx, userID, seqs, version)
		return dropSavedMsg{commit: c, appState: st, gen: gen, err: err}
	}
}

func updateTaskStatusCmd(b backend.Backend, taskID string, status model.TaskStatus) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		task, err := b.UpdateTaskStatus(ctx, taskID, status)
		return taskMutatedMsg{task: task, err: err}
	}
}

const searchDebounce = 300 * time.Millisecond

func searchDebounceCmd(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg { return searchDebounceMsg{seq: seq} })
}
