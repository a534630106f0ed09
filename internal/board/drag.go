package board

import "taskdeck/internal/model"

// DropTarget is the tentative landing spot of the dragged card.
type DropTarget struct {
	Status model.TaskStatus
	Index  int
}

// Commit is the plan produced by a successful drop. The caller performs
// the backend status call (when StatusChanged) and persists Sequences;
// only then should it adopt Grouped as the new resolved view. On backend
// failure it reverts with Cancel instead, so client and server stay
// consistent.
type Commit struct {
	TaskID        string
	From          model.TaskStatus
	To            model.TaskStatus
	StatusChanged bool

	// Sequences holds the ordered id list per column to persist with
	// UseSequence=true: always the target column, plus the source column
	// on a cross-column move.
	Sequences map[model.TaskStatus][]string

	Grouped model.GroupedTasks
}

// DragSession is the per-gesture state machine: Begin on dragstart, Hover*
// on every dragover (each recomputes the provisional view from the latest
// one), Drop on drop, Cancel when the gesture ends without a target.
//
// The session owns its provisional view; the dragged task is removed from
// every column before each reinsertion, so it can never appear twice or
// vanish regardless of how the gesture ends.
type DragSession struct {
	task   model.Task
	origin DropTarget
	base   model.GroupedTasks
	view   model.GroupedTasks
	target *DropTarget
}

// BeginDrag starts a session for the card at sourceIndex of its column.
// grouped must be the currently resolved view; it is not mutated.
func BeginDrag(grouped model.GroupedTasks, task model.Task, sourceIndex int) *DragSession {
	return &DragSession{
		task:   task,
		origin: DropTarget{Status: task.Status, Index: sourceIndex},
		base:   grouped.Clone(),
		view:   grouped.Clone(),
	}
}

// Dragging returns the task captured at dragstart.
func (s *DragSession) Dragging() model.Task { return s.task }

// Target returns the current drop target, if any hover recorded one.
func (s *DragSession) Target() (DropTarget, bool) {
	if s.target == nil {
		return DropTarget{}, false
	}
	return *s.target, true
}

// View returns the provisional grouped view. Callers must treat it as
// read-only; it is replaced wholesale by the next hover.
func (s *DragSession) View() model.GroupedTasks { return s.view }

// HoverCard previews dropping onto the card currently at index in the
// given column. Hovering over the dragged card itself is ignored.
func (s *DragSession) HoverCard(targetID string, status model.TaskStatus, index int) model.GroupedTasks {
	if targetID == s.task.ID || !status.IsValid() {
		return s.view
	}
	next := s.view.Clone()
	removeTask(next, s.task.ID)

	col := next[status]
	if index < 0 {
		index = 0
	}
	if index > len(col) {
		index = len(col)
	}
	moved := s.task
	moved.Status = status // display-only until the drop commits
	col = append(col, model.Task{})
	copy(col[index+1:], col[index:])
	col[index] = moved
	next[status] = col

	s.view = next
	s.target = &DropTarget{Status: status, Index: index}
	return s.view
}

// HoverColumn previews dropping into empty space of a column: the card
// goes to the tail. Repeated hovers over the column already targeted are
// no-ops so card-level hovers inside it are not clobbered.
func (s *DragSession) HoverColumn(status model.TaskStatus) model.GroupedTasks {
	if !status.IsValid() {
		return s.view
	}
	if s.target != nil && s.target.Status == status {
		return s.view
	}
	next := s.view.Clone()
	removeTask(next, s.task.ID)

	moved := s.task
	moved.Status = status
	next[status] = append(next[status], moved)

	s.view = next
	s.target = &DropTarget{Status: status, Index: len(next[status]) - 1}
	return s.view
}

// Drop finalizes the gesture. ok=false means nothing to do: no hover ever
// recorded a target, or the card sits exactly where it started (no backend
// call, no sequence write). Either way the session is finished.
func (s *DragSession) Drop() (Commit, bool) {
	if s.target == nil {
		return Commit{}, false
	}
	if *s.target == s.origin {
		return Commit{}, false
	}

	to := s.target.Status
	from := s.origin.Status
	commit := Commit{
		TaskID:        s.task.ID,
		From:          from,
		To:            to,
		StatusChanged: from != to,
		Sequences:     map[model.TaskStatus][]string{},
		Grouped:       s.view.Clone(),
	}
	commit.Sequences[to] = columnIDs(s.view[to])
	if commit.StatusChanged {
		commit.Sequences[from] = columnIDs(s.view[from])
	}
	return commit, true
}

// Cancel reverts to the view captured at dragstart.
func (s *DragSession) Cancel() model.GroupedTasks {
	s.view = s.base.Clone()
	s.target = nil
	return s.view
}

func removeTask(g model.GroupedTasks, id string) {
	for _, st := range model.Statuses() {
		col := g[st]
		out := col[:0]
		for _, t := range col {
			if t.ID != id {
				out = append(out, t)
			}
		}
		g[st] = out
	}
}

func columnIDs(tasks []model.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
