package tui

import (
	"taskdeck/internal/model"
	"taskdeck/internal/store"
)

// loadCachedState seeds the view from the last write-through snapshot so
// the board opens with the previous ordering before the first backend
// response lands. The backend copy replaces it once it arrives.
func (m *appModel) loadCachedState() {
	if m.cache == nil {
		return
	}
	vc, err := m.cache.LoadViewCache()
	if err != nil || vc.UserID != m.userID || vc.AppState == nil {
		return
	}
	st := vc.AppState
	m.view.SetSortConfigs(st.ColumnSortConfigs)
	m.view.SetApplyToAll(st.ApplyToAllColumns)
	m.view.SetSequences(st.Sequences)
	m.view.SetBookmarks(st.Bookmarks)
	if vc.LastQuery != "" {
		draft := m.view.Draft()
		draft.Query = vc.LastQuery
		m.view.SetDraft(draft)
		m.view.ApplyDraft()
		m.search.SetValue(vc.LastQuery)
	}
	m.cacheSeeded = true
}

// reconcileCachedSequences runs once the task list is known while the
// view still holds cache-seeded state. Tasks deleted since the snapshot
// are pruned and orderings that collapsed to natural order are disabled.
func (m *appModel) reconcileCachedSequences() {
	if !m.cacheSeeded {
		return
	}
	m.view.SetSequences(store.ReconcileSequences(m.view.Sequences(), naturalGrouped(m.tasks)))
}

// saveCachedState persists the adopted view state next to the data dir.
// Best effort; a failed write only costs the next startup its warm open.
func (m *appModel) saveCachedState() {
	if m.cache == nil {
		return
	}
	st := model.AppState{
		UserID:            m.userID,
		ColumnSortConfigs: m.view.SortConfigs(),
		ApplyToAllColumns: m.view.ApplyToAll(),
		Bookmarks:         m.view.Bookmarks(),
		Sequences:         m.view.Sequences(),
		Version:           m.view.Version(),
	}
	_ = m.cache.SaveViewCache(&store.ViewCache{
		Version:   1,
		UserID:    m.userID,
		AppState:  &st,
		LastQuery: m.view.Applied().Query,
	})
}

func naturalGrouped(tasks []model.Task) model.GroupedTasks {
	g := model.NewGroupedTasks()
	for _, t := range tasks {
		if t.Status.IsValid() {
			g[t.Status] = append(g[t.Status], t)
		}
	}
	return g
}
