package board

import "taskdeck/internal/model"

// ViewState holds everything that shapes the visible board besides the
// tasks themselves: draft and applied filters, sort configuration, custom
// sequences, bookmarks, and the single user-visible error slot.
//
// It is owned by the UI event loop: all access is single-threaded, async
// backend responses are fed back in through Adopt* with the generation
// token handed out when the request started.
type ViewState struct {
	draft   model.FilterState
	applied model.FilterState

	sortConfigs model.ColumnSortConfig
	applyToAll  bool
	sequences   model.CustomTaskSequences
	bookmarks   []string
	version     int

	errMsg string

	issuedGen  uint64
	adoptedGen uint64
}

func NewViewState() *ViewState {
	return &ViewState{
		draft:       model.NewFilterState(),
		applied:     model.NewFilterState(),
		sortConfigs: model.ColumnSortConfig{},
		sequences:   model.DefaultSequences(),
		bookmarks:   []string{},
	}
}

// Draft returns the filter being edited in the panel. It does not affect
// the board until ApplyDraft commits it.
func (v *ViewState) Draft() model.FilterState { return v.draft }

func (v *ViewState) SetDraft(f model.FilterState) { v.draft = f }

// Applied returns the filter currently shaping the board.
func (v *ViewState) Applied() model.FilterState { return v.applied }

// ApplyDraft commits the draft filter to the board.
func (v *ViewState) ApplyDraft() { v.applied = v.draft }

// RevertDraft discards panel edits, resetting the draft to what is applied.
func (v *ViewState) RevertDraft() { v.draft = v.applied }

// ClearFilters resets both draft and applied to match-everything.
func (v *ViewState) ClearFilters() {
	v.draft = model.NewFilterState()
	v.applied = model.NewFilterState()
}

func (v *ViewState) SortConfigs() model.ColumnSortConfig { return v.sortConfigs }

func (v *ViewState) SetSortConfigs(cfg model.ColumnSortConfig) {
	if cfg == nil {
		cfg = model.ColumnSortConfig{}
	}
	v.sortConfigs = cfg
}

// ApplyToAll reports whether sort edits should target every column.
func (v *ViewState) ApplyToAll() bool { return v.applyToAll }

func (v *ViewState) SetApplyToAll(b bool) { v.applyToAll = b }

func (v *ViewState) Sequences() model.CustomTaskSequences { return v.sequences }

func (v *ViewState) SetSequences(seqs model.CustomTaskSequences) {
	if seqs == nil {
		seqs = model.DefaultSequences()
	}
	v.sequences = seqs
}

// SetSequence replaces one column's sequence, marking it active.
func (v *ViewState) SetSequence(st model.TaskStatus, ids []string) {
	v.sequences[st] = model.CustomTaskSequence{UseSequence: true, Sequence: ids}
}

// DisableSequence turns a column back over to configured sort / natural order.
func (v *ViewState) DisableSequence(st model.TaskStatus) {
	v.sequences[st] = model.CustomTaskSequence{UseSequence: false, Sequence: []string{}}
}

func (v *ViewState) Bookmarks() []string { return v.bookmarks }

func (v *ViewState) SetBookmarks(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	v.bookmarks = ids
}

func (v *ViewState) IsBookmarked(taskID string) bool {
	for _, id := range v.bookmarks {
		if id == taskID {
			return true
		}
	}
	return false
}

// Version is the last adopted AppState version, passed back on writes so
// the store can detect concurrent edits.
func (v *ViewState) Version() int { return v.version }

// SetError records a user-visible error; the newest message wins.
func (v *ViewState) SetError(msg string) { v.errMsg = msg }

// Error returns the current error message, empty when dismissed.
func (v *ViewState) Error() string { return v.errMsg }

func (v *ViewState) DismissError() { v.errMsg = "" }

// BeginSync hands out a monotonic token for an in-flight app-state fetch.
// Responses are adopted in token order; a slow response that arrives after
// a newer one has landed is dropped instead of clobbering it.
func (v *ViewState) BeginSync() uint64 {
	v.issuedGen++
	return v.issuedGen
}

// AdoptAppState installs a fetched AppState if it is not stale. Reports
// whether it was applied.
func (v *ViewState) AdoptAppState(st model.AppState, gen uint64) bool {
	if gen <= v.adoptedGen {
		return false
	}
	v.adoptedGen = gen
	v.SetSortConfigs(st.ColumnSortConfigs)
	v.applyToAll = st.ApplyToAllColumns
	v.SetSequences(st.Sequences)
	v.SetBookmarks(st.Bookmarks)
	v.version = st.Version
	return true
}

// Resolve runs the full pipeline over the raw task list with the current
// applied filters, sort configuration and sequences.
func (v *ViewState) Resolve(tasks []model.Task, users map[string]model.User) model.GroupedTasks {
	filtered := Filter(tasks, v.applied, v.bookmarks)
	return Resolve(filtered, v.sortConfigs, v.sequences, users)
}
