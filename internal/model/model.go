package model

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// Statuses returns the board columns in display order.
func Statuses() []TaskStatus {
	return []TaskStatus{StatusTodo, StatusInProgress, StatusDone}
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssigneeID  string       `json:"assigneeId,omitempty"`
	Tags        []string     `json:"tags"`

	// DueDate is an ISO-8601 date ("2025-01-10") or instant ("2025-01-10T09:00:00Z").
	// Kept as entered; parsed on demand for comparisons.
	DueDate string `json:"dueDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// IsRecentlyUpdated is a display hint set by the server on mutation.
	IsRecentlyUpdated bool `json:"isRecentlyUpdated,omitempty"`
}

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Color  string `json:"color"`
}

type SortField string

const (
	SortByDueDate  SortField = "dueDate"
	SortByPriority SortField = "priority"
	SortByAssignee SortField = "assignee"
)

func (f SortField) IsValid() bool {
	switch f {
	case SortByDueDate, SortByPriority, SortByAssignee:
		return true
	}
	return false
}

type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

func (d SortDirection) IsValid() bool {
	return d == SortAscending || d == SortDescending
}

// SortOption is one key of a multi-key column sort; the first option in a
// column's list is the primary key.
type SortOption struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// ColumnSortConfig maps each status column to its ordered sort keys.
// A missing or empty entry means "no configured sort" for that column.
type ColumnSortConfig map[TaskStatus][]SortOption

// CustomTaskSequence is an explicit manual ordering of task ids for one
// column, produced by drag and drop. UseSequence=false means fall back to
// the configured sort (or natural order).
type CustomTaskSequence struct {
	UseSequence bool     `json:"useSequence"`
	Sequence    []string `json:"sequence"`
}

type CustomTaskSequences map[TaskStatus]CustomTaskSequence

// DefaultSequences returns an all-columns-disabled sequence set.
func DefaultSequences() CustomTaskSequences {
	out := CustomTaskSequences{}
	for _, st := range Statuses() {
		out[st] = CustomTaskSequence{UseSequence: false, Sequence: []string{}}
	}
	return out
}

type SearchScope string

const (
	SearchAll         SearchScope = "all"
	SearchTitle       SearchScope = "title"
	SearchDescription SearchScope = "description"
	SearchTags        SearchScope = "tags"
)

// DueDateRange bounds task due dates. Either side may be empty (open bound).
// To is end-of-day inclusive when given as a bare date.
type DueDateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type FilterState struct {
	SearchBy           SearchScope    `json:"searchBy"`
	AssigneeIDs        []string       `json:"assigneeIds"`
	Priorities         []TaskPriority `json:"priorities"`
	DueDateRange       *DueDateRange  `json:"dueDateRange,omitempty"`
	ShowBookmarkedOnly bool           `json:"showBookmarkedOnly"`
	Query              string         `json:"query"`
}

// NewFilterState returns the empty (match-everything) filter.
func NewFilterState() FilterState {
	return FilterState{
		SearchBy:    SearchAll,
		AssigneeIDs: []string{},
		Priorities:  []TaskPriority{},
	}
}

// IsEmpty reports whether the filter matches everything.
func (f FilterState) IsEmpty() bool {
	return len(f.AssigneeIDs) == 0 &&
		len(f.Priorities) == 0 &&
		(f.DueDateRange == nil || (f.DueDateRange.From == "" && f.DueDateRange.To == "")) &&
		!f.ShowBookmarkedOnly &&
		strings.TrimSpace(f.Query) == ""
}

// AppState is the per-user persisted aggregate: sort configuration,
// bookmarks and custom drag sequences. Created lazily on first read.
type AppState struct {
	UserID            string              `json:"userId"`
	ColumnSortConfigs ColumnSortConfig    `json:"columnSortConfigs"`
	ApplyToAllColumns bool                `json:"applyToAllColumns"`
	Bookmarks         []string            `json:"bookmarks"`
	Sequences         CustomTaskSequences `json:"sequences"`

	// Version increments on every write; writers may pass their last-seen
	// version to detect concurrent updates from another client.
	Version int `json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAppState returns the lazy default created on first access.
func NewAppState(userID string) *AppState {
	now := time.Now().UTC()
	cfg := ColumnSortConfig{}
	for _, st := range Statuses() {
		cfg[st] = []SortOption{}
	}
	return &AppState{
		UserID:            userID,
		ColumnSortConfigs: cfg,
		Bookmarks:         []string{},
		Sequences:         DefaultSequences(),
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// GroupedTasks is the resolved board: one ordered task list per column.
// All three statuses are always present as keys.
type GroupedTasks map[TaskStatus][]Task

// NewGroupedTasks returns an empty grouping with all columns present.
func NewGroupedTasks() GroupedTasks {
	g := GroupedTasks{}
	for _, st := range Statuses() {
		g[st] = []Task{}
	}
	return g
}

// Clone returns a deep-enough copy: new slices, shared task values.
func (g GroupedTasks) Clone() GroupedTasks {
	out := GroupedTasks{}
	for st, tasks := range g {
		cp := make([]Task, len(tasks))
		copy(cp, tasks)
		out[st] = cp
	}
	return out
}
