// Package backend defines the persistence contract the board consumes.
//
// Two implementations exist: the local document store (internal/store) and
// the HTTP client (internal/api). The engines never talk to either
// directly; everything goes through this interface so the TUI and CLI can
// run against a local data dir or a remote server interchangeably.
package backend

import (
	"context"

	"taskdeck/internal/model"
)

// TaskDraft is the create payload. The server fills ID/CreatedAt/UpdatedAt
// when absent.
type TaskDraft struct {
	ID          string             `json:"id,omitempty"`
	Title       string             `json:"title" validate:"required,min=3"`
	Description string             `json:"description" validate:"required,min=5"`
	Status      model.TaskStatus   `json:"status,omitempty"`
	Priority    model.TaskPriority `json:"priority,omitempty"`
	AssigneeID  string             `json:"assigneeId,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	DueDate     string             `json:"dueDate" validate:"required"`
}

// TaskPatch is the partial-update payload; nil fields are left untouched.
type TaskPatch struct {
	Title       *string             `json:"title,omitempty" validate:"omitempty,min=3"`
	Description *string             `json:"description,omitempty" validate:"omitempty,min=5"`
	Status      *model.TaskStatus   `json:"status,omitempty"`
	Priority    *model.TaskPriority `json:"priority,omitempty"`
	AssigneeID  *string             `json:"assigneeId,omitempty"`
	Tags        *[]string           `json:"tags,omitempty"`
	DueDate     *string             `json:"dueDate,omitempty"`
}

type Backend interface {
	GetAllTasks(ctx context.Context) ([]model.Task, error)
	GetTaskByID(ctx context.Context, id string) (model.Task, error)
	CreateTask(ctx context.Context, draft TaskDraft) (model.Task, error)
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (model.Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) (model.Task, error)
	DeleteTask(ctx context.Context, id string) (model.Task, error)

	GetAllUsers(ctx context.Context) ([]model.User, error)

	GetAppState(ctx context.Context, userID string) (model.AppState, error)
	// UpdateSortConfig and UpdateSequences take the writer's last-seen
	// AppState version; pass 0 to skip the conflict check.
	UpdateSortConfig(ctx context.Context, userID string, cfg model.ColumnSortConfig, applyToAll bool, expectVersion int) (model.AppState, error)
	UpdateSequences(ctx context.Context, userID string, seqs model.CustomTaskSequences, expectVersion int) (model.AppState, error)
	AddBookmark(ctx context.Context, userID, taskID string) (model.AppState, error)
	RemoveBookmark(ctx context.Context, userID, taskID string) (model.AppState, error)
	ResetAppState(ctx context.Context, userID string) error
}
