package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"taskdeck/internal/backend"
	"taskdeck/internal/model"
	"taskdeck/internal/store"
	"taskdeck/internal/web"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	svc := store.NewService(t.TempDir(), nil)
	srv := web.NewServer(svc, nil, nil)
	go srv.Hub().Run()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL)
}

func TestClient_TaskRoundTrip(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateTask(ctx, backend.TaskDraft{
		Title:       "Client created task",
		Description: "created through the HTTP client",
		DueDate:     "2026-09-20",
		Tags:        []string{"client"},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ID == "" || created.Status != model.StatusTodo {
		t.Fatalf("created = %#v", created)
	}

	got, err := c.GetTaskByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if got.Title != created.Title {
		t.Fatalf("title = %q", got.Title)
	}

	newTitle := "Renamed through client"
	updated, err := c.UpdateTask(ctx, created.ID, backend.TaskPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != newTitle || updated.Description != created.Description {
		t.Fatalf("updated = %#v", updated)
	}

	moved, err := c.UpdateTaskStatus(ctx, created.ID, model.StatusInProgress)
	if err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	if moved.Status != model.StatusInProgress {
		t.Fatalf("status = %q", moved.Status)
	}

	tasks, err := c.GetAllTasks(ctx)
	if err != nil {
		t.Fatalf("GetAllTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len = %d", len(tasks))
	}

	deleted, err := c.DeleteTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("deleted = %#v", deleted)
	}
}

func TestClient_TypedErrors(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	ctx := context.Background()

	// Missing task comes back as the same NotFoundError callers get from
	// the local store.
	_, err := c.GetTaskByID(ctx, "task-missing")
	if !backend.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	var nf *backend.NotFoundError
	if !errors.As(err, &nf) || nf.ID != "task-missing" {
		t.Fatalf("not found detail = %#v", nf)
	}

	// Validation failures carry the per-field messages.
	_, err = c.CreateTask(ctx, backend.TaskDraft{
		Title:       "ab",
		Description: "a long enough description",
		DueDate:     "2026-09-20",
	})
	var ve *backend.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want validation", err)
	}
	if _, ok := ve.Fields["title"]; !ok {
		t.Fatalf("fields = %#v", ve.Fields)
	}
}

func TestClient_AppState(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	ctx := context.Background()

	st, err := c.GetAppState(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAppState: %v", err)
	}
	if st.UserID != "user-1" || st.Version != 1 {
		t.Fatalf("state = %#v", st)
	}

	cfg := model.ColumnSortConfig{
		model.StatusTodo: {{Field: model.SortByPriority, Direction: model.SortDescending}},
	}
	st, err = c.UpdateSortConfig(ctx, "user-1", cfg, false, st.Version)
	if err != nil {
		t.Fatalf("UpdateSortConfig: %v", err)
	}
	if st.Version != 2 {
		t.Fatalf("version = %d", st.Version)
	}

	// A stale writer sees the conflict sentinel across the wire.
	if _, err := c.UpdateSortConfig(ctx, "user-1", cfg, false, 1); !errors.Is(err, backend.ErrVersionConflict) {
		t.Fatalf("stale write err = %v, want ErrVersionConflict", err)
	}

	task, err := c.CreateTask(ctx, backend.TaskDraft{
		Title:       "Bookmark me please",
		Description: "a long enough description",
		DueDate:     "2026-09-20",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	st, err = c.AddBookmark(ctx, "user-1", task.ID)
	if err != nil {
		t.Fatalf("AddBookmark: %v", err)
	}
	if len(st.Bookmarks) != 1 {
		t.Fatalf("bookmarks = %v", st.Bookmarks)
	}
	st, err = c.RemoveBookmark(ctx, "user-1", task.ID)
	if err != nil {
		t.Fatalf("RemoveBookmark: %v", err)
	}
	if len(st.Bookmarks) != 0 {
		t.Fatalf("bookmarks = %v", st.Bookmarks)
	}

	seqs := model.CustomTaskSequences{
		model.StatusTodo: {UseSequence: true, Sequence: []string{task.ID}},
	}
	st, err = c.UpdateSequences(ctx, "user-1", seqs, 0)
	if err != nil {
		t.Fatalf("UpdateSequences: %v", err)
	}
	if !st.Sequences[model.StatusTodo].UseSequence {
		t.Fatalf("sequences = %#v", st.Sequences)
	}

	if err := c.ResetAppState(ctx, "user-1"); err != nil {
		t.Fatalf("ResetAppState: %v", err)
	}
	if err := c.ResetAppState(ctx, "user-never-seen"); !backend.IsNotFound(err) {
		t.Fatalf("reset unknown err = %v, want not found", err)
	}
}
