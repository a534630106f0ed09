// Package api is the HTTP client side of the backend contract, used by
// the TUI and CLI when pointed at a remote server instead of a local
// data directory.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskdeck/internal/backend"
	"taskdeck/internal/model"
)

type Client struct {
	base string
	http *http.Client
}

var _ backend.Backend = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// errorResponse mirrors the server's error body.
type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
	Detail  string            `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError rebuilds the typed backend errors from the wire shapes so
// callers can keep using errors.As / errors.Is across the network hop.
func decodeError(resp *http.Response) error {
	var e errorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &e)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		if len(e.Errors) > 0 {
			return &backend.ValidationError{Fields: e.Errors}
		}
		return &backend.ValidationError{Fields: map[string]string{"request": firstNonEmpty(e.Message, "bad request")}}
	case http.StatusNotFound:
		return parseNotFound(e.Message)
	case http.StatusConflict:
		return backend.ErrVersionConflict
	}
	if e.Message != "" {
		if e.Detail != "" {
			return fmt.Errorf("server error: %s: %s", e.Message, e.Detail)
		}
		return fmt.Errorf("server error: %s", e.Message)
	}
	return fmt.Errorf("server error: status %d", resp.StatusCode)
}

// parseNotFound recovers resource and id from the "<resource> not found:
// <id>" message the server writes.
func parseNotFound(msg string) error {
	resource, id := "resource", ""
	if i := strings.Index(msg, " not found"); i > 0 {
		resource = msg[:i]
		if j := strings.Index(msg, ": "); j > 0 {
			id = msg[j+2:]
		}
	}
	return backend.NotFound(resource, id)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func (c *Client) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTaskByID(ctx context.Context, id string) (model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, &task)
	return task, err
}

func (c *Client) CreateTask(ctx context.Context, draft backend.TaskDraft) (model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", draft, &task)
	return task, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch backend.TaskPatch) (model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), patch, &task)
	return task, err
}

func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) (model.Task, error) {
	var task model.Task
	body := map[string]model.TaskStatus{"status": status}
	err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id)+"/status", body, &task)
	return task, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) (model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, &task)
	return task, err
}

func (c *Client) GetAllUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetAppState(ctx context.Context, userID string) (model.AppState, error) {
	var st model.AppState
	err := c.do(ctx, http.MethodGet, "/api/app-state/"+url.PathEscape(userID), nil, &st)
	return st, err
}

func (c *Client) UpdateSortConfig(ctx context.Context, userID string, cfg model.ColumnSortConfig, applyToAll bool, expectVersion int) (model.AppState, error) {
	var st model.AppState
	body := map[string]any{
		"columnSortConfigs": cfg,
		"applyToAllColumns": applyToAll,
		"expectedVersion":   expectVersion,
	}
	err := c.do(ctx, http.MethodPut, "/api/app-state/"+url.PathEscape(userID)+"/sort-config", body, &st)
	return st, err
}

func (c *Client) UpdateSequences(ctx context.Context, userID string, seqs model.CustomTaskSequences, expectVersion int) (model.AppState, error) {
	var st model.AppState
	body := map[string]any{"sequences": seqs, "expectedVersion": expectVersion}
	err := c.do(ctx, http.MethodPut, "/api/app-state/"+url.PathEscape(userID)+"/sequences", body, &st)
	return st, err
}

func (c *Client) AddBookmark(ctx context.Context, userID, taskID string) (model.AppState, error) {
	var st model.AppState
	err := c.do(ctx, http.MethodPost, "/api/app-state/"+url.PathEscape(userID)+"/bookmarks/"+url.PathEscape(taskID), nil, &st)
	return st, err
}

func (c *Client) RemoveBookmark(ctx context.Context, userID, taskID string) (model.AppState, error) {
	var st model.AppState
	err := c.do(ctx, http.MethodDelete, "/api/app-state/"+url.PathEscape(userID)+"/bookmarks/"+url.PathEscape(taskID), nil, &st)
	return st, err
}

func (c *Client) ResetAppState(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/app-state/"+url.PathEscape(userID), nil, nil)
}
