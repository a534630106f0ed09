package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"taskdeck/internal/backend"
	"taskdeck/internal/model"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.backend.GetAllTasks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.backend.GetTaskByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var draft backend.TaskDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	task, err := s.backend.CreateTask(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	s.hub.PublishTask(EventTaskCreated, task)
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var patch backend.TaskPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	task, err := s.backend.UpdateTask(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	s.hub.PublishTask(EventTaskUpdated, task)
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status model.TaskStatus `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := backend.ValidStatus(body.Status); err != nil {
		writeError(w, err)
		return
	}
	task, err := s.backend.UpdateTaskStatus(r.Context(), mux.Vars(r)["id"], body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	s.hub.PublishTask(EventTaskUpdated, task)
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.backend.DeleteTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	s.hub.PublishTask(EventTaskDeleted, task)
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.backend.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetAppState(w http.ResponseWriter, r *http.Request) {
	st, err := s.backend.GetAppState(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// sortConfigRequest carries the writer's last-seen version; zero skips
// the optimistic-concurrency check.
type sortConfigRequest struct {
	ColumnSortConfigs model.ColumnSortConfig `json:"columnSortConfigs"`
	ApplyToAllColumns bool                   `json:"applyToAllColumns,omitempty"`
	ExpectedVersion   int                    `json:"expectedVersion,omitempty"`
}

func (s *Server) handleUpdateSortConfig(w http.ResponseWriter, r *http.Request) {
	var body sortConfigRequest
	if !decodeBody(w, r, &body) {
		return
	}
	st, err := s.backend.UpdateSortConfig(r.Context(), mux.Vars(r)["userId"], body.ColumnSortConfigs, body.ApplyToAllColumns, body.ExpectedVersion)
	if err != nil {
		writeError(w, err)
		return
	}
	s.hub.Publish(EventAppStateUpdated, st)
	writeJSON(w, http.StatusOK, st)
}

type sequencesRequest struct {
	Sequences       model.CustomTaskSequences `json:"sequences"`
	ExpectedVersion int                       `json:"expectedVersion,omitempty"`
}

func (s *Server) handleUpdateSequences(w http.ResponseWriter, r *http.Request) {
	var body sequencesRequest
	if !decodeBody(w, r, &body) {
		return
	}
	st, err := s.backend.UpdateSequences(r.Context(), mux.Vars(r)["userId"], body.Sequences, body.ExpectedVersion)
	if err != nil {
		writeError(w, err)
		return
	}
	s.hub.Publish(EventAppStateUpdated, st)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	st, err := s.backend.AddBookmark(r.Context(), vars["userId"], vars["taskId"])
	if err != nil {
		writeError(w, err)
		return
	}
	s.hub.Publish(EventAppStateUpdated, st)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	st, err := s.backend.RemoveBookmark(r.Context(), vars["userId"], vars["taskId"])
	if err != nil {
		writeError(w, err)
		return
	}
	s.hub.Publish(EventAppStateUpdated, st)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleResetAppState(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := s.backend.ResetAppState(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	s.hub.Publish(EventAppStateUpdated, model.NewAppState(userID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "app state reset"})
}
