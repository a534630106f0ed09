package store

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"taskdeck/internal/backend"
	"taskdeck/internal/model"
)

// Service implements backend.Backend on top of the SQLite document store.
// Every mutation is load-mutate-save under one lock; fine at the
// interactive data sizes this store handles.
type Service struct {
	store Store
	log   *logrus.Entry

	mu sync.Mutex
}

var _ backend.Backend = (*Service)(nil)

func NewService(dir string, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		store: Store{Dir: dir},
		log:   log.WithField("component", "store"),
	}
}

func (s *Service) Dir() string { return s.store.Dir }

func (s *Service) load(ctx context.Context) (*DB, error) {
	db, err := s.store.Load(ctx)
	if err != nil {
		s.log.WithError(err).Error("load failed")
		return nil, err
	}
	return db, nil
}

func (s *Service) save(ctx context.Context, db *DB) error {
	if err := s.store.Save(ctx, db); err != nil {
		s.log.WithError(err).Error("save failed")
		return err
	}
	return nil
}

func (s *Service) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return db.TasksNewestFirst(), nil
}

func (s *Service) GetTaskByID(ctx context.Context, id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return model.Task{}, err
	}
	t, ok := db.FindTask(id)
	if !ok {
		return model.Task{}, backend.NotFound("task", id)
	}
	return *t, nil
}

func (s *Service) CreateTask(ctx context.Context, draft backend.TaskDraft) (model.Task, error) {
	if err := draft.Validate(); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return model.Task{}, err
	}

	now := time.Now().UTC()
	t := model.Task{
		ID:                draft.ID,
		Title:             draft.Title,
		Description:       draft.Description,
		Status:            draft.Status,
		Priority:          draft.Priority,
		AssigneeID:        draft.AssigneeID,
		Tags:              draft.Tags,
		DueDate:           draft.DueDate,
		CreatedAt:         now,
		UpdatedAt:         now,
		IsRecentlyUpdated: true,
	}
	if t.ID == "" {
		t.ID = db.NewID("task")
	} else if _, exists := db.FindTask(t.ID); exists {
		return model.Task{}, &backend.ValidationError{Fields: map[string]string{
			"id": "already in use",
		}}
	}
	if t.Status == "" {
		t.Status = model.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}

	db.Tasks = append(db.Tasks, t)
	if err := s.save(ctx, db); err != nil {
		return model.Task{}, err
	}
	s.log.WithFields(logrus.Fields{"task": t.ID, "status": t.Status}).Info("task created")
	return t, nil
}

func (s *Service) UpdateTask(ctx context.Context, id string, patch backend.TaskPatch) (model.Task, error) {
	if err := patch.Validate(); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return model.Task{}, err
	}
	t, ok := db.FindTask(id)
	if !ok {
		return model.Task{}, backend.NotFound("task", id)
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.AssigneeID != nil {
		t.AssigneeID = *patch.AssigneeID
	}
	if patch.Tags != nil {
		t.Tags = *patch.Tags
		if t.Tags == nil {
			t.Tags = []string{}
		}
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	t.UpdatedAt = time.Now().UTC()
	t.IsRecentlyUpdated = true

	if err := s.save(ctx, db); err != nil {
		return model.Task{}, err
	}
	s.log.WithField("task", id).Info("task updated")
	return *t, nil
}

func (s *Service) UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) (model.Task, error) {
	if !status.IsValid() {
		return model.Task{}, &backend.ValidationError{Fields: map[string]string{
			"status": "must be one of todo, in-progress, done",
		}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return model.Task{}, err
	}
	t, ok := db.FindTask(id)
	if !ok {
		return model.Task{}, backend.NotFound("task", id)
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	t.IsRecentlyUpdated = true

	if err := s.save(ctx, db); err != nil {
		return model.Task{}, err
	}
	s.log.WithFields(logrus.Fields{"task": id, "status": status}).Info("task status updated")
	return *t, nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return model.Task{}, err
	}

	idx := -1
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Task{}, backend.NotFound("task", id)
	}
	deleted := db.Tasks[idx]
	db.Tasks = append(db.Tasks[:idx], db.Tasks[idx+1:]...)

	// Scrub the deleted id from every user's bookmarks and sequences so
	// stale references never round-trip back to clients.
	for i := range db.AppStates {
		st := &db.AppStates[i]
		st.Bookmarks = removeString(st.Bookmarks, id)
		for col, seq := range st.Sequences {
			seq.Sequence = removeString(seq.Sequence, id)
			st.Sequences[col] = seq
		}
	}

	if err := s.save(ctx, db); err != nil {
		return model.Task{}, err
	}
	s.log.WithField("task", id).Info("task deleted")
	return deleted, nil
}

func (s *Service) GetAllUsers(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.User, len(db.Users))
	copy(out, db.Users)
	return out, nil
}

func removeString(xs []string, s string) []string {
	out := xs[:0]
	for _, x := range xs {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}
