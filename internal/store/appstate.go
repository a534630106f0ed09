package store

import (
	"context"
	"time"

	"taskdeck/internal/backend"
	"taskdeck/internal/model"
)

// appState returns the user's state, creating and persisting the default
// on first access.
func (s *Service) appState(ctx context.Context, db *DB, userID string) (*model.AppState, error) {
	if st, ok := db.FindAppState(userID); ok {
		return st, nil
	}
	db.AppStates = append(db.AppStates, *model.NewAppState(userID))
	if err := s.save(ctx, db); err != nil {
		return nil, err
	}
	s.log.WithField("user", userID).Info("app state created")
	st, _ := db.FindAppState(userID)
	return st, nil
}

func checkVersion(st *model.AppState, expect int) error {
	if expect != 0 && expect != st.Version {
		return backend.ErrVersionConflict
	}
	return nil
}

func touch(st *model.AppState) {
	st.Version++
	st.UpdatedAt = time.Now().UTC()
}

func (s *Service) GetAppState(ctx context.Context, userID string) (model.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return model.AppState{}, err
	}
	st, err := s.appState(ctx, db, userID)
	if err != nil {
		return model.AppState{}, err
	}
	return *st, nil
}

func (s *Service) UpdateSortConfig(ctx context.Context, userID string, cfg model.ColumnSortConfig, applyToAll bool, expectVersion int) (model.AppState, error) {
	for _, opts := range cfg {
		for _, opt := range opts {
			if !opt.Field.IsValid() || !opt.Direction.IsValid() {
				return model.AppState{}, &backend.ValidationError{Fields: map[string]string{
					"columnSortConfigs": "unknown sort field or direction",
				}}
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return model.AppState{}, err
	}
	st, err := s.appState(ctx, db, userID)
	if err != nil {
		return model.AppState{}, err
	}
	if err := checkVersion(st, expectVersion); err != nil {
		return model.AppState{}, err
	}

	if cfg == nil {
		cfg = model.ColumnSortConfig{}
	}
	st.ColumnSortConfigs = cfg
	st.ApplyToAllColumns = applyToAll
	touch(st)

	if err := s.save(ctx, db); err != nil {
		return model.AppState{}, err
	}
	s.log.WithField("user", userID).Info("sort config updated")
	return *st, nil
}

func (s *Service) UpdateSequences(ctx context.Context, userID string, seqs model.CustomTaskSequences, expectVersion int) (model.AppState, error) {
	for col := range seqs {
		if !col.IsValid() {
			return model.AppState{}, &backend.ValidationError{Fields: map[string]string{
				"sequences": "unknown status column " + string(col),
			}}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return model.AppState{}, err
	}
	st, err := s.appState(ctx, db, userID)
	if err != nil {
		return model.AppState{}, err
	}
	if err := checkVersion(st, expectVersion); err != nil {
		return model.AppState{}, err
	}

	// Partial update: only the columns present in the payload change.
	if st.Sequences == nil {
		st.Sequences = model.DefaultSequences()
	}
	for col, seq := range seqs {
		if seq.Sequence == nil {
			seq.Sequence = []string{}
		}
		st.Sequences[col] = seq
	}
	touch(st)

	if err := s.save(ctx, db); err != nil {
		return model.AppState{}, err
	}
	s.log.WithField("user", userID).Info("sequences updated")
	return *st, nil
}

func (s *Service) AddBookmark(ctx context.Context, userID, taskID string) (model.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return model.AppState{}, err
	}
	if _, ok := db.FindTask(taskID); !ok {
		return model.AppState{}, backend.NotFound("task", taskID)
	}
	st, err := s.appState(ctx, db, userID)
	if err != nil {
		return model.AppState{}, err
	}

	for _, id := range st.Bookmarks {
		if id == taskID {
			return *st, nil
		}
	}
	st.Bookmarks = append(st.Bookmarks, taskID)
	touch(st)

	if err := s.save(ctx, db); err != nil {
		return model.AppState{}, err
	}
	return *st, nil
}

func (s *Service) RemoveBookmark(ctx context.Context, userID, taskID string) (model.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return model.AppState{}, err
	}
	st, err := s.appState(ctx, db, userID)
	if err != nil {
		return model.AppState{}, err
	}

	before := len(st.Bookmarks)
	st.Bookmarks = removeString(st.Bookmarks, taskID)
	if len(st.Bookmarks) == before {
		return *st, nil
	}
	touch(st)

	if err := s.save(ctx, db); err != nil {
		return model.AppState{}, err
	}
	return *st, nil
}

func (s *Service) ResetAppState(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range db.AppStates {
		if db.AppStates[i].UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return backend.NotFound("app state", userID)
	}
	db.AppStates = append(db.AppStates[:idx], db.AppStates[idx+1:]...)

	if err := s.save(ctx, db); err != nil {
		return err
	}
	s.log.WithField("user", userID).Info("app state reset")
	return nil
}
