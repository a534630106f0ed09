// Package store is the document store behind the backend contract: tasks,
// users and per-user app state persisted as JSON documents in a single
// SQLite file under the data directory.
package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"taskdeck/internal/model"
)

const dataDirName = ".taskdeck"

// DB is the full document set, loaded and saved as a unit. The data sizes
// here are interactive-scale; replace-all writes keep the store simple and
// crash-safe (single transaction).
type DB struct {
	Version   int              `json:"version"`
	Tasks     []model.Task     `json:"tasks"`
	Users     []model.User     `json:"users"`
	AppStates []model.AppState `json:"appStates"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for an existing data dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dataDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dataDirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) Load(ctx context.Context) (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.loadSQLite(ctx)
}

func (s Store) Save(ctx context.Context, db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.saveSQLite(ctx, db)
}

func (db *DB) FindTask(id string) (*model.Task, bool) {
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			return &db.Tasks[i], true
		}
	}
	return nil, false
}

func (db *DB) FindUser(id string) (*model.User, bool) {
	for i := range db.Users {
		if db.Users[i].ID == id {
			return &db.Users[i], true
		}
	}
	return nil, false
}

func (db *DB) FindAppState(userID string) (*model.AppState, bool) {
	for i := range db.AppStates {
		if db.AppStates[i].UserID == userID {
			return &db.AppStates[i], true
		}
	}
	return nil, false
}

// TasksNewestFirst returns a copy of the tasks in the board's natural
// order: newest createdAt first, id as the tiebreak.
func (db *DB) TasksNewestFirst() []model.Task {
	out := make([]model.Task, len(db.Tasks))
	copy(out, db.Tasks)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
