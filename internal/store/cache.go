package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"taskdeck/internal/board"
	"taskdeck/internal/model"
)

const viewCacheFileName = "view_cache.json"

// ViewCache is the locally cached copy of a user's app state, written
// through on every successful backend write so the board opens with the
// last-known ordering before the first server round trip completes.
//
// It is best effort: callers tolerate missing or corrupted data, and the
// server copy always wins once it arrives.
type ViewCache struct {
	Version   int              `json:"version"`
	UserID    string           `json:"userId,omitempty"`
	AppState  *model.AppState  `json:"appState,omitempty"`
	LastQuery string           `json:"lastQuery,omitempty"`
	Filters   *json.RawMessage `json:"filters,omitempty"`
}

func (s Store) viewCachePath() string {
	return filepath.Join(s.Dir, viewCacheFileName)
}

func (s Store) LoadViewCache() (*ViewCache, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &ViewCache{Version: 1}, nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.viewCachePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ViewCache{Version: 1}, nil
		}
		return nil, err
	}
	var vc ViewCache
	if err := json.Unmarshal(b, &vc); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &ViewCache{Version: 1}, nil
	}
	if vc.Version == 0 {
		vc.Version = 1
	}
	return &vc, nil
}

func (s Store) SaveViewCache(vc *ViewCache) error {
	if vc == nil {
		return nil
	}
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if vc.Version == 0 {
		vc.Version = 1
	}
	b, err := json.MarshalIndent(vc, "", "  ")
	if err != nil {
		return err
	}
	path := s.viewCachePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReconcileSequences prunes ids no longer on the board from the cached
// sequences and disables any sequence that now matches the column's
// natural order, so a stale cache never pins an ordering the user would
// not recognize.
func ReconcileSequences(seqs model.CustomTaskSequences, grouped model.GroupedTasks) model.CustomTaskSequences {
	out := model.CustomTaskSequences{}
	for col, seq := range seqs {
		tasks := grouped[col]
		pruned := board.PruneSequence(tasks, seq.Sequence)
		use := seq.UseSequence
		if use && board.SequenceMatchesNaturalOrder(tasks, pruned) {
			use = false
		}
		out[col] = model.CustomTaskSequence{UseSequence: use, Sequence: pruned}
	}
	return out
}
