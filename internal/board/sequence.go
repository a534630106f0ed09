package board

import "taskdeck/internal/model"

// ApplySequence reorders tasks to match the explicit id sequence. Ids in
// the sequence that no longer exist are dropped silently; tasks missing
// from the sequence are appended at the tail in their input order. The
// result is always a permutation of the input.
func ApplySequence(tasks []model.Task, sequence []string) []model.Task {
	byID := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	out := make([]model.Task, 0, len(tasks))
	for _, id := range sequence {
		t, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, t)
		delete(byID, id)
	}

	for _, t := range tasks {
		if _, ok := byID[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out
}

// SequenceMatchesNaturalOrder reports whether applying the sequence to the
// tasks leaves them in their natural order; such a sequence carries no
// information and can be treated as absent.
func SequenceMatchesNaturalOrder(tasks []model.Task, sequence []string) bool {
	ordered := ApplySequence(tasks, sequence)
	for i := range ordered {
		if ordered[i].ID != tasks[i].ID {
			return false
		}
	}
	return true
}

// PruneSequence drops ids that are not present in the task set, keeping
// sequence order. Used when reconciling persisted sequences on load.
func PruneSequence(tasks []model.Task, sequence []string) []string {
	present := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
	}
	out := make([]string, 0, len(sequence))
	for _, id := range sequence {
		if present[id] {
			out = append(out, id)
		}
	}
	return out
}
