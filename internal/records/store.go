package records

import (
	"sync"

	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
)

// SelectionState summarizes how much of a visible page is selected.
type SelectionState string

const (
	SelectionNone SelectionState = "none"
	SelectionSome SelectionState = "some"
	SelectionAll  SelectionState = "all"
)

// Store keeps the last-fetched collection and the ids the user has checked.
// Every selected id refers to a record in the current collection.
type Store[T any] struct {
	mu       sync.RWMutex
	schema   Schema[T]
	records  []T
	index    map[string]int
	selected map[string]struct{}
}

func NewStore[T any](schema Schema[T]) *Store[T] {
	return &Store[T]{
		schema:   schema,
		index:    map[string]int{},
		selected: map[string]struct{}{},
	}
}

// Replace swaps in a freshly fetched collection and drops selected ids that disappeared.
func (s *Store[T]) Replace(records []T) {
	next := make([]T, len(records))
	index := make(map[string]int, len(records))
	for i, rec := range records {
		rec = s.schema.normalize(rec)
		next[i] = rec
		index[s.schema.ID(rec)] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = next
	s.index = index
	for id := range s.selected {
		if _, ok := index[id]; !ok {
			delete(s.selected, id)
		}
	}
}

// Records returns a copy of the collection in fetch order.
func (s *Store[T]) Records() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the collection size.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get looks a record up by id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.records[i], true
}

// ToggleSelect flips the selection of one record and reports whether it is now selected.
func (s *Store[T]) ToggleSelect(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "record is not in the current list").
			WithDetails(map[string]any{"id": id, "resource": s.schema.Resource})
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false, nil
	}
	s.selected[id] = struct{}{}
	return true, nil
}

// SelectAll adds every visible id that exists in the collection.
func (s *Store[T]) SelectAll(visibleIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range visibleIDs {
		if _, ok := s.index[id]; ok {
			s.selected[id] = struct{}{}
		}
	}
}

// ToggleSelectAll clears the visible ids when all are selected, otherwise selects them.
func (s *Store[T]) ToggleSelectAll(visibleIDs []string) SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stateLocked(visibleIDs) == SelectionAll {
		for _, id := range visibleIDs {
			delete(s.selected, id)
		}
	} else {
		for _, id := range visibleIDs {
			if _, ok := s.index[id]; ok {
				s.selected[id] = struct{}{}
			}
		}
	}
	return s.stateLocked(visibleIDs)
}

func (s *Store[T]) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = map[string]struct{}{}
}

func (s *Store[T]) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[id]
	return ok
}

// Selected returns the selected ids in collection order. An id the collection
// repeats is listed once, at the position of the record Get resolves it to.
func (s *Store[T]) Selected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.selected))
	for i, rec := range s.records {
		id := s.schema.ID(rec)
		if s.selectedAtLocked(id, i) {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectedRecords returns the selected records in collection order.
func (s *Store[T]) SelectedRecords() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.selected))
	for i, rec := range s.records {
		if s.selectedAtLocked(s.schema.ID(rec), i) {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Store[T]) selectedAtLocked(id string, pos int) bool {
	if _, ok := s.selected[id]; !ok {
		return false
	}
	return s.index[id] == pos
}

// SelectionState reports whether none, some or all of the visible ids are selected.
func (s *Store[T]) SelectionState(visibleIDs []string) SelectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked(visibleIDs)
}

func (s *Store[T]) stateLocked(visibleIDs []string) SelectionState {
	if len(visibleIDs) == 0 {
		return SelectionNone
	}
	count := 0
	for _, id := range visibleIDs {
		if _, ok := s.selected[id]; ok {
			count++
		}
	}
	switch {
	case count == 0:
		return SelectionNone
	case count == len(visibleIDs):
		return SelectionAll
	default:
		return SelectionSome
	}
}
