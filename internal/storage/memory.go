package storage

import (
	"slices"
	"sync"
)

// InMemoryStore is a thread-safe in-memory implementation of Store.
type InMemoryStore[T any] struct {
	mu       sync.RWMutex
	acc      Accessors[T]
	entities map[int64]*T
	next     int64
}

// NewInMemoryStore creates a new InMemoryStore.
func NewInMemoryStore[T any](acc Accessors[T]) *InMemoryStore[T] {
	return &InMemoryStore[T]{
		acc:      acc,
		entities: make(map[int64]*T),
		next:     1,
	}
}

// Accessors returns the identifier accessors the store was created with.
func (s *InMemoryStore[T]) Accessors() Accessors[T] {
	return s.acc
}

// Get retrieves an entity by ID. Returns nil if not found.
func (s *InMemoryStore[T]) Get(id int64) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[id]
	if !ok {
		return nil
	}
	return s.acc.Clone(e)
}

// Insert stores e under the next free identifier. Any identifier e carries is ignored.
func (s *InMemoryStore[T]) Insert(e *T) *T {
	if e == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.acc.Clone(e)
	id := s.next
	s.next++
	s.acc.Assign(stored, id)
	s.entities[id] = stored
	return s.acc.Clone(stored)
}

// Seed stores e under its own identifier, advancing the sequence past it.
// Entities without an identifier are inserted.
func (s *InMemoryStore[T]) Seed(e *T) *T {
	id := s.acc.Identify(e)
	if id == nil {
		return s.Insert(e)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities[*id] = s.acc.Clone(e)
	if *id >= s.next {
		s.next = *id + 1
	}
	return s.acc.Clone(e)
}

// Replace overwrites the entity with the given ID. Returns false if it does not exist.
func (s *InMemoryStore[T]) Replace(id int64, e *T) bool {
	if e == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entities[id]; !exists {
		return false
	}
	stored := s.acc.Clone(e)
	s.acc.Assign(stored, id)
	s.entities[id] = stored
	return true
}

// Delete removes an entity by ID. Returns true if deleted, false if not found.
func (s *InMemoryStore[T]) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entities[id]; exists {
		delete(s.entities, id)
		return true
	}
	return false
}

// List returns copies of all stored entities, sorted by identifier.
func (s *InMemoryStore[T]) List() []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	result := make([]*T, 0, len(ids))
	for _, id := range ids {
		result = append(result, s.acc.Clone(s.entities[id]))
	}
	return result
}

// Count returns the number of stored entities.
func (s *InMemoryStore[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Clear removes all stored entities and restarts the sequence at 1.
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities = make(map[int64]*T)
	s.next = 1
}

// Exists checks if an entity with the given ID exists.
func (s *InMemoryStore[T]) Exists(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.entities[id]
	return exists
}

// Ensure InMemoryStore implements Store.
var _ Store[struct{}] = (*InMemoryStore[struct{}])(nil)
