package storage

// FilteredStore is a read-only view of a Store restricted to entities matching a predicate.
// It reflects the live contents of the underlying store.
type FilteredStore[T any] struct {
	underlying Store[T]
	match      func(*T) bool
}

// NewFilteredStore creates a new filtered view. A nil match admits everything.
func NewFilteredStore[T any](store Store[T], match func(*T) bool) *FilteredStore[T] {
	if match == nil {
		match = func(*T) bool { return true }
	}
	return &FilteredStore[T]{
		underlying: store,
		match:      match,
	}
}

// Get retrieves an entity by ID, only if it matches.
func (f *FilteredStore[T]) Get(id int64) *T {
	e := f.underlying.Get(id)
	if e == nil || !f.match(e) {
		return nil
	}
	return e
}

// List returns all matching entities in identifier order.
func (f *FilteredStore[T]) List() []*T {
	all := f.underlying.List()
	filtered := make([]*T, 0, len(all))
	for _, e := range all {
		if e != nil && f.match(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Count returns the number of matching entities.
func (f *FilteredStore[T]) Count() int {
	return len(f.List())
}

// Exists checks if a matching entity with the given ID exists.
func (f *FilteredStore[T]) Exists(id int64) bool {
	return f.Get(id) != nil
}

// Underlying returns the unfiltered store.
func (f *FilteredStore[T]) Underlying() Store[T] {
	return f.underlying
}
