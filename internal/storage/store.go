package storage

// Store defines the interface for storing and retrieving entities by identifier.
type Store[T any] interface {
	// Get retrieves an entity by ID. Returns nil if not found.
	Get(id int64) *T

	// Insert stores a new entity under the next identifier and returns the stored copy.
	Insert(e *T) *T

	// Replace overwrites the entity with the given ID. Returns false if it does not exist.
	Replace(id int64, e *T) bool

	// Delete removes an entity by ID. Returns true if deleted, false if not found.
	Delete(id int64) bool

	// List returns all stored entities in identifier order.
	List() []*T

	// Count returns the number of stored entities.
	Count() int

	// Clear removes all stored entities and resets the sequence.
	Clear()

	// Exists checks if an entity with the given ID exists.
	Exists(id int64) bool
}

// Accessors tell a store how to read, assign and copy identifiers of T.
type Accessors[T any] struct {
	// Identify returns the entity's identifier, or nil. It must accept nil.
	Identify func(*T) *int64
	// Assign stamps an identifier onto the entity.
	Assign func(*T, int64)
	// Clone returns a deep copy.
	Clone func(*T) *T
}
