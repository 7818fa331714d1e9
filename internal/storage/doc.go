// Package storage provides entity storage abstractions and implementations.
//
// It defines the generic Store interface for storing, retrieving, and managing
// entities keyed by a numeric identifier, along with concrete implementations.
//
// Key types:
//
//   - Store: Interface defining the contract for entity storage backends
//   - InMemoryStore: Thread-safe in-memory implementation of Store
//   - FilteredStore: Read-only view of a Store restricted by a predicate
//
// InMemoryStore assigns identifiers from a per-store sequence and hands out
// copies, so callers never share memory with the stored values.
package storage
