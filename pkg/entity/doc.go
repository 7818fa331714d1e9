// Package entity defines the library-rental domain records handled by rentdesk.
//
// Every entity carries an optional numeric identifier. A nil identifier marks a
// transient record that has not been saved yet; a non-nil one marks a persisted
// record that must be updated by ID.
//
// # Relationships
//
// Relationship fields (Inventory.Book, Rental.Patron, Rental.Inventory) hold either
// a full referenced entity or nil. Only the identifier matters when comparing or
// merging references: two references are the same iff both identifiers are non-nil
// and equal.
//
// # Dates
//
// Calendar dates use the Date type, which serializes as "2006-01-02" on the wire.
//
// # Collections
//
// AddToCollectionIfMissing and its per-entity specializations build the option
// lists offered for relationship fields, making sure a currently selected value is
// always present even when the server did not return it.
package entity
