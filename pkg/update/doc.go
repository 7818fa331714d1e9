// Package update drives the edit-and-save lifecycle of one entity.
//
// A controller is initialized with an entity (new or existing), copies it into
// a form, loads the selectable options for each relationship field in the
// background, and on Save writes the form back through the entity service:
// Update when the form carries an ID, Create otherwise.
//
// Every accessor is safe for concurrent use. Loads and saves run in their own
// goroutines and are observed through LoadTask and SaveTask.
package update
