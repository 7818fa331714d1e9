// Package cli provides the command-line interface for rentdesk.
//
// Every entity has the same command group:
//   - list: page through entities, with server-side --filter criteria, a
//     client-side --where expression and --jsonpath projection
//   - get, count, delete
//   - create, update: fill the entity's form from flags, or interactively on a
//     terminal, resolve relationship options and save through the update controller
//   - patch: send only the given fields as a JSON merge patch
//
// Rentals add return and available; availability counts the free copies of a book.
// config shows the effective configuration and guide prints the help topics.
package cli
