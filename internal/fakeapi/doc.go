// Package fakeapi is an in-memory implementation of the library-rental REST backend.
//
// It serves the same resource layout the client expects (api/books, api/patrons,
// api/inventories, api/rentals plus the availability endpoints), answers with
// problem+json errors, and validates payloads with the entity schemas. Tests and
// the development server use it in place of a real backend.
package fakeapi
