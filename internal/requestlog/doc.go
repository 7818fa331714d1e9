// Package requestlog captures the requests a backend received, for
// inspection in tests and while experimenting with the dev server.
//
// It is distinct from operational logging, which uses log/slog.
//
//	store := requestlog.NewMemoryStore(1000)
//	store.Log(&requestlog.Entry{Method: "GET", Path: "/api/books"})
//	recent := store.List(&requestlog.Filter{Method: "GET", Limit: 10})
package requestlog
