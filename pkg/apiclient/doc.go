// Package apiclient talks to the library-rental REST backend.
//
// A Client owns the HTTP transport and resolves resource URLs through an
// EndpointResolver. Service[T] implements the CRUD contract for one entity
// resource (api/books, api/patrons, api/inventories, api/rentals):
//
//	client := apiclient.New(cfg, apiclient.WithLogger(logger))
//	rentals := apiclient.NewRentalService(client)
//	page, err := rentals.Query(ctx, &apiclient.QueryOptions{Size: 20})
//
// Errors wrap one of the sentinels ErrTransport, ErrNotFound, ErrValidation,
// ErrIDExists or ErrIDMissing; server rejections are reported as *APIError.
package apiclient
