package update

import (
	"context"
	"errors"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
)

// Resolve produces the entity an edit starts from. A nil id yields a new,
// empty entity. A missing entity calls nav.NotFound and yields nil without
// an error; any other failure is returned.
func Resolve[T any](ctx context.Context, finder Finder[T], id *int64, nav Navigator) (*T, error) {
	if id == nil {
		return new(T), nil
	}
	e, err := finder.Find(ctx, *id)
	if errors.Is(err, apiclient.ErrNotFound) {
		if nav != nil {
			nav.NotFound()
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
