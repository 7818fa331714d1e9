package apiclient

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"strconv"

	"github.com/rentdesk/rentdesk/pkg/entity"
)

// Service implements the CRUD contract for one entity resource.
type Service[T any] struct {
	client   *Client
	resource string
	name     string
	identify func(*T) *int64
}

// NewService creates a Service for the resource path (e.g. "api/books").
// identify returns an entity's identifier and must accept nil.
func NewService[T any](client *Client, resource, name string, identify func(*T) *int64) *Service[T] {
	return &Service[T]{
		client:   client,
		resource: resource,
		name:     name,
		identify: identify,
	}
}

// ResourceURL returns the absolute collection URL.
func (s *Service[T]) ResourceURL() string {
	return s.client.Endpoint(s.resource)
}

// Name returns the entity name used in messages.
func (s *Service[T]) Name() string {
	return s.name
}

// Identifier returns e's identifier.
func (s *Service[T]) Identifier(e *T) *int64 {
	if e == nil {
		return nil
	}
	return s.identify(e)
}

func (s *Service[T]) itemURL(id int64) string {
	return s.ResourceURL() + "/" + strconv.FormatInt(id, 10)
}

// Create posts a transient entity and returns the server's hydrated copy.
func (s *Service[T]) Create(ctx context.Context, e *T) (*T, error) {
	if e == nil {
		return nil, fmt.Errorf("create %s: nil entity", s.name)
	}
	if s.identify(e) != nil {
		return nil, fmt.Errorf("create %s: %w", s.name, ErrIDExists)
	}

	resp, err := s.client.post(ctx, s.ResourceURL(), e)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}
	return s.decodeEntity(resp)
}

// Update replaces the persisted entity with e.
func (s *Service[T]) Update(ctx context.Context, e *T) (*T, error) {
	id, err := s.requireID("update", e)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.put(ctx, s.itemURL(id), e)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}
	return s.decodeEntity(resp)
}

// PartialUpdate merge-patches the persisted entity with the non-empty fields of e.
func (s *Service[T]) PartialUpdate(ctx context.Context, e *T) (*T, error) {
	id, err := s.requireID("partial update", e)
	if err != nil {
		return nil, err
	}

	return s.sendPatch(ctx, id, e)
}

// MergePatch sends patch as a merge-patch document to the entity with the given id.
// Unlike PartialUpdate it can clear a field: a key mapped to nil is sent as null.
func (s *Service[T]) MergePatch(ctx context.Context, id int64, patch map[string]any) (*T, error) {
	body := maps.Clone(patch)
	if body == nil {
		body = make(map[string]any, 1)
	}
	body["id"] = id
	return s.sendPatch(ctx, id, body)
}

func (s *Service[T]) sendPatch(ctx context.Context, id int64, body any) (*T, error) {
	resp, err := s.client.patch(ctx, s.itemURL(id), body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}
	return s.decodeEntity(resp)
}

// Find returns the entity with the given id. A missing entity yields ErrNotFound.
func (s *Service[T]) Find(ctx context.Context, id int64) (*T, error) {
	resp, err := s.client.get(ctx, s.itemURL(id))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}
	e, err := decode[T](resp)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%s %d: %w", s.name, id, ErrNotFound)
	}
	return e, nil
}

// Query returns one page of entities matching opts.
func (s *Service[T]) Query(ctx context.Context, opts *QueryOptions) (*Page[T], error) {
	resp, err := s.client.get(ctx, withQuery(s.ResourceURL(), opts))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}
	items, err := decode[[]*T](resp)
	if err != nil {
		return nil, err
	}

	page := &Page[T]{}
	if items != nil {
		page.Items = *items
	}
	page.Total = int64(len(page.Items))
	if total := resp.Header.Get(TotalCountHeader); total != "" {
		if n, err := strconv.ParseInt(total, 10, 64); err == nil {
			page.Total = n
		}
	}
	return page, nil
}

// Count returns the number of entities matching opts.
func (s *Service[T]) Count(ctx context.Context, opts *QueryOptions) (int64, error) {
	return s.client.getCount(ctx, withQuery(s.ResourceURL()+"/count", opts))
}

// Delete removes the entity with the given id.
func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	resp, err := s.client.delete(ctx, s.itemURL(id))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return parseError(resp)
	}
	return nil
}

// AddToCollectionIfMissing merges candidates into collection by identifier.
// See entity.AddToCollectionIfMissing.
func (s *Service[T]) AddToCollectionIfMissing(collection []*T, candidates ...*T) []*T {
	return entity.AddToCollectionIfMissing(s.identify, collection, candidates...)
}

func (s *Service[T]) requireID(op string, e *T) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("%s %s: nil entity", op, s.name)
	}
	id := s.identify(e)
	if id == nil {
		return 0, fmt.Errorf("%s %s: %w", op, s.name, ErrIDMissing)
	}
	return *id, nil
}

func (s *Service[T]) decodeEntity(resp *http.Response) (*T, error) {
	e, err := decode[T](resp)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%s: empty response body", s.name)
	}
	return e, nil
}
