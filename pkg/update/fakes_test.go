package update

import (
	"context"
	"sync"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
	"github.com/rentdesk/rentdesk/pkg/entity"
)

// fakeSaver records calls and returns a canned result. When release is set,
// every call blocks until it is closed.
type fakeSaver[T any] struct {
	mu      sync.Mutex
	created []*T
	updated []*T
	result  *T
	err     error
	release chan struct{}
}

func (f *fakeSaver[T]) Create(ctx context.Context, e *T) (*T, error) {
	f.mu.Lock()
	f.created = append(f.created, e)
	f.mu.Unlock()
	return f.respond(ctx)
}

func (f *fakeSaver[T]) Update(ctx context.Context, e *T) (*T, error) {
	f.mu.Lock()
	f.updated = append(f.updated, e)
	f.mu.Unlock()
	return f.respond(ctx)
}

func (f *fakeSaver[T]) respond(ctx context.Context) (*T, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

func (f *fakeSaver[T]) calls() (created, updated []*T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*T(nil), f.created...), append([]*T(nil), f.updated...)
}

// fakeQuerier returns items from Query. started is signalled when a query
// begins; release, when set, holds the query until closed.
type fakeQuerier[T any] struct {
	identify func(*T) *int64
	items    []*T
	err      error
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeQuerier[T]) Query(ctx context.Context, _ *apiclient.QueryOptions) (*apiclient.Page[T], error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	items := append([]*T(nil), f.items...)
	return &apiclient.Page[T]{Items: items, Total: int64(len(items))}, nil
}

func (f *fakeQuerier[T]) AddToCollectionIfMissing(collection []*T, candidates ...*T) []*T {
	return entity.AddToCollectionIfMissing(f.identify, collection, candidates...)
}

func newPatronQuerier(items ...*entity.Patron) *fakeQuerier[entity.Patron] {
	return &fakeQuerier[entity.Patron]{identify: (*entity.Patron).Identifier, items: items}
}

func newInventoryQuerier(items ...*entity.Inventory) *fakeQuerier[entity.Inventory] {
	return &fakeQuerier[entity.Inventory]{identify: (*entity.Inventory).Identifier, items: items}
}

func newBookQuerier(items ...*entity.Book) *fakeQuerier[entity.Book] {
	return &fakeQuerier[entity.Book]{identify: (*entity.Book).Identifier, items: items}
}

// countingNavigator counts navigation signals.
type countingNavigator struct {
	mu       sync.Mutex
	previous int
	notFound int
}

func (n *countingNavigator) PreviousState() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.previous++
}

func (n *countingNavigator) NotFound() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notFound++
}

func (n *countingNavigator) counts() (previous, notFound int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.previous, n.notFound
}

type fakeFinder[T any] struct {
	found *T
	err   error
	asked []int64
}

func (f *fakeFinder[T]) Find(_ context.Context, id int64) (*T, error) {
	f.asked = append(f.asked, id)
	return f.found, f.err
}

// gatedBookQuerier blocks its n-th query on gates[n] when that gate is non-nil.
type gatedBookQuerier struct {
	mu      sync.Mutex
	calls   int
	started chan int
	items   []*entity.Book
	gates   []chan struct{}
}

func (q *gatedBookQuerier) Query(ctx context.Context, _ *apiclient.QueryOptions) (*apiclient.Page[entity.Book], error) {
	q.mu.Lock()
	var gate chan struct{}
	if q.calls < len(q.gates) {
		gate = q.gates[q.calls]
	}
	call := q.calls
	q.calls++
	q.mu.Unlock()
	if q.started != nil {
		q.started <- call
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &apiclient.Page[entity.Book]{Items: append([]*entity.Book(nil), q.items...)}, nil
}

func (q *gatedBookQuerier) AddToCollectionIfMissing(collection []*entity.Book, candidates ...*entity.Book) []*entity.Book {
	return entity.AddBookToCollectionIfMissing(collection, candidates...)
}
