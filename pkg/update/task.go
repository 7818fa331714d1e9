package update

import (
	"context"
	"sync"
)

// SaveTask is the pending result of a Save.
type SaveTask[T any] struct {
	done   chan struct{}
	once   sync.Once
	result *T
	err    error
}

func newSaveTask[T any]() *SaveTask[T] {
	return &SaveTask[T]{done: make(chan struct{})}
}

func (t *SaveTask[T]) complete(result *T, err error) {
	t.once.Do(func() {
		t.result, t.err = result, err
		close(t.done)
	})
}

// Done is closed once the save has finished, after the busy flag was cleared.
func (t *SaveTask[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the save finishes or ctx is done. It returns the entity
// the server sent back, or the save error.
func (t *SaveTask[T]) Wait(ctx context.Context) (*T, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LoadTask is the pending completion of the relationship loads started by Init.
type LoadTask struct {
	done chan struct{}
	err  error
}

func newLoadTask() *LoadTask {
	return &LoadTask{done: make(chan struct{})}
}

func (t *LoadTask) complete(err error) {
	t.err = err
	close(t.done)
}

// Done is closed once every relationship query has finished.
func (t *LoadTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until all loads finish or ctx is done. It returns the first
// failed query's error; the other collections are loaded regardless.
func (t *LoadTask) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
