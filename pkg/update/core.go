package update

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
	"github.com/rentdesk/rentdesk/pkg/entity"
)

// Saver persists an entity. Create is used for entities without an ID,
// Update for the rest.
type Saver[T any] interface {
	Create(ctx context.Context, e *T) (*T, error)
	Update(ctx context.Context, e *T) (*T, error)
}

// Querier loads the options offered for a relationship field.
type Querier[T any] interface {
	Query(ctx context.Context, opts *apiclient.QueryOptions) (*apiclient.Page[T], error)
	AddToCollectionIfMissing(collection []*T, candidates ...*T) []*T
}

// Finder looks up one entity by ID.
type Finder[T any] interface {
	Find(ctx context.Context, id int64) (*T, error)
}

// core is the lifecycle shared by every controller. Its mutex also guards the
// form and collections of the controller embedding it.
type core[T any] struct {
	mu     sync.RWMutex
	state  State
	saving bool
	// gen increments on every Init so loads from an earlier Init are dropped.
	gen uint64

	saver    Saver[T]
	nav      Navigator
	identify func(*T) *int64
	query    *apiclient.QueryOptions
	logger   *slog.Logger

	onSuccess func(*T)
	onError   func(error)
}

func newCore[T any](name string, saver Saver[T], identify func(*T) *int64, nav Navigator, opts []Option) *core[T] {
	s := newSettings(opts)
	c := &core[T]{
		saver:    saver,
		nav:      nav,
		identify: identify,
		query:    s.query,
		logger:   s.logger.With("entity", name),
		onError:  func(error) {},
	}
	c.onSuccess = c.navigateBack
	if s.onError != nil {
		c.onError = s.onError
	}
	return c
}

func (c *core[T]) navigateBack(*T) {
	if c.nav != nil {
		c.nav.PreviousState()
	}
}

// OnSaveSuccess replaces the default success behavior, returning to the
// previous view, with fn. A nil fn restores the default.
func (c *core[T]) OnSaveSuccess(fn func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fn == nil {
		fn = c.navigateBack
	}
	c.onSuccess = fn
}

// State returns the current lifecycle state.
func (c *core[T]) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsSaving reports whether a save is in flight.
func (c *core[T]) IsSaving() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.saving
}

// setState must be called with mu held.
func (c *core[T]) setState(next State) {
	if c.state == next {
		return
	}
	c.logger.Debug("state transition", "from", c.state.String(), "to", next.String())
	c.state = next
}

// startLoading must be called with mu held.
func (c *core[T]) startLoading() uint64 {
	c.gen++
	c.setState(StateLoading)
	return c.gen
}

type loadFunc func(ctx context.Context, gen uint64) error

// load runs every loader concurrently and moves to StateReady once all have returned.
func (c *core[T]) load(ctx context.Context, gen uint64, loaders ...loadFunc) *LoadTask {
	task := newLoadTask()
	var g errgroup.Group
	for _, l := range loaders {
		g.Go(func() error {
			return l(ctx, gen)
		})
	}
	go func() {
		err := g.Wait()
		c.mu.Lock()
		if gen == c.gen && c.state == StateLoading {
			c.setState(StateReady)
		}
		c.mu.Unlock()
		task.complete(err)
	}()
	return task
}

// relationshipLoader queries the options for one relationship field and
// publishes them, with the form's current value merged in, to *collection.
// current is called with mu held.
func relationshipLoader[T, R any](c *core[T], name string, q Querier[R], collection *[]*R, current func() *R) loadFunc {
	return func(ctx context.Context, gen uint64) error {
		page, err := q.Query(ctx, c.query)
		if err != nil {
			c.logger.Warn("failed to load relationship options", "relationship", name, "error", err)
			return fmt.Errorf("load %s options: %w", name, err)
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.gen {
			return nil
		}
		*collection = q.AddToCollectionIfMissing(page.Items, current())
		c.logger.Debug("loaded relationship options", "relationship", name, "count", len(*collection))
		return nil
	}
}

// save persists e in the background. Saves are not de-duplicated: calling it
// again before the first completes issues a second request.
func (c *core[T]) save(ctx context.Context, e *T) *SaveTask[T] {
	c.mu.Lock()
	c.saving = true
	c.setState(StateSaving)
	c.mu.Unlock()

	task := newSaveTask[T]()
	go c.runSave(ctx, e, task)
	return task
}

func (c *core[T]) runSave(ctx context.Context, e *T, task *SaveTask[T]) {
	var (
		result *T
		err    error
	)
	defer func() {
		c.mu.Lock()
		c.saving = false
		if err != nil {
			c.setState(StateSaveFailed)
		} else {
			c.setState(StateSavedSuccess)
		}
		c.mu.Unlock()
		task.complete(result, err)
	}()

	if c.identify(e) != nil {
		result, err = c.saver.Update(ctx, e)
	} else {
		result, err = c.saver.Create(ctx, e)
	}
	if err != nil {
		c.logger.Warn("save failed", "error", err)
		c.onError(err)
		return
	}
	c.mu.RLock()
	onSuccess := c.onSuccess
	c.mu.RUnlock()
	onSuccess(result)
}

func cloneSlice[R any](items []*R) []*R {
	if items == nil {
		return nil
	}
	return append([]*R(nil), items...)
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneDate(d *entity.Date) *entity.Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
