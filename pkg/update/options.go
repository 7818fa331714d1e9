package update

import (
	"log/slog"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
	"github.com/rentdesk/rentdesk/pkg/logging"
)

// Option configures a controller.
type Option func(*settings)

type settings struct {
	logger  *slog.Logger
	onError func(error)
	query   *apiclient.QueryOptions
}

// WithLogger sets the logger for state transitions and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logging.Component(logger, "update")
	}
}

// WithSaveErrorHook runs fn after a failed save, before the busy flag clears.
// By default a failed save does nothing beyond completing its task.
func WithSaveErrorHook(fn func(error)) Option {
	return func(s *settings) {
		s.onError = fn
	}
}

// WithQueryOptions sets the query used to load relationship options.
// The default leaves paging and sorting to the server.
func WithQueryOptions(opts *apiclient.QueryOptions) Option {
	return func(s *settings) {
		s.query = opts
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{logger: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
