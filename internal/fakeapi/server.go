package fakeapi

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rentdesk/rentdesk/internal/requestlog"
	"github.com/rentdesk/rentdesk/internal/storage"
	"github.com/rentdesk/rentdesk/pkg/entity"
	"github.com/rentdesk/rentdesk/pkg/httputil"
	"github.com/rentdesk/rentdesk/pkg/logging"
)

// DefaultPageSize is used when a listing does not ask for a size.
const DefaultPageSize = 20

// Server is an http.Handler backed by in-memory stores.
type Server struct {
	// writeMu serializes writes so reference checks see a consistent state.
	writeMu sync.Mutex

	books       *storage.InMemoryStore[entity.Book]
	patrons     *storage.InMemoryStore[entity.Patron]
	inventories *storage.InMemoryStore[entity.Inventory]
	rentals     *storage.InMemoryStore[entity.Rental]

	requests *requestlog.MemoryStore

	mux    *http.ServeMux
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithRequestLogCapacity bounds how many requests Requests keeps.
func WithRequestLogCapacity(n int) Option {
	return func(s *Server) {
		s.requests = requestlog.NewMemoryStore(n)
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logging.Component(logger, "fakeapi")
	}
}

// New creates an empty Server.
func New(opts ...Option) *Server {
	s := &Server{
		books: storage.NewInMemoryStore(storage.Accessors[entity.Book]{
			Identify: (*entity.Book).Identifier,
			Assign:   func(b *entity.Book, id int64) { b.ID = entity.ID(id) },
			Clone:    (*entity.Book).Clone,
		}),
		patrons: storage.NewInMemoryStore(storage.Accessors[entity.Patron]{
			Identify: (*entity.Patron).Identifier,
			Assign:   func(p *entity.Patron, id int64) { p.ID = entity.ID(id) },
			Clone:    (*entity.Patron).Clone,
		}),
		inventories: storage.NewInMemoryStore(storage.Accessors[entity.Inventory]{
			Identify: (*entity.Inventory).Identifier,
			Assign:   func(i *entity.Inventory, id int64) { i.ID = entity.ID(id) },
			Clone:    (*entity.Inventory).Clone,
		}),
		rentals: storage.NewInMemoryStore(storage.Accessors[entity.Rental]{
			Identify: (*entity.Rental).Identifier,
			Assign:   func(r *entity.Rental, id int64) { r.ID = entity.ID(id) },
			Clone:    (*entity.Rental).Clone,
		}),
		requests: requestlog.NewMemoryStore(requestlog.DefaultMaxEntries),
		mux:      http.NewServeMux(),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// Books exposes the book store, e.g. for seeding.
func (s *Server) Books() *storage.InMemoryStore[entity.Book] { return s.books }

// Patrons exposes the patron store.
func (s *Server) Patrons() *storage.InMemoryStore[entity.Patron] { return s.patrons }

// Inventories exposes the inventory store.
func (s *Server) Inventories() *storage.InMemoryStore[entity.Inventory] { return s.inventories }

// Rentals exposes the rental store.
func (s *Server) Rentals() *storage.InMemoryStore[entity.Rental] { return s.rentals }

// Requests exposes the log of received requests, newest first.
func (s *Server) Requests() requestlog.Store { return s.requests }

// Reset clears every store.
func (s *Server) Reset() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.books.Clear()
	s.patrons.Clear()
	s.inventories.Clear()
	s.rentals.Clear()
	s.requests.Clear()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)

	elapsed := time.Since(start)
	s.requests.Log(&requestlog.Entry{
		ID:             r.Header.Get(requestIDHeader),
		Timestamp:      start,
		Method:         r.Method,
		Path:           r.URL.Path,
		QueryString:    r.URL.RawQuery,
		Headers:        r.Header.Clone(),
		Body:           requestlog.TruncateBody(string(body), 0),
		BodySize:       len(body),
		ResponseStatus: rec.status,
		DurationMs:     int(elapsed.Milliseconds()),
	})
	s.logger.Debug("handled request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", elapsed,
		"requestId", r.Header.Get(requestIDHeader),
	)
}

// requestIDHeader is the header clients use to correlate requests.
const requestIDHeader = "X-Request-ID"

func (s *Server) handleRequestLog(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	filter := &requestlog.Filter{Method: q.Get("method"), Path: q.Get("path")}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			httputil.WriteBadRequest(w, "error.limit", "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}
	httputil.WriteOK(w, s.requests.List(filter))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) routes() {
	register(s, "/api/books", &resource[entity.Book]{
		name:  "book",
		store: s.books,
		referenced: func(id int64) bool {
			return storage.NewFilteredStore[entity.Inventory](s.inventories, func(i *entity.Inventory) bool {
				return idEquals(i.Book.Identifier(), id)
			}).Count() > 0
		},
	})
	register(s, "/api/patrons", &resource[entity.Patron]{
		name:  "patron",
		store: s.patrons,
		referenced: func(id int64) bool {
			return len(s.rentalsWhere(func(r *entity.Rental) bool {
				return idEquals(r.Patron.Identifier(), id)
			})) > 0
		},
	})
	s.mux.HandleFunc("GET /api/patrons/{id}/books", s.handlePatronRentals)
	register(s, "/api/inventories", &resource[entity.Inventory]{
		name:  "inventory",
		store: s.inventories,
		criteria: map[string]func(*entity.Inventory) *int64{
			"bookId": func(i *entity.Inventory) *int64 { return i.Book.Identifier() },
		},
		hydrate: s.hydrateInventory,
		referenced: func(id int64) bool {
			return len(s.rentalsWhere(func(r *entity.Rental) bool {
				return idEquals(r.Inventory.Identifier(), id)
			})) > 0
		},
	})

	// Fixed paths take precedence over {id} in ServeMux, so these may share the prefix.
	s.mux.HandleFunc("GET /api/rentals/available", s.handleAvailableRentals)
	s.mux.HandleFunc("GET /api/availability", s.handleAvailability)
	s.mux.HandleFunc("GET /debug/requests", s.handleRequestLog)
	register(s, "/api/rentals", &resource[entity.Rental]{
		name:  "rental",
		store: s.rentals,
		criteria: map[string]func(*entity.Rental) *int64{
			"patronId":    func(r *entity.Rental) *int64 { return r.Patron.Identifier() },
			"inventoryId": func(r *entity.Rental) *int64 { return r.Inventory.Identifier() },
		},
		hydrate: s.hydrateRental,
	})
}
