package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL_EndpointFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		base, api, want string
	}{
		{"http://localhost:8080/", "api/books", "http://localhost:8080/api/books"},
		{"http://localhost:8080", "/api/books", "http://localhost:8080/api/books"},
		{"http://host/prefix//", "api/rentals", "http://host/prefix/api/rentals"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseURL(tt.base).EndpointFor(tt.api))
	}
}

func TestClient_SetsHeaders(t *testing.T) {
	t.Parallel()
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`3`))
	}))
	defer srv.Close()

	client := New(BaseURL(srv.URL), WithUserAgent("rentdesk-test"), WithTimeout(time.Second))
	n, err := client.Availability(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, "rentdesk-test", got.Get("User-Agent"))
	assert.Equal(t, contentTypeJSON, got.Get("Accept"))
	_, err = uuid.Parse(got.Get(RequestIDHeader))
	assert.NoError(t, err, "request id must be a UUID")
}

func TestClient_AvailabilityQuery(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/availability", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("bookId"))
		_, _ = w.Write([]byte(`0`))
	}))
	defer srv.Close()

	n, err := New(BaseURL(srv.URL)).Availability(context.Background(), 42)

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(BaseURL(url)).Availability(context.Background(), 1)

	require.ErrorIs(t, err, ErrTransport)
}

func TestAPIError_Unwrap(t *testing.T) {
	t.Parallel()
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnprocessableEntity, ErrValidation},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, nil},
	}
	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status}
		assert.Equal(t, tt.want, err.Unwrap(), "status %d", tt.status)
	}
}

func TestParseError_PlainBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down for maintenance"))
	}))
	defer srv.Close()

	_, err := New(BaseURL(srv.URL)).Availability(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Service Unavailable", apiErr.Title)
	assert.Equal(t, http.MethodGet, apiErr.Method)
}

func TestQueryOptions_Values(t *testing.T) {
	t.Parallel()

	assert.Empty(t, (*QueryOptions)(nil).Values())

	opts := (&QueryOptions{Size: 10, Sort: []string{"id,asc"}}).
		WithPage(0).
		Where("patronId.equals", "86367")
	v := opts.Values()

	assert.Equal(t, "0", v.Get("page"))
	assert.Equal(t, "10", v.Get("size"))
	assert.Equal(t, []string{"id,asc"}, v["sort"])
	assert.Equal(t, "86367", v.Get("patronId.equals"))
}
