package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Sentinel errors for API operations.
var (
	// ErrTransport wraps network failures; no response was received.
	ErrTransport = errors.New("transport failure")
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when the server rejects a payload.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when the server refuses a change that clashes with stored state.
	ErrConflict = errors.New("conflict")
	// ErrIDExists is returned by Create for an entity that already has an ID.
	ErrIDExists = errors.New("a new entity cannot already have an ID")
	// ErrIDMissing is returned by Update and PartialUpdate for an entity without an ID.
	ErrIDMissing = errors.New("entity has no ID")
)

// FieldError is one rejected field in a validation problem.
type FieldError struct {
	ObjectName string `json:"objectName"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

// problem is the problem+json body the backend sends on errors.
type problem struct {
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Status      int          `json:"status"`
	Detail      string       `json:"detail"`
	Message     string       `json:"message"`
	FieldErrors []FieldError `json:"fieldErrors"`
}

// APIError is a non-success response from the backend.
type APIError struct {
	Method      string
	URL         string
	StatusCode  int
	Title       string
	Detail      string
	Message     string
	FieldErrors []FieldError
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: status %d", e.Method, e.URL, e.StatusCode)
	switch {
	case e.Detail != "":
		b.WriteString(": " + e.Detail)
	case e.Title != "":
		b.WriteString(": " + e.Title)
	case e.Message != "":
		b.WriteString(": " + e.Message)
	}
	for _, fe := range e.FieldErrors {
		fmt.Fprintf(&b, "; %s: %s", fe.Field, fe.Message)
	}
	return b.String()
}

// Unwrap maps the status code onto the matching sentinel.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}

// parseError builds an *APIError from a failed response, reading a problem body when present.
func parseError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if resp.Request != nil {
		apiErr.Method = resp.Request.Method
		apiErr.URL = resp.Request.URL.String()
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var p problem
	if json.Unmarshal(body, &p) == nil {
		apiErr.Title = p.Title
		apiErr.Detail = p.Detail
		apiErr.Message = p.Message
		apiErr.FieldErrors = p.FieldErrors
	}
	if apiErr.Title == "" && apiErr.Detail == "" && apiErr.Message == "" {
		apiErr.Title = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// IsNotFound reports whether err means the entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
