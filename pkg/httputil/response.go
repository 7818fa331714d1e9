// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Content types written by this package.
const (
	ContentTypeJSON    = "application/json"
	ContentTypeProblem = "application/problem+json"
)

// TotalCountHeader carries the total number of items behind a paged listing.
const TotalCountHeader = "X-Total-Count"

// Problem is an RFC 7807 error body, extended with field errors for rejected payloads.
type Problem struct {
	Type        string       `json:"type,omitempty"`
	Title       string       `json:"title"`
	Status      int          `json:"status"`
	Detail      string       `json:"detail,omitempty"`
	Message     string       `json:"message,omitempty"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

// FieldError is one rejected field of a request payload.
type FieldError struct {
	ObjectName string `json:"objectName"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WritePage writes a 200 OK listing along with the total count header.
func WritePage(w http.ResponseWriter, items any, total int) {
	w.Header().Set(TotalCountHeader, strconv.Itoa(total))
	WriteJSON(w, http.StatusOK, items)
}

// WriteProblem writes p as application/problem+json. A zero Title defaults
// to the status text.
func WriteProblem(w http.ResponseWriter, p Problem) {
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}
	w.Header().Set("Content-Type", ContentTypeProblem)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// WriteError writes a problem response with the given status code.
// errCode becomes the problem message key and detail the human-readable text.
func WriteError(w http.ResponseWriter, status int, errCode, detail string) {
	WriteProblem(w, Problem{Status: status, Message: errCode, Detail: detail})
}

// WriteValidationProblem writes a 400 Bad Request listing the rejected fields.
func WriteValidationProblem(w http.ResponseWriter, detail string, fields []FieldError) {
	WriteProblem(w, Problem{
		Status:      http.StatusBadRequest,
		Title:       "Method argument not valid",
		Message:     "error.validation",
		Detail:      detail,
		FieldErrors: fields,
	})
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteCreated writes a 201 Created response with the created resource.
func WriteCreated(w http.ResponseWriter, location string, data any) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	WriteJSON(w, http.StatusCreated, data)
}

// WriteOK writes a 200 OK response with data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteBadRequest writes a 400 Bad Request error response.
func WriteBadRequest(w http.ResponseWriter, errCode, detail string) {
	WriteError(w, http.StatusBadRequest, errCode, detail)
}

// WriteNotFound writes a 404 Not Found error response.
func WriteNotFound(w http.ResponseWriter, errCode, detail string) {
	WriteError(w, http.StatusNotFound, errCode, detail)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, errCode, detail string) {
	WriteError(w, http.StatusInternalServerError, errCode, detail)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, errCode, detail string) {
	WriteError(w, http.StatusConflict, errCode, detail)
}
