package requestlog

import "time"

// MaxBodySize is the default maximum body size kept per entry (10KB).
const MaxBodySize = 10 * 1024

// Entry is one captured request and the status it was answered with.
type Entry struct {
	// ID is the request's X-Request-ID, or a generated sequence ID.
	ID string `json:"id"`

	Timestamp   time.Time           `json:"timestamp"`
	Method      string              `json:"method"`
	Path        string              `json:"path"`
	QueryString string              `json:"queryString,omitempty"`
	Headers     map[string][]string `json:"headers,omitempty"`
	Body        string              `json:"body,omitempty"`
	BodySize    int                 `json:"bodySize"`

	ResponseStatus int `json:"responseStatus"`
	DurationMs     int `json:"durationMs"`
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Method string

	// Path matches the entry path or any path below it.
	Path string

	StatusCode int

	Limit  int
	Offset int
}

// Logger records entries.
type Logger interface {
	Log(entry *Entry)
}

// Store records entries and answers queries over them.
type Store interface {
	Logger

	Get(id string) *Entry

	// List returns matching entries, newest first.
	List(filter *Filter) []*Entry

	Clear()

	Count() int
}

// TruncateBody truncates a string to maxSize bytes, appending "...(truncated)" if truncated.
// If maxSize <= 0, uses MaxBodySize.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxBodySize
	}
	if len(data) > maxSize {
		return data[:maxSize] + "...(truncated)"
	}
	return data
}
