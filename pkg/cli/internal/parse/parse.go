// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rentdesk/rentdesk/pkg/entity"
)

// KeyValue parses a "key=value" or "key:value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to '='.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{'='}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// Criteria parses repeated "name=value" filters into query values.
// A name without an operator gets ".equals", so "patronId=5" means "patronId.equals=5".
func Criteria(filters []string) (url.Values, error) {
	values := url.Values{}
	for _, f := range filters {
		key, value, ok := KeyValue(f, '=')
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q: expected name=value", f)
		}
		if !strings.Contains(key, ".") {
			key += ".equals"
		}
		values.Add(key, strings.TrimSpace(value))
	}
	return values, nil
}

// ID parses a positive entity identifier.
func ID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

// OptionalDate parses a calendar date; an empty string yields nil.
func OptionalDate(s string) (*entity.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected %s", s, entity.DateFormat)
	}
	return &d, nil
}

// SplitTrim splits a string by separator and trims each part.
func SplitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
