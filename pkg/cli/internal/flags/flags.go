// Package flags provides reusable flag types for CLI commands.
package flags

import (
	"strconv"
	"strings"
)

// StringSlice implements pflag.Value for repeatable string flags.
type StringSlice []string

// String returns the string representation of the flag value.
func (s *StringSlice) String() string {
	return strings.Join(*s, ",")
}

// Set appends a value to the slice.
func (s *StringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Type specifies the type label for Cobra flags.
func (s *StringSlice) Type() string {
	return "stringSlice"
}

// OptionalID is an entity ID flag that remembers whether it was given.
type OptionalID struct {
	Value int64
	IsSet bool
}

// String returns the ID, or "" when unset.
func (o *OptionalID) String() string {
	if !o.IsSet {
		return ""
	}
	return strconv.FormatInt(o.Value, 10)
}

// Set parses a positive ID.
func (o *OptionalID) Set(value string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return strconv.ErrSyntax
	}
	o.Value, o.IsSet = id, true
	return nil
}

// Type specifies the type label for Cobra flags.
func (o *OptionalID) Type() string {
	return "id"
}

// Ptr returns the ID, or nil when unset.
func (o *OptionalID) Ptr() *int64 {
	if !o.IsSet {
		return nil
	}
	v := o.Value
	return &v
}
