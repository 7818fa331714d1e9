package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const datePattern = `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`

// Required-field schemas, one per entity name.
var schemaSources = map[string]string{
	"book": `{
		"type": "object",
		"required": ["title", "isbn"],
		"properties": {
			"id": {"type": "integer"},
			"title": {"type": "string", "minLength": 1},
			"isbn": {"type": "string", "minLength": 1}
		}
	}`,
	"patron": `{
		"type": "object",
		"required": ["name", "dateOfBirth", "phoneNumber"],
		"properties": {
			"id": {"type": "integer"},
			"name": {"type": "string", "minLength": 1},
			"dateOfBirth": {"type": "string", "pattern": "` + datePattern + `"},
			"phoneNumber": {"type": "string", "minLength": 1}
		}
	}`,
	"inventory": `{
		"type": "object",
		"required": ["book"],
		"properties": {
			"id": {"type": "integer"},
			"book": {"$ref": "#/$defs/reference"}
		},
		"$defs": {
			"reference": {"type": "object", "required": ["id"], "properties": {"id": {"type": "integer"}}}
		}
	}`,
	"rental": `{
		"type": "object",
		"required": ["rentalDate"],
		"properties": {
			"id": {"type": "integer"},
			"rentalDate": {"type": "string", "pattern": "` + datePattern + `"},
			"returnDate": {"type": "string", "pattern": "` + datePattern + `"},
			"patron": {"$ref": "#/$defs/reference"},
			"inventory": {"$ref": "#/$defs/reference"}
		},
		"$defs": {
			"reference": {"type": "object", "required": ["id"], "properties": {"id": {"type": "integer"}}}
		}
	}`,
}

var schemas struct {
	once   sync.Once
	byName map[string]*jsonschema.Schema
	err    error
}

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	schemas.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		byName := make(map[string]*jsonschema.Schema, len(schemaSources))
		for name, src := range schemaSources {
			url := name + ".json"
			if err := compiler.AddResource(url, strings.NewReader(src)); err != nil {
				schemas.err = fmt.Errorf("failed to add %s schema: %w", name, err)
				return
			}
			s, err := compiler.Compile(url)
			if err != nil {
				schemas.err = fmt.Errorf("failed to compile %s schema: %w", name, err)
				return
			}
			byName[name] = s
		}
		schemas.byName = byName
	})
	return schemas.byName, schemas.err
}

// FieldError describes one invalid or missing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned by Validate when an entity misses required values.
type ValidationError struct {
	Entity string       `json:"entity"`
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field == "" {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

// Name returns the lower-case entity name of v ("book", "patron", "inventory", "rental"),
// or "" when v is not an entity.
func Name(v any) string {
	switch v.(type) {
	case *Book, Book:
		return "book"
	case *Patron, Patron:
		return "patron"
	case *Inventory, Inventory:
		return "inventory"
	case *Rental, Rental:
		return "rental"
	default:
		return ""
	}
}

// Validate checks that v, a Book, Patron, Inventory or Rental (or a pointer to one),
// has all of its required fields set. It returns a *ValidationError listing the
// offending fields.
func Validate(v any) error {
	name := Name(v)
	if name == "" {
		return fmt.Errorf("cannot validate %T: not an entity", v)
	}
	byName, err := compileSchemas()
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	if doc == nil {
		return &ValidationError{Entity: name, Errors: []FieldError{{Message: "value is required"}}}
	}

	err = byName[name].Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	result := &ValidationError{Entity: name}
	collectFieldErrors(verr, result)
	return result
}

func collectFieldErrors(err *jsonschema.ValidationError, result *ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, FieldError{
			Field:   strings.ReplaceAll(strings.TrimPrefix(err.InstanceLocation, "/"), "/", "."),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectFieldErrors(cause, result)
	}
}
