package learnkit

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a structured field-level rejection from the
// remote API (a 422 response). It maps each field name to the list of
// messages reported for it, so callers can render per-field feedback
// instead of a single flattened string.
type ValidationError map[string][]string

// Error implements the error interface.
// Fields are listed in stable order so the message is deterministic.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	fields := e.Fields()
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if msgs := e[field]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
		}
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates an empty validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add appends an error message for a field.
func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the first message for a field, or "" if the field is clean.
func (e ValidationError) Get(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Has reports whether a field has any messages.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// Fields returns the rejected field names in sorted order.
func (e ValidationError) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// IsEmpty reports whether there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
