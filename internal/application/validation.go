package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts flag-style names to words for error messages
// (e.g., "goodreadsPath" -> "Goodreads export path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"goodreadsPath":  "Goodreads export path",
		"storygraphPath": "StoryGraph export path",
		"recordID":       "record ID",
		"query":          "search query",
		"isbn":           "ISBN",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateScope checks that a collect scope names known catalogs
func ValidateScope(scope Scope) error {
	if _, ok := scope.Sources(); !ok {
		return &ValidationError{
			Field:   "scope",
			Message: fmt.Sprintf("expected goodreads, storygraph or all, got: %s", scope),
		}
	}
	return nil
}
