package service

import "fmt"

// PreconditionError reports a caller contract violation detected before
// any remote call (e.g. uploading an image to a product that has no
// Shopify counterpart).
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

// ValidationError reports field-level local validation failures.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for field, msg := range e.Fields {
		return fmt.Sprintf("validation failed: %s %s", field, msg)
	}
	return "validation failed"
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
