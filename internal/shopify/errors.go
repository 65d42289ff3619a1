package shopify

import (
	"fmt"
	"strings"
)

// TransportError is a network failure or a non-2xx HTTP response from
// Shopify or a staged upload target.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("shopify request failed: %v", e.Err)
	}
	return fmt.Sprintf("shopify request failed with status %d: %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// GraphQLError carries the top-level errors array of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "GraphQL Error: " + strings.Join(e.Messages, ", ")
}

// UserError is a single entry of a mutation's userErrors / mediaUserErrors.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

func (u UserError) String() string {
	if len(u.Field) == 0 {
		return u.Message
	}
	return strings.Join(u.Field, ".") + ": " + u.Message
}

// ValidationError means the mutation was rejected by Shopify with
// userErrors. The operation was not applied.
type ValidationError struct {
	Errors []UserError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, u := range e.Errors {
		msgs[i] = u.String()
	}
	return "Shopify API Error: " + strings.Join(msgs, ", ")
}

// ProtocolError means the response succeeded but the expected payload
// key was missing.
type ProtocolError struct {
	Op string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("shopify: no %s returned", e.Op)
}

// validationError wraps a non-empty userErrors slice, or returns nil.
func validationError(errs []UserError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
