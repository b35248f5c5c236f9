package business

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist in the caller's workspace.
var ErrNotFound = errors.New("not found")

// FieldError describes one invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned for malformed input. It never reaches the database.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add appends a field error
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed validation
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns nil when no fields failed, so it can be returned as an error directly.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ApprovalRequiredError signals that the discount was not committed because a
// pending approval had to be created first.
type ApprovalRequiredError struct {
	Approval ApprovalSummary
}

func (e *ApprovalRequiredError) Error() string {
	return fmt.Sprintf("discount requires approval (approval %s)", e.Approval.ID)
}

// ApprovalPendingError is returned when a commit is attempted while the
// transaction still awaits an approval decision.
type ApprovalPendingError struct {
	ApprovalID uuid.UUID
}

func (e *ApprovalPendingError) Error() string {
	return "discount is awaiting approval"
}

// ConflictError reports an invalid state transition or a duplicate.
type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Reason)
}

// ConsistencyError is an internal invariant violation. Nothing is persisted when it is raised.
type ConsistencyError struct {
	Message string
}

func (e *ConsistencyError) Error() string {
	return "consistency violation: " + e.Message
}
