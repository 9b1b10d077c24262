package model

import "strings"

// Error is a single domain validation failure.
type Error struct {
	Message string
}

// Notification accumulates validation errors instead of failing fast,
// so a caller can report every violated invariant in one response.
// A notification is created per validation attempt and never persisted.
type Notification struct {
	errors []Error
}

// NewNotification creates an empty notification.
func NewNotification() *Notification {
	return &Notification{}
}

// Append adds one error and returns the notification for chaining.
func (n *Notification) Append(err Error) *Notification {
	n.errors = append(n.errors, err)
	return n
}

// AppendAll merges another notification's errors, preserving order:
// current errors first, then the incoming ones.
func (n *Notification) AppendAll(other *Notification) *Notification {
	if other == nil {
		return n
	}
	n.errors = append(n.errors, other.errors...)
	return n
}

// HasErrors reports whether any error has been appended.
func (n *Notification) HasErrors() bool {
	return len(n.errors) > 0
}

// Errors returns the accumulated errors in append order.
func (n *Notification) Errors() []Error {
	return n.errors
}

// FirstError returns the first appended error, if any.
func (n *Notification) FirstError() (Error, bool) {
	if len(n.errors) == 0 {
		return Error{}, false
	}
	return n.errors[0], true
}

// ValidationError carries a notification's accumulated errors as a single
// error value. It marks expected, recoverable validation failures; callers
// distinguish it from operational failures with errors.As.
type ValidationError struct {
	Violations []Error
}

// NewValidationError builds a ValidationError from a notification.
func NewValidationError(n *Notification) *ValidationError {
	return &ValidationError{Violations: n.Errors()}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
