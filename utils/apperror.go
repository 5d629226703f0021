package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	if e.Msg == "" {
		return "missing required fields: " + strings.Join(e.Fields, ", ")
	}
	return fmt.Sprintf("%s: %s", e.Msg, strings.Join(e.Fields, ", "))
}

// AuthError reports OTP, role sequencing or ownership violations.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// NotFoundError reports a lookup miss.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// PermissionError reports a denied capability, e.g. geolocation.
type PermissionError struct {
	Msg string
}

func (e *PermissionError) Error() string { return e.Msg }

// StateError reports an operation invoked in the wrong lifecycle state.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return e.Msg }

// TransitionError reports an illegal booking status change.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

func NewValidationError(msg string, fields ...string) error {
	return &ValidationError{Msg: msg, Fields: fields}
}

func NewAuthError(format string, args ...any) error {
	return &AuthError{Msg: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewStateError(format string, args ...any) error {
	return &StateError{Msg: fmt.Sprintf(format, args...)}
}

// StatusFor maps an error to the HTTP status used in JSON error responses.
func StatusFor(err error) int {
	var (
		validation *ValidationError
		auth       *AuthError
		notFound   *NotFoundError
		permission *PermissionError
		state      *StateError
		transition *TransitionError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &auth):
		return http.StatusUnauthorized
	case errors.As(err, &permission):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &state), errors.As(err, &transition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
