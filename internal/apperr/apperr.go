// Package apperr defines the error kinds shared by the store, service and API layers.
package apperr

import (
	"errors"
	"sort"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

// Error is a sentinel-friendly error with a kind. Compare with errors.Is.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

var (
	ErrNotFound           = New(KindNotFound, "record not found")
	ErrAlreadyEnrolled    = New(KindConflict, "student already has an active enrollment for this course")
	ErrScheduleFull       = New(KindConflict, "schedule is full")
	ErrUserExists         = New(KindConflict, "email or username already registered")
	ErrInvalidCredentials = New(KindUnauthorized, "invalid credentials")
	ErrAdminPromotion     = New(KindValidation, "admin users cannot be promoted")
	ErrForbidden          = New(KindForbidden, "forbidden")
	ErrGoogleDisabled     = New(KindNotFound, "google sign-in is not configured")
)

// ValidationError carries per-field messages, keyed by JSON field name.
type ValidationError struct {
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Add appends a message for field and returns e for chaining.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.FieldErrors == nil {
		e.FieldErrors = map[string][]string{}
	}
	e.FieldErrors[field] = append(e.FieldErrors[field], msg)
	return e
}

func NewValidation(field, msg string) *ValidationError {
	return (&ValidationError{}).Add(field, msg)
}

// KindOf reports the kind of err, KindInternal when it carries none.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}
