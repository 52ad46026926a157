// Package errors defines the typed application error taxonomy.
// Every domain failure is raised as an *AppError carrying a taxonomy tag and a
// human-readable message; the delivery layer maps the tag to an HTTP status.
package errors

import (
	"net/http"

	"spark/internal/errors"
)

// Type is the taxonomy tag of an application error.
type Type string

// Taxonomy tags. Each maps to exactly one HTTP status code.
const (
	TypeBadRequest   Type = "badRequest"
	TypeValidation   Type = "validation"
	TypeUnauthorized Type = "unauthorized"
	TypeForbidden    Type = "forbidden"
	TypeNotFound     Type = "notFound"
	TypeConflict     Type = "conflict"
	TypeServer       Type = "server"
)

var typeToStatus = map[Type]int{
	TypeBadRequest:   http.StatusBadRequest,
	TypeValidation:   http.StatusBadRequest,
	TypeUnauthorized: http.StatusUnauthorized,
	TypeForbidden:    http.StatusForbidden,
	TypeNotFound:     http.StatusNotFound,
	TypeConflict:     http.StatusConflict,
	TypeServer:       http.StatusInternalServerError,
}

// AppError is a typed application error. It satisfies the error interface and
// carries enough information for the HTTP boundary to render it without
// inspecting internals.
type AppError struct {
	kind    Type
	message string
}

// New creates an AppError with the given taxonomy tag and message.
// Unknown tags degrade to the server tag rather than panicking.
func New(kind Type, message string) *AppError {
	if _, ok := typeToStatus[kind]; !ok {
		kind = TypeServer
	}

	return &AppError{kind: kind, message: message}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return e.message
}

// Type returns the taxonomy tag.
func (e *AppError) Type() Type {
	return e.kind
}

// HTTPCode returns the HTTP status code for the error's taxonomy tag.
func (e *AppError) HTTPCode() int {
	return typeToStatus[e.kind]
}

// Message returns the user-facing error message.
func (e *AppError) Message() string {
	return e.message
}

// WrapMessage wraps the error with additional context while keeping the
// AppError reachable via errors.As.
func (e *AppError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}
