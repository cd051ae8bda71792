package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// Kind classifies a domain error so the HTTP layer can pick a status code
// without inspecting individual sentinel errors.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindStore        Kind = "store"
)

// Error is a domain error carrying a Kind. Services return these (usually as
// package-level sentinels) and handlers map them to responses via Respond.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a validation error (malformed or missing input).
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Unauthorized creates an authentication error.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden creates an authorization error (caller lacks membership).
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound creates a missing-entity error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict creates a uniqueness/duplicate error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Store wraps an unrecoverable persistence failure.
func Store(message string, err error) *Error {
	return &Error{Kind: KindStore, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindStore for errors that
// did not originate in the domain layer.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindStore
}

// APIError represents a standardized API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// Respond maps a domain error to an HTTP status and a structured body.
func Respond(c *gin.Context, err error) {
	message := err.Error()
	switch KindOf(err) {
	case KindValidation:
		c.JSON(http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
	case KindUnauthorized:
		c.JSON(http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
	case KindForbidden:
		c.JSON(http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
	case KindNotFound:
		c.JSON(http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
	case KindConflict:
		c.JSON(http.StatusConflict, NewAPIError(ErrCodeConflict, message))
	default:
		c.JSON(http.StatusInternalServerError, NewAPIError(ErrCodeInternal, "Internal server error"))
	}
}

// Helper functions for errors raised directly in the HTTP layer

// RespondUnauthorized sends a 401 response
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// RespondBadRequest sends a 400 response
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// RespondInternalError sends a 500 response
func RespondInternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, NewAPIError(ErrCodeInternal, message))
}
