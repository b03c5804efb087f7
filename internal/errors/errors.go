// Package errors defines the service error taxonomy and its HTTP mapping.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code classifies a service error.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeInvalidToken Code = "INVALID_TOKEN"
	CodeTokenExpired Code = "TOKEN_EXPIRED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeUpstream     Code = "UPSTREAM_ERROR"
	CodeRateLimited  Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// ServiceError is the error type surfaced to API callers. Internal causes are
// wrapped but never serialized.
type ServiceError struct {
	Code       Code
	Message    string
	HTTPStatus int
	Details    map[string]interface{}
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// WithDetails attaches a detail entry and returns the error for chaining.
func (e *ServiceError) WithDetails(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func newError(code Code, status int, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message, HTTPStatus: status}
}

// Validation reports malformed or missing input, rejected before any service
// logic runs.
func Validation(message string) *ServiceError {
	return newError(CodeValidation, http.StatusBadRequest, message)
}

// Unauthorized reports a missing or unusable credential.
func Unauthorized(message string) *ServiceError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, message)
}

// InvalidToken reports a token whose structure or signature did not verify.
func InvalidToken(err error) *ServiceError {
	e := newError(CodeInvalidToken, http.StatusUnauthorized, "invalid token")
	e.Err = err
	return e
}

// TokenExpired reports a token past its expiry.
func TokenExpired(err error) *ServiceError {
	e := newError(CodeTokenExpired, http.StatusUnauthorized, "token expired")
	e.Err = err
	return e
}

// Forbidden reports an authenticated caller lacking ownership of the target.
func Forbidden(message string) *ServiceError {
	return newError(CodeForbidden, http.StatusForbidden, message)
}

// NotFound reports an absent entity.
func NotFound(format string, args ...interface{}) *ServiceError {
	return newError(CodeNotFound, http.StatusNotFound, fmt.Sprintf(format, args...))
}

// Conflict reports a uniqueness violation.
func Conflict(format string, args ...interface{}) *ServiceError {
	return newError(CodeConflict, http.StatusConflict, fmt.Sprintf(format, args...))
}

// Upstream reports a failure in an external collaborator.
func Upstream(message string, err error) *ServiceError {
	e := newError(CodeUpstream, http.StatusBadGateway, message)
	e.Err = err
	return e
}

// RateLimitExceeded reports a throttled client.
func RateLimitExceeded(limit int, window string) *ServiceError {
	e := newError(CodeRateLimited, http.StatusTooManyRequests, "rate limit exceeded")
	return e.WithDetails("limit", limit).WithDetails("window", window)
}

// Internal reports a store or crypto primitive failure. The message shown to
// callers stays opaque; the cause is for logs only.
func Internal(message string, err error) *ServiceError {
	e := newError(CodeInternal, http.StatusInternalServerError, message)
	e.Err = err
	return e
}

// GetServiceError unwraps err to a *ServiceError, or nil.
func GetServiceError(err error) *ServiceError {
	var se *ServiceError
	if stderrors.As(err, &se) {
		return se
	}
	return nil
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	se := GetServiceError(err)
	return se != nil && se.Code == code
}
