// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package apperr defines the centralized error handling framework for the showcase API.

It provides a rich error type that bridges the gap between low-level remote/storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: transport failures (Upstream), application-level failures reported by the
    remote record store (Rejected) and client-side validation failures (ValidationError).
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses and user-facing notifications.
*/
package apperr

import (
	"errors"
	"net/http"
)

// GenericFailure is shown when the remote store rejects an operation without a message.
const GenericFailure = "Operation failed"

// AppError is the canonical error type for the showcase API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Project") // Returns "Project not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Conflict creates a 409 [AppError], used when a row already has an operation in flight.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// NothingSelected creates a 400 [AppError] for bulk operations with an empty selection.
func NothingSelected() *AppError {
	return &AppError{
		Code:       "NOTHING_SELECTED",
		Message:    "No rows selected",
		HTTPStatus: http.StatusBadRequest,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited() *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    "Rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Upstream Errors (502)

// Upstream wraps a transport-level failure talking to an external collaborator.
//
// No distinction is made between timeouts, DNS failures or server errors; the
// client only ever sees the generic message.
func Upstream(cause error) *AppError {
	return &AppError{
		Code:       "UPSTREAM_UNAVAILABLE",
		Message:    "Could not reach the record store, please try again",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// BadResponse reports that the remote store answered, but not with a usable
// response: a non-2xx status or a body that does not decode. Unlike [Upstream],
// the request reached the store.
func BadResponse(cause error) *AppError {
	return &AppError{
		Code:       "UPSTREAM_BAD_RESPONSE",
		Message:    "The record store returned an unexpected response",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// Answered reports whether err came back from the remote store after it
// received the request, either as a rejection or as a bad response.
func Answered(err error) bool {
	return HasCode(err, "UPSTREAM_REJECTED") || HasCode(err, "UPSTREAM_BAD_RESPONSE")
}

// Rejected reports an application-level failure signalled by the remote record store.
// An empty message falls back to [GenericFailure].
func Rejected(msg string) *AppError {
	if msg == "" {
		msg = GenericFailure
	}
	return &AppError{
		Code:       "UPSTREAM_REJECTED",
		Message:    msg,
		HTTPStatus: http.StatusBadGateway,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for disabled optional features.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
