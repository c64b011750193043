// Package errs provides the unified error type used across filebase-go.
//
// Every subsystem (object store drivers, pin API client, the Client itself)
// wraps its native errors into *errs.Error before returning them to callers.
// Callers use the Is* predicates to handle errors without importing
// SDK-specific packages.
//
// An *Error is one of two variants, distinguished by Status:
//
//	Status > 0  — the backend answered with a non-success status
//	              (Reason and Body carry what it said)
//	Status == 0 — the call never produced a backend response
//	              (Cause carries the transport or local failure)
//
// Usage:
//
//	// In a driver — wrap native errors:
//	return errs.Backend(errs.ErrKindNotFound, "bucket does not exist", 404, "NoSuchBucket", body, err)
//
//	// In a caller — check error kind:
//	if errs.IsNotFound(err) {
//	    ...
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing SDK-specific codes.
// All backends (MinIO SDK, AWS SDK, pin REST API) map their native errors
// to one of these kinds, giving callers a single consistent API.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindNotFound                 // no object, no bucket, no pin
	ErrKindConnectionFailed         // cannot reach the backend
	ErrKindTimeout                  // context deadline / cancellation
	ErrKindRequestFailed            // backend rejected or failed the operation
	ErrKindInvalidInput             // bad arguments or unreadable local file
	ErrKindPermissionDenied         // access denied / auth failure
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindRequestFailed:
		return "request_failed"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindPermissionDenied:
		return "permission_denied"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all filebase-go subsystems.
// Drivers produce it; callers inspect it via the Is* predicates below.
type Error struct {
	Kind    ErrKind
	Message string

	// Status is the HTTP status code reported by the backend.
	// Zero means the failure happened before any backend response existed.
	Status int

	// Reason is the backend's reason phrase or S3 error code.
	// Empty for transport-level failures.
	Reason string

	// Body is the raw response body or error text the backend returned.
	Body string

	// Cause is the original SDK or transport error, preserved for logging.
	Cause error
}

func (e *Error) Error() string {
	switch {
	case e.Status > 0:
		return fmt.Sprintf("[%s] %s: backend returned %d %s", e.Kind, e.Message, e.Status, e.Reason)
	case e.Cause != nil:
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates a transport-variant *Error with an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// Backend creates a backend-variant *Error carrying the status, reason
// phrase, and body the backend reported. status must be non-zero.
func Backend(kind ErrKind, msg string, status int, reason, body string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: msg,
		Status:  status,
		Reason:  reason,
		Body:    body,
		Cause:   cause,
	}
}

// --- Predicates ---

// IsBackend reports whether err carries a status code reported by the
// backend, as opposed to a transport or local failure.
func IsBackend(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status > 0
}

// StatusOf returns the backend status code carried by err, or 0 if err is
// not a backend-variant *Error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// IsNotFound reports whether err represents a "not found" result
// (missing object, unknown bucket, no such pin, …).
func IsNotFound(err error) bool {
	return kindOf(err) == ErrKindNotFound
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return kindOf(err) == ErrKindTimeout
}

// IsConnectionFailed reports whether err is a connectivity failure.
func IsConnectionFailed(err error) bool {
	return kindOf(err) == ErrKindConnectionFailed
}

// IsRequestFailed reports whether err is a backend operation failure.
func IsRequestFailed(err error) bool {
	return kindOf(err) == ErrKindRequestFailed
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return kindOf(err) == ErrKindInvalidInput
}

// IsPermissionDenied reports whether err is an access control failure.
func IsPermissionDenied(err error) bool {
	return kindOf(err) == ErrKindPermissionDenied
}

// kindOf extracts the ErrKind from any error in the chain.
func kindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
