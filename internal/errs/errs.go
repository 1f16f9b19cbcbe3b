package errs

import (
	"errors"
	"fmt"
)

// Package errs defines the application error taxonomy. Core packages return
// tagged errors; the HTTP layer maps Kind to a status code exactly once.

type Kind int

const (
	KindInternal Kind = iota
	// KindValidation covers missing/malformed input, including an empty slug
	// derivation and a missing required asset on create.
	KindValidation
	// KindNotFound covers an id or slug that resolves to no document.
	KindNotFound
	// KindDuplicate covers storage-layer unique constraint violations that
	// slipped past a pre-check (slug races, duplicate setting keys).
	KindDuplicate
	// KindUpload covers a failed put to the remote asset store. The document
	// write is never attempted after one of these.
	KindUpload
	// KindUpstream covers failures of an external collaborator (asset store
	// reads, payment gateway) outside the upload path.
	KindUpstream
	// KindUnavailable covers an unreachable document store.
	KindUnavailable
	// KindUnauthorized covers a webhook that fails signature verification.
	KindUnauthorized
)

// Error is a tagged application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation constructs a KindValidation error with a user-facing message.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound constructs a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Duplicate constructs a KindDuplicate error.
func Duplicate(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

// Upload wraps a remote store put failure for the named slot.
func Upload(slot string, err error) *Error {
	return &Error{Kind: KindUpload, Message: fmt.Sprintf("failed to upload %s", slot), Err: err}
}

// Upstream wraps a failure from an external collaborator.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// Unavailable wraps a document store connectivity failure.
func Unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Message: "storage unavailable", Err: err}
}

// Unauthorized constructs a KindUnauthorized error.
func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the Kind of err, or KindInternal for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the safe user-facing message for err. Untagged errors get
// a generic message so internals never leak into responses.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }
