package services

import (
	"errors"
	"fmt"

	"github.com/blogem/lanauthgate/repositories"
)

// Kind classifies a service failure for the transport layer
type Kind string

// Error kinds
const (
	KindUnauthenticated Kind = "unauthenticated"
	KindValidation      Kind = "validation"
	KindConflict        Kind = "conflict"
	KindNotFound        Kind = "not_found"
	KindInternal        Kind = "internal"
)

// Error is a classified service failure. Message is safe to show to callers;
// Err carries the underlying cause for server-side logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a service error of the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// fromRepository classifies a repository error
func fromRepository(err error, notFoundMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return newError(KindNotFound, notFoundMessage, err)
	case errors.Is(err, repositories.ErrDuplicate):
		return newError(KindConflict, "API path already exists", err)
	default:
		return newError(KindInternal, "An internal error occurred", err)
	}
}
