package screenshot

import (
	"errors"
	"fmt"
)

// Failure kinds for capture, validation, and persistence operations.
// Every error returned by this package wraps exactly one of these
// sentinels, so callers can match narrowly with errors.Is or broadly
// with errors.As against *Error.
var (
	ErrPlatformNotSupported = errors.New("platform not supported")
	ErrCaptureFailed        = errors.New("capture failed")
	ErrInvalidRegion        = errors.New("invalid region")
	ErrSaveFailed           = errors.New("save failed")
)

// Error carries the failure kind, the originating operation, and the
// underlying cause when one exists.
type Error struct {
	Kind    error
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := e.Message
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Is reports whether target matches this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsDomain reports whether err belongs to this package's error family.
func IsDomain(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

func newErrorf(kind error, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

func wrapErrorf(kind error, op string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...), Cause: cause}
}
