package dablenutil

import (
	"errors"
	"fmt"
)

// Kind classifies an [Error].
type Kind int

const (
	// KindIO covers filesystem and compression failures.
	KindIO Kind = iota
	// KindLogging covers failures to register the process-wide logger.
	KindLogging
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindLogging:
		return "logging"
	default:
		return "unknown"
	}
}

// ErrLoggerAlreadyInstalled is the cause of every KindLogging error: the
// process-wide logger can only be installed once.
var ErrLoggerAlreadyInstalled = errors.New("logger already installed")

// Error is the error type returned by this module.
//
// Example:
//
//	err := dablenutil.IOError("create archive", fs.ErrPermission)
//	fmt.Println(err) // "io error: create archive: permission denied"
type Error struct {
	Kind Kind
	// Op names the step that failed, e.g. "create archive".
	Op  string
	Err error
}

// IOError wraps a filesystem or compression failure.
func IOError(op string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Err: err}
}

// LoggingError wraps a logger registration failure.
func LoggingError(err error) *Error {
	return &Error{Kind: KindLogging, Err: err}
}

// Error returns the formatted error message. The cause's message is
// preserved verbatim at the end.
func (e *Error) Error() string {
	prefix := e.Kind.String() + " error"
	if e.Op != "" {
		prefix = fmt.Sprintf("%s: %s", prefix, e.Op)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	return prefix
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. Causes are
// matched through Unwrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// IsKind reports whether err is, or wraps, an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
