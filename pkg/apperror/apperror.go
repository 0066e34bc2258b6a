package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the failure categories the
// presentation layer is expected to distinguish. Anything the store
// reports that does not match a known kind is UnknownRemote.
type Kind int

const (
	UnknownRemote Kind = iota
	Unauthenticated
	AccountExists
	InvalidCredentials
	RateLimited
	ConflictingSession
	Validation
	Upload
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case AccountExists:
		return "account_exists"
	case InvalidCredentials:
		return "invalid_credentials"
	case RateLimited:
		return "rate_limited"
	case ConflictingSession:
		return "conflicting_session"
	case Validation:
		return "validation"
	case Upload:
		return "upload"
	case NotFound:
		return "not_found"
	default:
		return "unknown_remote"
	}
}

// Error is the single error type crossing the store boundary. Raw
// transport errors are inspected once, where they occur, and mapped
// into an Error; callers above that point match on Kind only.
type Error struct {
	Kind     Kind
	Op       string
	Resource string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match two apperrors by kind, so packages can export
// sentinel values like `var ErrUnauthenticated = apperror.New(...)`.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New creates an Error with the given kind and operation context.
func New(kind Kind, op, resource, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Resource: resource, Message: message, Err: err}
}

// Newf is New with a formatted message and no cause.
func Newf(kind Kind, op, resource, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Resource: resource, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from err, or UnknownRemote when err is not
// (or does not wrap) an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UnknownRemote
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
