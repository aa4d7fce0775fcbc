package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Codes below 100 are reserved for
// this package.
var (
	// ErrUnauthorized means the transaction lacks a required signature.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg means a message failed validation.
	ErrMsg = Register(4, "invalid message")

	// ErrModel means a stored entity failed validation.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate means a unique key or index is already taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman signals a programming mistake.
	ErrHuman = Register(7, "coding error")

	ErrEmpty = Register(9, "value is empty")

	// ErrState means the entity does not allow the requested transition.
	ErrState = Register(10, "invalid state")

	ErrType = Register(11, "invalid type")

	// ErrInsufficientAmount means an account or vault cannot cover a
	// transfer.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	ErrAmount = Register(13, "invalid amount")

	ErrInput = Register(14, "invalid input")

	// ErrExpired means a deadline has passed.
	ErrExpired = Register(15, "expired")

	// ErrOverflow means a computation exceeded the numeric range.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	ErrDatabase = Register(17, "database error")

	// ErrPanic is only produced by Recover. Its details are redacted
	// before leaving the node.
	ErrPanic = Register(111222, "panic")
)

// Register declares a new root error. Each code can be registered once,
// reusing a code panics. Call it from package level var blocks only.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already taken by %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// registry maps codes to their root error. Code 1 is kept for errors that
// were never registered.
var registry = map[uint32]*Error{
	1: nil,
}

// Error is a root error carrying an ABCI code. Errors returned at runtime
// wrap one of them so that Is and ABCIInfo can classify them.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is reports whether err is kind or wraps it.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == kind {
			return true
		}
		if m, ok := err.(multiErr); ok {
			return m.contains(kind)
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds description to err. A stack trace is attached on the innermost
// wrap. Wrapping nil returns nil so the result of a call can be wrapped
// unconditionally.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the innermost stack trace for %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.msg, e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

// stackTrace returns the first stack trace found along the cause chain.
func stackTrace(err error) errors.StackTrace {
	type tracer interface {
		StackTrace() errors.StackTrace
	}
	for err != nil {
		if st, ok := err.(tracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
