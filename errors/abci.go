package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode is the ABCI code of a successful response.
	SuccessABCICode = 0

	// Errors that were not created from a registered root error are
	// reported with this code and a generic message, so that no internal
	// detail leaks to a client.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for the error.
//
// Outside of debug mode errors without a registered code and recovered
// panics are redacted to a generic internal error. In debug mode the log
// carries the full message together with the stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	err = Redact(err, debug)
	if debug {
		return abciCode(err), fmt.Sprintf("%+v", err)
	}
	return abciCode(err), err.Error()
}

// Redact replaces errors without a registered code, and recovered panics,
// with a generic internal error. It returns the error unchanged in debug
// mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

// abciCode returns the code of the first error in the cause chain that
// carries one.
func abciCode(err error) uint32 {
	type coder interface {
		ABCICode() uint32
	}
	if errIsNil(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
}

// errIsNil reports whether the error is nil, including a nil pointer
// wrapped in the error interface.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	val := reflect.ValueOf(err)
	return val.Kind() == reflect.Ptr && val.IsNil()
}
