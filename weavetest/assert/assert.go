// Package assert holds the handful of assertions every test in this
// repository needs. Richer checks use testify directly.
package assert

import (
	"reflect"

	"github.com/iov-one/stake/errors"
	"github.com/stretchr/testify/assert"
)

// Tester is the part of testing.TB used by the assertions.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails unless the value is nil or a nil pointer, slice, map, channel,
// function or interface.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of errors that carry one.
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails unless both values are of the same type and deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !assert.ObjectsAreEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	if didPanic(fn) {
		return
	}
	t.Fatal("panic expected")
}

func didPanic(fn func()) (panicked bool) {
	defer func() {
		panicked = recover() != nil
	}()
	fn()
	return false
}

// IsErr fails unless got is want or wraps it.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	code, _ := errors.ABCIInfo(got, false)
	t.Fatalf("want %q, got code %d: %+v", want, code, got)
}
