package errors

import "strings"

// Append combines all given errors into a single error instance. Nil errors
// are ignored. If no error is left, nil is returned. A single error is
// returned as it is.
//
// The returned multi error reports the ABCI code of its first error and
// matches any of its errors when tested with Error.Is.
func Append(errs ...error) error {
	var flat multiErr
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			flat = append(flat, m...)
			continue
		}
		flat = append(flat, e)
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	}
	return flat
}

type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

// contains returns true if any of the collected errors is of the given kind.
func (m multiErr) contains(kind *Error) bool {
	for _, e := range m {
		if kind.Is(e) {
			return true
		}
	}
	return false
}
