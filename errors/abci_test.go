package errors

import (
	"fmt"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrNotFound,
			wantCode: ErrNotFound.code,
			wantLog:  "not found",
		},
		"wrapped registered error": {
			err:      Wrap(ErrState, "closed"),
			wantCode: ErrState.code,
			wantLog:  "closed: invalid state",
		},
		"nil is empty message": {
			err:      nil,
			wantCode: 0,
			wantLog:  "",
		},
		"stdlib error is redacted": {
			err:      fmt.Errorf("secret path /tmp/x"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"panic is redacted": {
			err:      Wrap(ErrPanic, "index out of range"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"stdlib error is exposed in debug": {
			err:      fmt.Errorf("secret path /tmp/x"),
			debug:    true,
			wantCode: internalABCICode,
			wantLog:  "secret path /tmp/x",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic, false); ErrPanic.Is(err) {
		t.Error("panic must be redacted")
	}
	if err := Redact(ErrPanic, true); !ErrPanic.Is(err) {
		t.Error("debug mode must not redact")
	}
	if err := Redact(ErrUnauthorized, false); !ErrUnauthorized.Is(err) {
		t.Error("registered error must not be redacted")
	}
	if err := Redact(fmt.Errorf("disk"), false); err.Error() != internalABCILog {
		t.Errorf("want internal error, got %v", err)
	}
}
