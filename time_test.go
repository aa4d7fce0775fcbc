package stake

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/stake/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantErr  *errors.Error
		wantTime UnixTime
	}{
		"zero value": {
			raw:      "0",
			wantTime: 0,
		},
		"a number": {
			raw:      "1551448800",
			wantTime: 1551448800,
		},
		"a string time": {
			raw:      `"2019-03-01T14:00:00Z"`,
			wantTime: AsUnixTime(time.Date(2019, 3, 1, 14, 0, 0, 0, time.UTC)),
		},
		"negative number": {
			raw:     "-4",
			wantErr: errors.ErrState,
		},
		"invalid format": {
			raw:     `"yesterday"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			if err := json.Unmarshal([]byte(tc.raw), &got); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && got != tc.wantTime {
				t.Fatalf("want %d, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	base := UnixTime(1000)
	if got := base.Add(90 * time.Second); got != 1090 {
		t.Fatalf("want 1090, got %d", got)
	}
	if got := base.Add(-time.Minute); got != 940 {
		t.Fatalf("want 940, got %d", got)
	}
	if base.IsZero() || !UnixTime(0).IsZero() {
		t.Fatal("invalid zero check")
	}
}
