package stake

import (
	"encoding/json"
	"time"

	"github.com/iov-one/stake/errors"
)

// UnixTime is a POSIX timestamp in seconds. Bet deadlines are stored in
// this form. Zero means unset.
type UnixTime int64

// AsUnixTime truncates t to whole seconds.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add shifts t by d, dropping any sub-second part of d.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrapf(errors.ErrState, "negative unix time %d", int64(t))
	}
	return nil
}

// UnmarshalJSON accepts either a number of seconds or an RFC 3339 string.
// The string form is meant for hand-written genesis files.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var secs int64
	if json.Unmarshal(raw, &secs) == nil {
		*t = UnixTime(secs)
		return t.Validate()
	}
	var ts time.Time
	if json.Unmarshal(raw, &ts) == nil {
		*t = AsUnixTime(ts)
		return t.Validate()
	}
	return errors.Wrapf(errors.ErrInput, "cannot parse time %s", raw)
}

func (t UnixTime) String() string {
	return t.Time().UTC().Format(time.RFC3339)
}
