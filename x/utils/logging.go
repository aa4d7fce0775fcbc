package utils

import (
	"time"

	"github.com/iov-one/stake"
)

// Logging writes one entry per transaction with its path and duration.
// Failures are logged as errors. Successful checks go to debug and
// successful deliveries to info.
type Logging struct{}

var _ stake.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx, next stake.Checker) (*stake.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	entry := txEntry{path: stake.GetPath(tx), took: time.Since(start), err: err}
	if err == nil {
		entry.msg = res.Log
	}
	entry.write(ctx, true)
	return res, err
}

func (Logging) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx, next stake.Deliverer) (*stake.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	entry := txEntry{path: stake.GetPath(tx), took: time.Since(start), err: err}
	if err == nil {
		entry.msg = res.Log
	}
	entry.write(ctx, false)
	return res, err
}

type txEntry struct {
	path string
	took time.Duration
	msg  string
	err  error
}

// write emits the entry even when msg is empty.
func (e txEntry) write(ctx stake.Context, check bool) {
	logger := stake.GetLogger(ctx).With("path", e.path, "duration", e.took/time.Microsecond)
	switch {
	case e.err != nil:
		logger.Error(e.msg, "err", e.err)
	case check:
		logger.Debug(e.msg)
	default:
		logger.Info(e.msg)
	}
}
