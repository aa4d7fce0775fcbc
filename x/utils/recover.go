package utils

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
)

// Recovery converts a panic raised further down the chain into an
// ErrPanic error, so that a single broken transaction cannot halt the
// node. Every recovered panic is logged together with the message path.
type Recovery struct{}

var _ stake.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx, next stake.Checker) (_ *stake.CheckResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx, next stake.Deliverer) (_ *stake.DeliverResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Deliver(ctx, db, tx)
}

// recoverTx must be deferred directly for recover to take effect.
func recoverTx(ctx stake.Context, tx stake.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	stake.GetLogger(ctx).Error("panic recovered", "path", stake.GetPath(tx), "panic", r)
}
