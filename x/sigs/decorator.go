/*
Package sigs authenticates transactions by their ed25519 signatures.

Every signature commits to the chain ID and to the sequence of its signer,
so a transaction can be neither replayed nor moved to another chain. The
verified signers are exposed to handlers through Authenticate.
*/
package sigs

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
)

// signatureVerifyCost is the gas charged per verified signature.
const signatureVerifyCost = 500

// RegisterQuery exposes the signer accounts under "/auth".
func RegisterQuery(qr stake.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and passes the signers
// down the chain. Transactions that are not a SignedTx pass unchanged.
type Decorator struct {
	allowMissingSigs bool
}

var _ stake.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects unsigned transactions.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy of the decorator that lets a signed
// transaction without any signature through with no signers.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx, next stake.Checker) (*stake.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(n * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx, next stake.Deliverer) (*stake.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate returns the context carrying the verified signers together
// with their count.
func (d Decorator) authenticate(ctx stake.Context, db stake.KVStore, tx stake.Tx) (stake.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, stx, stake.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
