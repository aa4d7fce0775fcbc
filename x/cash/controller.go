package cash

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/orm"
)

// Controller is the functionality needed by other extensions to move
// funds around.
type Controller interface {
	// Balance returns the amount held by given address. Unknown
	// addresses hold nothing.
	Balance(db stake.ReadOnlyKVStore, addr stake.Address) (uint64, error)

	// MoveCoins moves the given amount from src to dest.
	// If src doesn't exist, or doesn't have sufficient
	// coins, it fails.
	MoveCoins(db stake.KVStore, src, dest stake.Address, amount uint64) error

	// IssueCoins attempts to add the given amount of coins to
	// the destination address. Fails if it overflows the wallet.
	IssueCoins(db stake.KVStore, dest stake.Address, amount uint64) error
}

// BaseController is a simple implementation of the Controller.
// Empty wallets are removed from the store.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given wallet bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db stake.ReadOnlyKVStore, addr stake.Address) (uint64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return w.Balance, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

func (c BaseController) MoveCoins(db stake.KVStore, src, dest stake.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	have, err := c.Balance(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if have == 0 {
		return errors.Wrapf(errors.ErrEmpty, "account %s", src)
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "account %s has %d, needs %d", src, have, amount)
	}
	if err := c.store(db, src, have-amount); err != nil {
		return err
	}
	return c.IssueCoins(db, dest, amount)
}

func (c BaseController) IssueCoins(db stake.KVStore, dest stake.Address, amount uint64) error {
	have, err := c.Balance(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	total := have + amount
	if total < have {
		return errors.Wrapf(errors.ErrOverflow, "account %s", dest)
	}
	return c.store(db, dest, total)
}

func (c BaseController) store(db stake.KVStore, addr stake.Address, balance uint64) error {
	if balance == 0 {
		if err := c.bucket.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return errors.Wrap(err, "cannot delete wallet")
		}
		return nil
	}
	if err := c.bucket.Put(db, addr, &Wallet{Balance: balance}); err != nil {
		return errors.Wrap(err, "cannot save wallet")
	}
	return nil
}
