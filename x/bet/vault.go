package bet

import (
	"math"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/x/cash"
)

// vaultAuthority is the only way to move funds in and out of a vault. It
// can be built only from a loaded record whose vault derivation proof
// checks out.
type vaultAuthority struct {
	bank    cash.Controller
	address stake.Address
}

func newVaultAuthority(bank cash.Controller, betID stake.Address, b *Bet) (*vaultAuthority, error) {
	cond := func(salt uint32) stake.Condition { return VaultCondition(betID, salt) }
	if !verifySalt(cond, b.VaultSalt, b.Vault) {
		return nil, errors.Wrap(ErrRecordNotFound, "vault does not derive from the record")
	}
	return &vaultAuthority{bank: bank, address: b.Vault}, nil
}

func (v *vaultAuthority) balance(db stake.ReadOnlyKVStore) (uint64, error) {
	return v.bank.Balance(db, v.address)
}

func (v *vaultAuthority) deposit(db stake.KVStore, from stake.Address, amount uint64) error {
	return v.bank.MoveCoins(db, from, v.address, amount)
}

// held returns what the vault of b must hold: nothing before the record
// exists, one stake while Open and both stakes once Accepted.
func held(b *Bet) (uint64, error) {
	switch b.State {
	case StateOpen:
		return b.Amount, nil
	case StateAccepted:
		if b.Amount > math.MaxUint64/2 {
			return 0, errors.Wrapf(errors.ErrOverflow, "stake %d", b.Amount)
		}
		return 2 * b.Amount, nil
	default:
		return 0, nil
	}
}

// expect fails unless the vault holds exactly want. Funds sent to the
// vault address from outside break the match.
func (v *vaultAuthority) expect(db stake.ReadOnlyKVStore, want uint64) error {
	have, err := v.balance(db)
	if err != nil {
		return err
	}
	if have != want {
		return errors.Wrapf(ErrInsufficientVaultBalance, "vault holds %d, expected %d", have, want)
	}
	return nil
}

// release moves amount out of the vault. It fails if the vault holds less.
func (v *vaultAuthority) release(db stake.KVStore, to stake.Address, amount uint64) error {
	have, err := v.balance(db)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(ErrInsufficientVaultBalance, "vault holds %d, requested %d", have, amount)
	}
	if amount == 0 {
		return nil
	}
	return v.bank.MoveCoins(db, v.address, to, amount)
}

// releaseAll moves the whole vault balance.
func (v *vaultAuthority) releaseAll(db stake.KVStore, to stake.Address) (uint64, error) {
	have, err := v.balance(db)
	if err != nil {
		return 0, err
	}
	return have, v.release(db, to, have)
}
