package bet

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/orm"
	"github.com/iov-one/stake/x"
	"github.com/iov-one/stake/x/cash"
)

// Controller exposes the bet records to other extensions and clients.
type Controller struct {
	bucket orm.ModelBucket
	bank   cash.Controller
}

// NewController returns a controller reading records from given bucket and
// vault balances through the bank.
func NewController(bucket orm.ModelBucket, bank cash.Controller) Controller {
	return Controller{bucket: bucket, bank: bank}
}

// State returns the state of the record stored under betID. An address that
// does not resolve to a record is reported as closed.
func (c Controller) State(db stake.ReadOnlyKVStore, betID stake.Address) (State, error) {
	var b Bet
	switch err := c.bucket.One(db, betID, &b); {
	case err == nil:
		return b.State, nil
	case errors.ErrNotFound.Is(err):
		return StateClosed, nil
	default:
		return 0, err
	}
}

// VaultBalance returns the amount held by the vault of given record.
func (c Controller) VaultBalance(db stake.ReadOnlyKVStore, betID stake.Address) (uint64, error) {
	_, vault, err := c.load(db, betID)
	if err != nil {
		return 0, err
	}
	return vault.balance(db)
}

// load returns the record stored under betID after checking that both the
// record and its vault re-derive from the stored terms.
func (c Controller) load(db stake.ReadOnlyKVStore, betID stake.Address) (*Bet, *vaultAuthority, error) {
	var b Bet
	if err := c.bucket.One(db, betID, &b); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, nil, errors.Wrapf(ErrRecordNotFound, "bet %s", betID)
		}
		return nil, nil, errors.Wrap(err, "cannot load bet")
	}

	terms := CanonicalTerms(b.Maker, b.Opponent, b.Judge, b.Description)
	cond := func(salt uint32) stake.Condition { return BetCondition(terms, salt) }
	if !verifySalt(cond, b.RecordSalt, betID) {
		return nil, nil, errors.Wrap(ErrRecordNotFound, "record does not derive from its terms")
	}
	vault, err := newVaultAuthority(c.bank, betID, &b)
	if err != nil {
		return nil, nil, err
	}
	return &b, vault, nil
}

// loadLive is load followed by a check that the vault holds exactly the
// stakes the record state accounts for. Every handler that moves vault
// funds goes through it.
func (c Controller) loadLive(db stake.ReadOnlyKVStore, betID stake.Address) (*Bet, *vaultAuthority, error) {
	b, vault, err := c.load(db, betID)
	if err != nil {
		return nil, nil, err
	}
	want, err := held(b)
	if err != nil {
		return nil, nil, err
	}
	if err := vault.expect(db, want); err != nil {
		return nil, nil, errors.Wrapf(err, "bet %s", betID)
	}
	return b, vault, nil
}

// closeRecord returns the record collateral to recipient and deletes the
// record. Both happen or neither does.
func (c Controller) closeRecord(db stake.KVStore, betID stake.Address, b *Bet, recipient stake.Address) error {
	if b.Collateral > 0 {
		if err := c.bank.MoveCoins(db, betID, recipient, b.Collateral); err != nil {
			return errors.Wrap(err, "cannot return collateral")
		}
	}
	if err := c.bucket.Delete(db, betID); err != nil {
		return errors.Wrap(err, "cannot delete bet")
	}
	return nil
}

// authorize fails unless the expected party signed the transaction.
func authorize(ctx stake.Context, auth x.Authenticator, expected stake.Address, role string) error {
	if !auth.HasAddress(ctx, expected) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature missing", role)
	}
	return nil
}
