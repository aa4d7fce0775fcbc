package bet

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/orm"
)

// BucketName is where we store the bet records
const BucketName = "bet"

// State of a bet record.
type State uint32

const (
	StateOpen State = iota + 1
	StateAccepted
	// StateClosed is never stored. It is reported for records that were
	// deleted or never existed.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateAccepted:
		return "accepted"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Bet is the record of a single proposition. It is stored under the
// address derived from its terms.
type Bet struct {
	Maker       stake.Address `json:"maker"`
	Opponent    stake.Address `json:"opponent"`
	Judge       stake.Address `json:"judge"`
	Amount      uint64        `json:"amount"`
	Description string        `json:"description"`
	State       State         `json:"state"`
	// RecordSalt proves the derivation of the record address.
	RecordSalt uint32 `json:"record_salt"`
	// VaultSalt proves the derivation of Vault.
	VaultSalt uint32        `json:"vault_salt"`
	Vault     stake.Address `json:"vault"`
	// Collateral is held by the record address until it is closed.
	Collateral uint64 `json:"collateral"`
	// Deadline is optional. Once passed, the players can reclaim their
	// stakes.
	Deadline stake.UnixTime `json:"deadline,omitempty"`
}

var _ orm.Model = (*Bet)(nil)

func (b *Bet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(b)
}

func (b *Bet) Unmarshal(raw []byte) error {
	*b = Bet{}
	if len(raw) == 0 {
		return nil
	}
	return cdc.UnmarshalBinaryBare(raw, b)
}

// Deposited returns true once both stakes are in the vault.
func (b *Bet) Deposited() bool {
	return b.State == StateAccepted
}

// Validate ensures the record is consistent. It does not verify the
// derivation proofs.
func (b *Bet) Validate() error {
	var err error
	err = errors.Append(err, errors.Wrap(b.Maker.Validate(), "maker"))
	err = errors.Append(err, errors.Wrap(b.Opponent.Validate(), "opponent"))
	err = errors.Append(err, errors.Wrap(b.Judge.Validate(), "judge"))
	err = errors.Append(err, errors.Wrap(b.Vault.Validate(), "vault"))
	if b.Maker.Equals(b.Opponent) {
		err = errors.Append(err, errors.Wrap(errors.ErrModel, "maker cannot be the opponent"))
	}
	if b.Amount == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "non-positive amount"))
	}
	if n := len(b.Description); n == 0 || n > maxDescriptionLength {
		err = errors.Append(err, errors.Wrapf(errors.ErrModel, "description length %d", n))
	}
	if b.State != StateOpen && b.State != StateAccepted {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "cannot store %s bet", b.State))
	}
	if b.RecordSalt > maxSalt || b.VaultSalt > maxSalt {
		err = errors.Append(err, errors.Wrap(errors.ErrModel, "salt out of range"))
	}
	return err
}

// NewBucket returns a bucket storing bets by their derived address, indexed
// by every party.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Bet{},
		orm.WithIndex("maker", partyIndexer(func(b *Bet) stake.Address { return b.Maker }), false),
		orm.WithIndex("opponent", partyIndexer(func(b *Bet) stake.Address { return b.Opponent }), false),
		orm.WithIndex("judge", partyIndexer(func(b *Bet) stake.Address { return b.Judge }), false),
	)
}

func partyIndexer(party func(*Bet) stake.Address) orm.MultiKeyIndexer {
	return func(m orm.Model) ([][]byte, error) {
		b, ok := m.(*Bet)
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "%T", m)
		}
		return [][]byte{party(b)}, nil
	}
}

// RegisterQuery will register this bucket as "/bets"
func RegisterQuery(qr stake.QueryRouter) {
	NewBucket().Register("bets", qr)
}
