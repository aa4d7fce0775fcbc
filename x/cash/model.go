package cash

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the balance of a single address. The address is the key
// the wallet is stored under.
type Wallet struct {
	Balance uint64 `json:"balance"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	*w = Wallet{}
	if len(raw) == 0 {
		return nil
	}
	return cdc.UnmarshalBinaryBare(raw, w)
}

// Validate is a noop, any balance is valid.
func (w *Wallet) Validate() error {
	return nil
}

// NewBucket returns a bucket storing wallets by their address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr stake.QueryRouter) {
	NewBucket().Register("wallets", qr)
}
