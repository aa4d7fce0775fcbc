package stake

import (
	"encoding/json"

	"github.com/iov-one/stake/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// Handler processes the messages routed to it, for example taking a bet.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction for the mempool. Writes are discarded
// after the next commit.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction as part of a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around every handler of the application, for example to
// verify signatures or to roll back a failed transaction.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to message paths.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult is the outcome of a successful check. Failures are reported
// as errors.
type CheckResult struct {
	// Data is a machine readable value, for example the address of a new
	// bet.
	Data []byte
	Log  string
	// GasAllocated is the most work the transaction may perform.
	GasAllocated int64
}

// DeliverResult is the outcome of a successful delivery. Failures are
// reported as errors.
type DeliverResult struct {
	Data []byte
	Log  string
	// Tags index the transaction so that clients can search and
	// subscribe, for example to every transaction of a bet.
	Tags []common.KVPair
	// GasUsed is the amount of work the transaction performed
	GasUsed int64
}

// Options is the app_state section of the genesis file. Every extension
// reads its own key.
type Options map[string]json.RawMessage

// ReadOptions decodes the JSON stored under the key into obj. A missing
// key leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "%q options: %s", key, err)
	}
	return nil
}

// Initializer writes the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
