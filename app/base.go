package app

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a complete abci.Application. Transactions are decoded and
// passed to the handler, usually a decorator chain closed by a Router.
type BaseApp struct {
	*StoreApp
	decoder stake.TxDecoder
	handler stake.Handler
	// debug includes internal error details in responses.
	debug bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decoder stake.TxDecoder, handler stake.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx executes the transaction against the deliver store. Its writes
// are committed with the block.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	res, err := b.deliver(raw)
	b.countDelivered(err)
	return DeliverOrError(res, err, b.debug)
}

func (b BaseApp) deliver(raw []byte) (*stake.DeliverResult, error) {
	tx, err := b.decode(raw)
	if err != nil {
		return nil, err
	}
	ctx := stake.WithLogInfo(b.BlockContext(), "call", "deliver_tx", "path", stake.GetPath(tx))
	return b.handler.Deliver(ctx, b.DeliverStore(), tx)
}

// CheckTx validates the transaction for the mempool. Its writes are
// discarded on the next commit.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return CheckTxError(err, b.debug)
	}
	ctx := stake.WithLogInfo(b.BlockContext(), "call", "check_tx", "path", stake.GetPath(tx))
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return CheckOrError(res, err, b.debug)
}

// decode never panics. Malformed input is reported as an error.
func (b BaseApp) decode(raw []byte) (tx stake.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
