package cash

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/x"
)

// RegisterRoutes binds the cash handlers to the router.
func RegisterRoutes(r stake.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// SendHandler moves funds between two accounts on behalf of the owner of
// the source account. Bet vaults cannot be drained through it, because no
// key can sign for a derived vault address.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ stake.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check rejects the transfer early if the source cannot cover it, so an
// underfunded send never reaches a block.
func (h SendHandler) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	balance, err := h.control.Balance(db, msg.Source)
	if err != nil {
		return nil, err
	}
	if balance < msg.Amount {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, sending %d", balance, msg.Amount)
	}
	return &stake.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	stake.GetLogger(ctx).Debug("Funds sent",
		"src", msg.Source,
		"dest", msg.Destination,
		"amount", msg.Amount)
	return &stake.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx stake.Context, tx stake.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := stake.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}
