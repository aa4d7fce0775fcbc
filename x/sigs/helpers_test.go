package sigs

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/weavetest"
)

// StdTx is a signed transaction mock. Its sign bytes are the payload.
type StdTx struct {
	weavetest.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ stake.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{
		Tx:      weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/sigs"}},
		Payload: payload,
	}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []stake.Condition
}

var _ stake.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &stake.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &stake.DeliverResult{}, nil
}
