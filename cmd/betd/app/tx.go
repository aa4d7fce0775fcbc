package app

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/x/sigs"
)

// Tx is the betd transaction: one message and the signatures that
// authorize it.
type Tx struct {
	Msg        stake.Msg
	Signatures []*sigs.StdSignature
}

var (
	_ stake.Tx         = (*Tx)(nil)
	_ sigs.SignedTx    = (*Tx)(nil)
	_ stake.Persistent = (*Tx)(nil)
)

// TxDecoder reads a Tx from its amino encoding.
func TxDecoder(raw []byte) (stake.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (tx *Tx) GetMsg() (stake.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "missing message")
	}
	return tx.Msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes encodes the transaction without its signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "encode tx: %s", err)
	}
	return raw, nil
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	if err := cdc.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrapf(errors.ErrInput, "decode tx: %s", err)
	}
	return nil
}
