package cash

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterCodec(cdc)
}

// RegisterCodec registers all messages of this extension under their
// routing path. The stake.Msg interface must already be registered with
// given codec when used to decode transactions.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&SendMsg{}, pathSendMsg, nil)
}
