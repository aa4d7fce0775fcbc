package bet

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterCodec(cdc)
}

// RegisterCodec registers all messages of this extension under their
// routing path.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&MakeMsg{}, pathMakeMsg, nil)
	c.RegisterConcrete(&CancelMsg{}, pathCancelMsg, nil)
	c.RegisterConcrete(&TakeMsg{}, pathTakeMsg, nil)
	c.RegisterConcrete(&DeclineMsg{}, pathDeclineMsg, nil)
	c.RegisterConcrete(&SettleMsg{}, pathSettleMsg, nil)
	c.RegisterConcrete(&ReclaimMsg{}, pathReclaimMsg, nil)
}
