package app

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/x/bet"
	"github.com/iov-one/stake/x/cash"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterCodec(cdc)
}

// RegisterCodec registers every message that can be carried by a
// transaction of this application.
func RegisterCodec(c *amino.Codec) {
	c.RegisterInterface((*stake.Msg)(nil), nil)
	cash.RegisterCodec(c)
	bet.RegisterCodec(c)
}
