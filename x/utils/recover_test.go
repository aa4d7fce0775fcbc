package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/store"
	"github.com/iov-one/stake/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	h := weavetest.PanicHandler{Msg: "boom"}
	r := NewRecovery()
	var out bytes.Buffer
	ctx := stake.WithLogger(context.Background(), log.NewTMLogger(&out))
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bet/settle"}}

	assert.Panics(t, func() { _, _ = h.Check(ctx, db, tx) })
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, db, tx) })

	_, err := r.Check(ctx, db, tx, h)
	require.Error(t, err)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "boom")

	_, err = r.Deliver(ctx, db, tx, h)
	require.Error(t, err)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Contains(t, out.String(), "panic recovered")
	assert.Contains(t, out.String(), "bet/settle")
}

func TestRecoveryPassesResults(t *testing.T) {
	h := &weavetest.Handler{DeliverResult: stake.DeliverResult{Data: []byte("ok")}}
	ctx := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bet/take"}}

	res, err := NewRecovery().Deliver(ctx, db, tx, h)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), res.Data)

	_, err = NewRecovery().Check(ctx, db, tx, &weavetest.Handler{CheckErr: errors.ErrUnauthorized})
	assert.True(t, errors.ErrUnauthorized.Is(err))
}
