package utils

import (
	"context"
	"testing"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/store"
	"github.com/iov-one/stake/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

type refMsg struct {
	weavetest.Msg
	ref stake.Address
}

func (m refMsg) Reference() stake.Address { return m.ref }

func TestActionTagger(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	betID := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg  stake.Msg
		want []common.KVPair
	}{
		"plain message": {
			msg: &weavetest.Msg{RoutePath: "cash/send"},
			want: []common.KVPair{
				{Key: []byte(ActionKey), Value: []byte("cash/send")},
				{Key: []byte(ModuleKey), Value: []byte("cash")},
			},
		},
		"message referencing a bet": {
			msg: &refMsg{Msg: weavetest.Msg{RoutePath: "bet/settle"}, ref: betID},
			want: []common.KVPair{
				{Key: []byte(ActionKey), Value: []byte("bet/settle")},
				{Key: []byte(ModuleKey), Value: []byte("bet")},
				{Key: []byte(RefKey), Value: []byte(betID.String())},
			},
		},
		"empty reference is not tagged": {
			msg: &refMsg{Msg: weavetest.Msg{RoutePath: "bet/take"}},
			want: []common.KVPair{
				{Key: []byte(ActionKey), Value: []byte("bet/take")},
				{Key: []byte(ModuleKey), Value: []byte("bet")},
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tx := &weavetest.Tx{Msg: tc.msg}
			res, err := NewActionTagger().Deliver(ctx, db, tx, &weavetest.Handler{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Tags)
		})
	}
}

func TestActionTaggerFailures(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()

	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bet/settle"}}
	res, err := NewActionTagger().Deliver(ctx, db, tx, &weavetest.Handler{DeliverErr: errors.ErrState})
	assert.True(t, errors.ErrState.Is(err))
	assert.Nil(t, res)

	broken := &weavetest.Tx{Err: errors.ErrType}
	h := &weavetest.Handler{}
	_, err = NewActionTagger().Deliver(ctx, db, broken, h)
	assert.True(t, errors.ErrType.Is(err))
	assert.Equal(t, 0, h.CallCount())
}
