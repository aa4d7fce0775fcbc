package cash

import (
	"context"
	"testing"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/store"
	"github.com/iov-one/stake/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	perm := weavetest.NewCondition()
	perm2 := weavetest.NewCondition()

	cases := map[string]struct {
		signers    []stake.Condition
		initState  map[string]uint64
		msg        stake.Msg
		checkErr   *errors.Error
		deliverErr *errors.Error
	}{
		"missing amount": {
			msg:        &SendMsg{Source: perm.Address(), Destination: perm2.Address()},
			checkErr:   errors.ErrAmount,
			deliverErr: errors.ErrAmount,
		},
		"missing addresses": {
			msg:        &SendMsg{Amount: 100},
			checkErr:   errors.ErrInput,
			deliverErr: errors.ErrInput,
		},
		"no signature": {
			msg:        &SendMsg{Amount: 100, Source: perm.Address(), Destination: perm2.Address()},
			checkErr:   errors.ErrUnauthorized,
			deliverErr: errors.ErrUnauthorized,
		},
		"sender has no account": {
			signers:    []stake.Condition{perm},
			msg:        &SendMsg{Amount: 100, Source: perm.Address(), Destination: perm2.Address()},
			checkErr:   errors.ErrInsufficientAmount,
			deliverErr: errors.ErrEmpty,
		},
		"sender too poor": {
			signers:    []stake.Condition{perm},
			initState:  map[string]uint64{string(perm.Address()): 50},
			msg:        &SendMsg{Amount: 100, Source: perm.Address(), Destination: perm2.Address()},
			checkErr:   errors.ErrInsufficientAmount,
			deliverErr: errors.ErrInsufficientAmount,
		},
		"sender got cash": {
			signers:   []stake.Condition{perm},
			initState: map[string]uint64{string(perm.Address()): 100},
			msg:       &SendMsg{Amount: 100, Source: perm.Address(), Destination: perm2.Address()},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &weavetest.Auth{Signers: tc.signers}
			controller := NewController(NewBucket())
			h := NewSendHandler(auth, controller)

			db := store.MemStore()
			for addr, amount := range tc.initState {
				require.NoError(t, controller.IssueCoins(db, stake.Address(addr), amount))
			}

			tx := &weavetest.Tx{Msg: tc.msg}
			ctx := context.Background()

			_, err := h.Check(ctx, db, tx)
			if tc.checkErr != nil {
				assert.True(t, tc.checkErr.Is(err), "%+v", err)
			} else {
				assert.NoError(t, err)
			}
			_, err = h.Deliver(ctx, db, tx)
			if tc.deliverErr != nil {
				assert.True(t, tc.deliverErr.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)

			got, err := controller.Balance(db, perm2.Address())
			require.NoError(t, err)
			assert.Equal(t, uint64(100), got)
		})
	}
}

func TestQueryWallets(t *testing.T) {
	db := store.MemStore()
	controller := NewController(NewBucket())
	addr := weavetest.NewCondition().Address()
	require.NoError(t, controller.IssueCoins(db, addr, 42))

	qr := stake.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/wallets")
	require.NotNil(t, h)

	res, err := h.Query(db, stake.KeyQueryMod, addr)
	require.NoError(t, err)
	require.Len(t, res, 1)

	var w Wallet
	require.NoError(t, w.Unmarshal(res[0].Value))
	assert.Equal(t, uint64(42), w.Balance)
}
