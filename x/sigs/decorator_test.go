package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/crypto"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/store"
	"github.com/iov-one/stake/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	const chainID = "bet-chain"
	ctx := stake.WithChainID(context.Background(), chainID)
	maker := crypto.GenPrivKeyEd25519()
	makerCond := []stake.Condition{maker.PublicKey().Condition()}

	type call func(stake.Decorator, stake.KVStore, stake.Tx, *SigCheckHandler) error
	calls := map[string]call{
		"check": func(d stake.Decorator, db stake.KVStore, tx stake.Tx, h *SigCheckHandler) error {
			_, err := d.Check(ctx, db, tx, h)
			return err
		},
		"deliver": func(d stake.Decorator, db stake.KVStore, tx stake.Tx, h *SigCheckHandler) error {
			_, err := d.Deliver(ctx, db, tx, h)
			return err
		},
	}

	for name, run := range calls {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			h := new(SigCheckHandler)
			tx := NewStdTx([]byte("bet/make"))
			sig0, err := SignTx(maker, tx, chainID, 0)
			require.NoError(t, err)
			sig1, err := SignTx(maker, tx, chainID, 1)
			require.NoError(t, err)

			tx.Signatures = nil
			err = run(NewDecorator(), db, tx, h)
			assert.True(t, errors.ErrUnauthorized.Is(err))

			tx.Signatures = []*StdSignature{sig0}
			require.NoError(t, run(NewDecorator(), db, tx, h))
			assert.Equal(t, makerCond, h.Signers)

			// Sequence 0 was used, the same signature is a replay.
			err = run(NewDecorator(), db, tx, h)
			assert.True(t, ErrInvalidSequence.Is(err))

			tx.Signatures = nil
			require.NoError(t, run(NewDecorator().AllowMissingSigs(), db, tx, h))
			assert.Equal(t, []stake.Condition{}, h.Signers)

			tx.Signatures = []*StdSignature{sig1}
			require.NoError(t, run(NewDecorator().AllowMissingSigs(), db, tx, h))
			assert.Equal(t, makerCond, h.Signers)
		})
	}
}

func TestDecoratorRejectsRepeatedSigner(t *testing.T) {
	const chainID = "bet-chain"
	ctx := stake.WithChainID(context.Background(), chainID)
	db := store.MemStore()
	judge := crypto.GenPrivKeyEd25519()

	tx := NewStdTx([]byte("bet/settle"))
	sig0, err := SignTx(judge, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(judge, tx, chainID, 1)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig0, sig1}

	h := new(SigCheckHandler)
	_, err = NewDecorator().Deliver(ctx, db, tx, h)
	assert.True(t, errors.ErrDuplicate.Is(err))

	// No sequence was consumed.
	seq, err := NextSequence(db, judge.PublicKey())
	require.NoError(t, err)
	assert.EqualValues(t, 0, seq)
}

func TestDecoratorPassesUnsignedTx(t *testing.T) {
	ctx := stake.WithChainID(context.Background(), "bet-chain")
	h := new(SigCheckHandler)
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bet/take"}}

	_, err := NewDecorator().Deliver(ctx, store.MemStore(), tx, h)
	require.NoError(t, err)
	assert.Nil(t, h.Signers)
}

func TestDecoratorChargesGas(t *testing.T) {
	const chainID = "gas-chain"
	ctx := stake.WithChainID(context.Background(), chainID)
	opponent := crypto.GenPrivKeyEd25519()
	tx := NewStdTx([]byte("bet/take"))
	sig, err := SignTx(opponent, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig}

	res, err := NewDecorator().Check(ctx, store.MemStore(), tx, new(SigCheckHandler))
	require.NoError(t, err)
	assert.EqualValues(t, signatureVerifyCost, res.GasAllocated)
}
