package sigs

import (
	"testing"

	"github.com/iov-one/stake/crypto"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDataSequence(t *testing.T) {
	u := &UserData{Pubkey: crypto.GenPrivKeyEd25519().PublicKey()}
	require.NoError(t, u.CheckAndIncrementSequence(0))
	assert.EqualValues(t, 1, u.Sequence)

	err := u.CheckAndIncrementSequence(0)
	assert.True(t, ErrInvalidSequence.Is(err))

	u.Sequence = maxSequenceValue
	err = u.CheckAndIncrementSequence(maxSequenceValue)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestUserDataValidate(t *testing.T) {
	assert.NoError(t, (&UserData{}).Validate())
	assert.True(t, ErrInvalidSequence.Is((&UserData{Sequence: -1}).Validate()))
	assert.True(t, ErrInvalidSequence.Is((&UserData{Sequence: 3}).Validate()))
}

func TestUserDataPersistence(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	u, err := getOrCreate(db, b, pub)
	require.NoError(t, err)
	assert.EqualValues(t, 0, u.Sequence)

	u.Sequence = 7
	require.NoError(t, b.Put(db, pub.Address(), u))

	var got UserData
	require.NoError(t, b.One(db, pub.Address(), &got))
	assert.Equal(t, u, &got)
}
