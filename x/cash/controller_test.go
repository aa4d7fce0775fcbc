package cash

import (
	"testing"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/store"
	"github.com/iov-one/stake/weavetest"
	"github.com/iov-one/stake/weavetest/assert"
)

func TestIssueCoins(t *testing.T) {
	db := store.MemStore()
	control := NewController(NewBucket())
	addr := weavetest.NewCondition().Address()

	assert.Nil(t, control.IssueCoins(db, addr, 500))
	assert.Nil(t, control.IssueCoins(db, addr, 250))
	mustBalance(t, control, db, addr, 750)

	err := control.IssueCoins(db, addr, ^uint64(0))
	assert.IsErr(t, errors.ErrOverflow, err)
	mustBalance(t, control, db, addr, 750)
}

func TestMoveCoins(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	carol := weavetest.NewCondition().Address()

	cases := map[string]struct {
		src, dest   stake.Address
		amount      uint64
		wantErr     *errors.Error
		wantBalance map[string]uint64
	}{
		"move part of the funds": {
			src:         alice,
			dest:        bob,
			amount:      300,
			wantBalance: map[string]uint64{"alice": 700, "bob": 300},
		},
		"move everything": {
			src:         alice,
			dest:        bob,
			amount:      1000,
			wantBalance: map[string]uint64{"alice": 0, "bob": 1000},
		},
		"move to self": {
			src:         alice,
			dest:        alice,
			amount:      400,
			wantBalance: map[string]uint64{"alice": 1000},
		},
		"insufficient funds": {
			src:         alice,
			dest:        bob,
			amount:      1001,
			wantErr:     errors.ErrInsufficientAmount,
			wantBalance: map[string]uint64{"alice": 1000, "bob": 0},
		},
		"empty source": {
			src:         carol,
			dest:        bob,
			amount:      1,
			wantErr:     errors.ErrEmpty,
			wantBalance: map[string]uint64{"carol": 0, "bob": 0},
		},
		"zero amount": {
			src:     alice,
			dest:    bob,
			amount:  0,
			wantErr: errors.ErrAmount,
		},
		"invalid destination": {
			src:     alice,
			dest:    stake.Address("short"),
			amount:  1,
			wantErr: errors.ErrInput,
		},
	}

	names := map[string]stake.Address{"alice": alice, "bob": bob, "carol": carol}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			control := NewController(NewBucket())
			assert.Nil(t, control.IssueCoins(db, alice, 1000))

			err := control.MoveCoins(db, tc.src, tc.dest, tc.amount)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
			}
			for name, want := range tc.wantBalance {
				mustBalance(t, control, db, names[name], want)
			}
		})
	}
}

func TestEmptyWalletIsDeleted(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()
	control := NewController(bucket)
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	assert.Nil(t, control.IssueCoins(db, alice, 10))
	assert.Nil(t, control.MoveCoins(db, alice, bob, 10))

	has, err := bucket.Has(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}

func mustBalance(t testing.TB, c Controller, db stake.ReadOnlyKVStore, addr stake.Address, want uint64) {
	t.Helper()
	got, err := c.Balance(db, addr)
	if err != nil {
		t.Fatalf("cannot get balance: %+v", err)
	}
	if got != want {
		t.Fatalf("want %d balance, got %d", want, got)
	}
}
