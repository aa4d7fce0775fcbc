package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/weavetest"
	"github.com/iov-one/stake/weavetest/assert"
	"github.com/iov-one/stake/x/bet"
)

func runCmd(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.Bytes(), err
}

func TestAddrCommand(t *testing.T) {
	maker := weavetest.NewCondition().Address()
	opponent := weavetest.NewCondition().Address()
	judge := weavetest.NewCondition().Address()

	raw, err := runCmd(t, "addr",
		"--maker", maker.String(),
		"--opponent", opponent.String(),
		"--judge", judge.String(),
		"--description", "rain tomorrow",
	)
	assert.Nil(t, err)

	var got addrOutput
	assert.Nil(t, json.Unmarshal(raw, &got))

	wantBet, wantSalt, err := bet.DeriveBetAddress(maker, opponent, judge, "rain tomorrow")
	assert.Nil(t, err)
	assert.Equal(t, wantBet, got.Bet)
	assert.Equal(t, wantSalt, got.RecordSalt)

	wantVault, _, err := bet.DeriveVaultAddress(wantBet)
	assert.Nil(t, err)
	assert.Equal(t, wantVault, got.Vault)

	fromBech32, err := stake.ParseAddress(got.BetBech32)
	assert.Nil(t, err)
	assert.Equal(t, wantBet, fromBech32)
}

func TestAddrCommandMissingJudge(t *testing.T) {
	maker := weavetest.NewCondition().Address()
	opponent := weavetest.NewCondition().Address()

	_, err := runCmd(t, "addr",
		"--maker", maker.String(),
		"--opponent", opponent.String(),
	)
	assert.IsErr(t, errors.ErrEmpty, err)
}

func TestKeysCommandSeed(t *testing.T) {
	seed := "000102030405060708090a0b0c0d0e0f"
	first, err := runCmd(t, "keys", "--seed", seed)
	assert.Nil(t, err)
	second, err := runCmd(t, "keys", "--seed", seed)
	assert.Nil(t, err)
	assert.Equal(t, string(first), string(second))

	var key keyOutput
	assert.Nil(t, json.Unmarshal(first, &key))
	assert.Equal(t, key.Pubkey.Address(), key.Address)

	other, err := runCmd(t, "keys", "--seed", seed, "--path", "m/44'/234'/1'")
	assert.Nil(t, err)
	if string(other) == string(first) {
		t.Fatal("different paths must derive different keys")
	}
}

func TestKeysCommandInvalidSeed(t *testing.T) {
	_, err := runCmd(t, "keys", "--seed", "not hex")
	assert.IsErr(t, errors.ErrInput, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCmd(t, "version")
	assert.Nil(t, err)
	assert.Equal(t, Version+"\n", string(out))
}
