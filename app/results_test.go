package app

import (
	"testing"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/weavetest/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func TestResultSets(t *testing.T) {
	models := []stake.Model{
		stake.Pair([]byte("one"), []byte("first")),
		stake.Pair([]byte("two"), []byte("second")),
	}

	rawKeys, err := ResultsFromKeys(models).Marshal()
	require.NoError(t, err)
	rawValues, err := ResultsFromValues(models).Marshal()
	require.NoError(t, err)

	var keys, values ResultSet
	require.NoError(t, keys.Unmarshal(rawKeys))
	require.NoError(t, values.Unmarshal(rawValues))

	got, err := JoinResults(&keys, &values)
	require.NoError(t, err)
	assert.Equal(t, models, got)

	_, err = JoinResults(&keys, &ResultSet{})
	assert.IsErr(t, errors.ErrState, err)
}

func TestEmptyResultSet(t *testing.T) {
	raw, err := ResultsFromKeys(nil).Marshal()
	require.NoError(t, err)

	var rs ResultSet
	require.NoError(t, rs.Unmarshal(raw))
	assert.Equal(t, 0, len(rs.Results))
}

func TestDeliverOrError(t *testing.T) {
	res := DeliverOrError(&stake.DeliverResult{
		Data:    []byte("id"),
		Log:     "ok",
		Tags:    []common.KVPair{{Key: []byte("action"), Value: []byte("bet/make")}},
		GasUsed: 7,
	}, nil, false)
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, []byte("id"), res.Data)
	assert.Equal(t, int64(7), res.GasUsed)
	assert.Equal(t, 1, len(res.Tags))

	res = DeliverOrError(nil, errors.Wrap(errors.ErrUnauthorized, "judge"), false)
	assert.Equal(t, uint32(2), res.Code)
	assert.Equal(t, "judge: unauthorized", res.Log)
}

func TestCheckOrError(t *testing.T) {
	res := CheckOrError(&stake.CheckResult{GasAllocated: 300}, nil, false)
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, int64(300), res.GasWanted)

	res = CheckOrError(nil, errors.ErrExpired.New("too late"), false)
	assert.Equal(t, uint32(15), res.Code)
}
