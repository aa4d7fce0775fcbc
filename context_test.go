package stake

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	var buf bytes.Buffer
	ctx := WithLogger(bg, log.NewTMLogger(&buf))
	ctx = WithLogInfo(ctx, "bet", "b1")
	GetLogger(ctx).Info("deposit")
	assert.Contains(t, buf.String(), "bet=b1")
}

func TestContextHeight(t *testing.T) {
	ctx := context.Background()
	_, ok := GetHeight(ctx)
	require.False(t, ok)

	ctx = WithHeight(ctx, 12)
	h, ok := GetHeight(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(12), h)
	assert.Panics(t, func() { WithHeight(ctx, 13) })

	// Log fields do not hide previously stored values.
	h, _ = GetHeight(WithLogInfo(ctx, "k", "v"))
	assert.Equal(t, int64(12), h)
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { GetChainID(ctx) })

	ctx = WithChainID(ctx, "bet-test")
	assert.Equal(t, "bet-test", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "bet-other") })
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                                false,
		"bet":                             false,
		"betnet":                          true,
		"bet-NET-2":                       true,
		"bet net":                         false,
		"bet-chain-with-a-very-long-name": false,
	}
	for id, want := range cases {
		assert.Equal(t, want, IsValidChainID(id), id)
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2019, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := WithBlockTime(context.Background(), now)

	assert.True(t, IsExpired(ctx, AsUnixTime(now)))
	assert.True(t, IsExpired(ctx, AsUnixTime(now).Add(-time.Second)))
	assert.False(t, IsExpired(ctx, AsUnixTime(now).Add(time.Second)))

	assert.Panics(t, func() { IsExpired(context.Background(), 1) })
}
