package stake

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block metadata every handler needs: height, chain
// ID, block time and a logger. Use the helpers below to access them.
type Context = context.Context

type ctxKey int

const (
	heightKey ctxKey = iota
	chainIDKey
	blockTimeKey
	loggerKey
)

var (
	// DefaultLogger is returned by GetLogger when no logger was attached.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID reports whether id is between 6 and 20 characters of
	// letters, digits, dash or underscore.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight attaches the block height. It panics when a height is
// already present.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("block height already set")
	}
	return context.WithValue(ctx, heightKey, height)
}

func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithChainID attaches the chain ID. It panics when an ID is already
// present or chainID is not valid.
func WithChainID(ctx Context, chainID string) Context {
	if _, ok := ctx.Value(chainIDKey).(string); ok {
		panic("chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain ID %q", chainID))
	}
	return context.WithValue(ctx, chainIDKey, chainID)
}

// GetChainID panics when no chain ID was attached. The application always
// sets one before running a transaction.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("chain ID not set")
	}
	return id
}

// WithBlockTime attaches the header time of the block being executed.
// Deadlines are compared against it, never against the local clock.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, blockTimeKey, t)
}

func BlockTime(ctx Context) (time.Time, bool) {
	t, ok := ctx.Value(blockTimeKey).(time.Time)
	return t, ok
}

// IsExpired reports whether the block time has reached t. A deadline equal
// to the block time is expired. It panics without a block time.
func IsExpired(ctx Context, t UnixTime) bool {
	now, ok := BlockTime(ctx)
	if !ok {
		panic("block time not set")
	}
	return AsUnixTime(now) >= t
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the attached logger or DefaultLogger.
func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}

// WithLogInfo replaces the logger with one that adds keyvals to every
// entry.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}
