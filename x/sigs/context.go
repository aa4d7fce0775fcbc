package sigs

import (
	"context"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/x"
)

type ctxKey struct{}

// withSigners is unexported so that only the Decorator can mark a
// condition as verified.
func withSigners(ctx stake.Context, signers []stake.Condition) stake.Context {
	return context.WithValue(ctx, ctxKey{}, signers)
}

// Authenticate exposes the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns nil for a transaction that was not signed.
func (Authenticate) GetConditions(ctx stake.Context) []stake.Condition {
	signers, _ := ctx.Value(ctxKey{}).([]stake.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx stake.Context, addr stake.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
