package x

import (
	"github.com/iov-one/stake"
)

// Authenticator extracts the conditions that signed the current transaction
// from the context. Handlers receive it in their constructor so that the
// signature scheme can be swapped without touching the bet logic.
type Authenticator interface {
	// GetConditions returns every condition that authorized the
	// transaction.
	GetConditions(stake.Context) []stake.Condition
	// HasAddress reports whether any authorized condition resolves to
	// given address.
	HasAddress(stake.Context, stake.Address) bool
}

// MultiAuth combines several Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth returns an Authenticator that accepts a condition if any of the
// given implementations does.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions returns the conditions of all implementations, in order.
func (m MultiAuth) GetConditions(ctx stake.Context) []stake.Condition {
	var res []stake.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

func (m MultiAuth) HasAddress(ctx stake.Context, addr stake.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// HasAnyAddress returns the first of the candidates that signed the
// transaction. Nil candidates are skipped.
func HasAnyAddress(ctx stake.Context, auth Authenticator, candidates ...stake.Address) (stake.Address, bool) {
	for _, c := range candidates {
		if c != nil && auth.HasAddress(ctx, c) {
			return c, true
		}
	}
	return nil, false
}
