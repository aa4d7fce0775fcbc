package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/stake"
)

// Auth authenticates a fixed set of conditions regardless of the context.
// Signer and Signers may be combined.
type Auth struct {
	Signer  stake.Condition
	Signers []stake.Condition
}

func (a *Auth) GetConditions(stake.Context) []stake.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append(a.Signers, a.Signer)
}

func (a *Auth) HasAddress(ctx stake.Context, addr stake.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key.
// Two instances with different keys do not see each other's signers,
// which lets a test model several independent authenticators.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context in which the conditions are
// authenticated.
func (a *CtxAuth) SetConditions(ctx stake.Context, conds ...stake.Condition) stake.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx stake.Context) []stake.Condition {
	switch val := ctx.Value(ctxAuthKey(a.Key)).(type) {
	case nil:
		return nil
	case []stake.Condition:
		return val
	default:
		panic(fmt.Sprintf("want []stake.Condition, got %T", val))
	}
}

func (a *CtxAuth) HasAddress(ctx stake.Context, addr stake.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

func containsAddress(conds []stake.Condition, addr stake.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
