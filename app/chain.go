package app

import (
	"reflect"

	"github.com/iov-one/stake"
)

// Decorators is an ordered stack of decorators waiting for the handler
// they wrap. The first decorator runs first.
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
type Decorators struct {
	chain []stake.Decorator
}

// ChainDecorators returns a stack of given decorators. Nil entries are
// dropped, which lets callers disable a decorator by configuration.
func ChainDecorators(chain ...stake.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with given decorators appended below the
// current ones. The receiver is not modified.
func (d Decorators) Chain(chain ...stake.Decorator) Decorators {
	next := make([]stake.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			next = append(next, dec)
		}
	}
	return Decorators{chain: next}
}

func isNilDecorator(d stake.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with the final handler, usually a Router.
func (d Decorators) WithHandler(h stake.Handler) stake.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{dec: d.chain[i], next: h}
	}
	return h
}

// decorated is a handler running a single decorator around the rest of
// the stack.
type decorated struct {
	dec  stake.Decorator
	next stake.Handler
}

var _ stake.Handler = decorated{}

func (h decorated) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.CheckResult, error) {
	return h.dec.Check(ctx, db, tx, h.next)
}

func (h decorated) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.DeliverResult, error) {
	return h.dec.Deliver(ctx, db, tx, h.next)
}
