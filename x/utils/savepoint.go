package utils

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
)

// Savepoint runs the rest of the stack on a cache wrap of the store and
// writes it back only when the handler succeeds. A failed bet operation
// therefore leaves no partial vault or balance changes behind.
//
// The zero value is inactive, enable it with OnCheck and OnDeliver.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ stake.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx, next stake.Checker) (*stake.CheckResult, error) {
	var res *stake.CheckResult
	err := isolate(s.onCheck, db, func(kv stake.KVStore) (err error) {
		res, err = next.Check(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx, next stake.Deliverer) (*stake.DeliverResult, error) {
	var res *stake.DeliverResult
	err := isolate(s.onDeliver, db, func(kv stake.KVStore) (err error) {
		res, err = next.Deliver(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn on a cache of db when enabled and db supports caching,
// otherwise on db directly.
func isolate(enabled bool, db stake.KVStore, fn func(stake.KVStore) error) error {
	cacheable, ok := db.(stake.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
