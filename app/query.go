package app

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/orm"
)

// RegisterQuery exposes the raw key value store under the "/" path.
func RegisterQuery(qr stake.QueryRouter) {
	qr.Register("/", stake.QueryHandlerFunc(rawQuery))
}

// rawQuery returns the stored values for a key or a key prefix without
// any interpretation.
func rawQuery(db stake.ReadOnlyKVStore, mod string, data []byte) ([]stake.Model, error) {
	switch mod {
	case stake.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []stake.Model{stake.Pair(data, value)}, nil
	case stake.PrefixQueryMod:
		var end []byte
		if len(data) > 0 {
			end = prefixEnd(data)
		}
		itr, err := db.Iterator(data, end)
		if err != nil {
			return nil, err
		}
		return orm.ConsumeIterator(itr)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// prefixEnd returns the smallest key greater than every key starting with
// the prefix, or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
