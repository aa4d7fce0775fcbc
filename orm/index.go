package orm

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
)

const nativeIdxPrefix = "_i."

// MultiKeyIndexer calculates the secondary index keys for a given model
type MultiKeyIndexer func(Model) ([][]byte, error)

// nativeIndex stores a separate database entry for every indexed reference.
// The entry key is the index value followed by the primary key, so that
// all references of a value can be found with a single prefix scan.
type nativeIndex struct {
	name    string
	prefix  []byte
	indexer MultiKeyIndexer
	unique  bool
}

func newNativeIndex(bucket, name string, indexer MultiKeyIndexer, unique bool) *nativeIndex {
	return &nativeIndex{
		name:    name,
		prefix:  []byte(nativeIdxPrefix + bucket + "_" + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

// valuePrefix returns the prefix shared by all references of given value.
// The value is length prefixed so that no value is a prefix of another.
func (i *nativeIndex) valuePrefix(value []byte) []byte {
	var n [binary.MaxVarintLen64]byte
	size := binary.PutUvarint(n[:], uint64(len(value)))
	out := make([]byte, 0, len(i.prefix)+size+len(value))
	out = append(out, i.prefix...)
	out = append(out, n[:size]...)
	return append(out, value...)
}

func (i *nativeIndex) refKey(value, pk []byte) []byte {
	return append(i.valuePrefix(value), pk...)
}

// update moves the references of pk from the index values of prev to the
// index values of next. A nil model means no entity.
func (i *nativeIndex) update(db stake.KVStore, pk []byte, prev, next Model) error {
	var before, after [][]byte
	var err error
	if prev != nil {
		if before, err = i.indexer(prev); err != nil {
			return err
		}
	}
	if next != nil {
		if after, err = i.indexer(next); err != nil {
			return err
		}
	}

	for _, v := range before {
		if contains(after, v) {
			continue
		}
		if err := db.Delete(i.refKey(v, pk)); err != nil {
			return err
		}
	}
	for _, v := range after {
		if contains(before, v) {
			continue
		}
		if i.unique {
			keys, err := i.keys(db, v)
			if err != nil {
				return err
			}
			if len(keys) != 0 {
				return errors.Wrapf(errors.ErrDuplicate, "index %q value %X", i.name, v)
			}
		}
		if err := db.Set(i.refKey(v, pk), pk); err != nil {
			return err
		}
	}
	return nil
}

// keys returns all primary keys referenced by the given value.
func (i *nativeIndex) keys(db stake.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	models, err := queryPrefix(db, i.valuePrefix(value))
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, len(models))
	for n, m := range models {
		keys[n] = m.Value
	}
	return keys, nil
}

func contains(set [][]byte, v []byte) bool {
	for _, s := range set {
		if bytes.Equal(s, v) {
			return true
		}
	}
	return false
}

// indexQuery resolves an index value into the referenced bucket entries.
type indexQuery struct {
	bucket *modelBucket
	index  *nativeIndex
}

// Query handles queries from the QueryRouter
func (q indexQuery) Query(db stake.ReadOnlyKVStore, mod string, data []byte) ([]stake.Model, error) {
	if mod != stake.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	keys, err := q.index.keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]stake.Model, 0, len(keys))
	for _, pk := range keys {
		key := q.bucket.dbKey(pk)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value != nil {
			res = append(res, stake.Pair(key, value))
		}
	}
	return res, nil
}
