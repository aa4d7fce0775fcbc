package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/stake/errors"
)

// DefaultFreeListSize is the number of btree nodes kept for reuse.
const DefaultFreeListSize = btree.DefaultFreeListSize

// BTreeCacheable gives any KVStore a btree backed CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns an empty in-memory store without persistence.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return NewBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// BTreeCacheWrap keeps pending writes in a btree in front of a read only
// parent. Reads see the pending writes first. Write replays them through
// batch.
type BTreeCacheWrap struct {
	bt     *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap creates a cache over parent that flushes into batch.
// free may be shared between nested caches, nil allocates a new list.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:     btree.NewWithFreeList(2, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

// CacheWrap stacks another cache on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes pending writes to the parent and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops pending writes from the tree. Nodes return to the free
// list.
func (b BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(setItem{bkey{key}, value})
	return b.batch.Set(key, value)
}

// Delete records a tombstone so that the parent value is hidden.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(deletedItem{bkey{key}})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	value, cached, err := b.lookup(key)
	if err != nil || cached {
		return value, err
	}
	return b.parent.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	value, cached, err := b.lookup(key)
	if err != nil {
		return false, err
	}
	if cached {
		return value != nil, nil
	}
	return b.parent.Has(key)
}

// lookup reports whether the cache knows about key. A tombstone is known
// with a nil value.
func (b BTreeCacheWrap) lookup(key []byte) (value []byte, cached bool, err error) {
	switch item := b.bt.Get(bkey{key}).(type) {
	case nil:
		return nil, false, nil
	case setItem:
		if item.value == nil {
			return []byte{}, true, nil
		}
		return item.value, true, nil
	case deletedItem:
		return nil, true, nil
	default:
		return nil, false, errors.Wrapf(errors.ErrDatabase, "unexpected btree item %T", item)
	}
}

// Iterator merges cached writes with the parent in ascending key order.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIterator(collectRange(b.bt, start, end), parent, true)
}

// ReverseIterator merges cached writes with the parent in descending key
// order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	items := collectRange(b.bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return newCacheIterator(items, parent, false)
}

// collectRange returns cached items with start <= key < end in ascending
// order. A nil bound is open.
func collectRange(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	collect := func(i btree.Item) bool {
		items = append(items, i.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// keyer is implemented by every item stored in the tree.
type keyer interface {
	btree.Item
	Key() []byte
}

type bkey struct {
	key []byte
}

func (k bkey) Key() []byte {
	return k.key
}

func (k bkey) Less(other btree.Item) bool {
	return bytes.Compare(k.key, other.(keyer).Key()) < 0
}

type setItem struct {
	bkey
	value []byte
}

type deletedItem struct {
	bkey
}
