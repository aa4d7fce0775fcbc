package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memSuite() *TestSuite {
	return NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
}

func TestBTreeCacheGetSet(t *testing.T) {
	memSuite().GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	memSuite().CacheConflicts(t)
}

func TestBTreeFuzzIterator(t *testing.T) {
	memSuite().FuzzIterator(t)
}

func TestBTreeIteratorConflicts(t *testing.T) {
	memSuite().IteratorWithConflicts(t)
}

func TestNestedCacheWrap(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("bet"), []byte("open")))

	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	require.NoError(t, inner.Set([]byte("bet"), []byte("accepted")))
	require.NoError(t, inner.Set([]byte("vault"), []byte("2000")))

	// writing the inner cache only reaches the outer one
	require.NoError(t, inner.Write())
	got, err := outer.Get([]byte("bet"))
	require.NoError(t, err)
	assert.Equal(t, []byte("accepted"), got)
	got, err = base.Get([]byte("bet"))
	require.NoError(t, err)
	assert.Equal(t, []byte("open"), got)

	outer.Discard()
	has, err := base.Has([]byte("vault"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBTreeCacheableOverEmptyStore(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}
	cache := devnull.CacheWrap()
	require.NoError(t, cache.Set([]byte("key"), []byte("value")))
	require.NoError(t, cache.Write())

	got, err := devnull.Get([]byte("key"))
	require.NoError(t, err)
	assert.Nil(t, got)
}
