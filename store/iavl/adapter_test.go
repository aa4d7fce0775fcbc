package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/stake/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func makeCommitStore(t testing.TB) (CommitStore, string, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	require.NoError(t, err)
	commit := NewCommitStore(tmpDir, "base", dbm.GoLevelDBBackend)
	require.NoError(t, commit.LoadLatestVersion())
	return commit, tmpDir, func() { os.RemoveAll(tmpDir) }
}

func suite() *store.TestSuite {
	return store.NewTestSuite(func() (store.CacheableKVStore, func()) {
		commit := NewCommitStoreFromDB(dbm.NewMemDB())
		return commit.Adapter(), func() {}
	})
}

func TestIavlGetSet(t *testing.T) {
	suite().GetSet(t)
}

func TestIavlCacheConflicts(t *testing.T) {
	suite().CacheConflicts(t)
}

func TestIavlFuzzIterator(t *testing.T) {
	suite().FuzzIterator(t)
}

func TestIavlIteratorConflicts(t *testing.T) {
	suite().IteratorWithConflicts(t)
}

func TestCommitAndReload(t *testing.T) {
	commit, dir, cleanup := makeCommitStore(t)
	defer cleanup()

	id, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(0), id.Version)

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("bet"), []byte("open")))
	require.NoError(t, cache.Write())

	first, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Version)
	assert.NotEmpty(t, first.Hash)

	cache = commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("bet"), []byte("accepted")))
	require.NoError(t, cache.Write())
	second, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version)
	assert.NotEqual(t, first.Hash, second.Hash)

	// uncommitted changes are lost on reload
	require.NoError(t, commit.Adapter().Set([]byte("vault"), []byte("1000")))
	commit.Close()

	reloaded := NewCommitStore(dir, "base", dbm.GoLevelDBBackend)
	defer reloaded.Close()
	require.NoError(t, reloaded.LoadLatestVersion())

	latest, err := reloaded.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, second.Version, latest.Version)
	assert.Equal(t, second.Hash, latest.Hash)

	val, err := reloaded.Get([]byte("bet"))
	require.NoError(t, err)
	assert.Equal(t, []byte("accepted"), val)
	val, err = reloaded.Get([]byte("vault"))
	require.NoError(t, err)
	assert.Nil(t, val)
}
