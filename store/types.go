package store

import "github.com/iov-one/stake"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = stake.ReadOnlyKVStore
	SetDeleter       = stake.SetDeleter
	KVStore          = stake.KVStore
	Batch            = stake.Batch
	Iterator         = stake.Iterator
	CacheableKVStore = stake.CacheableKVStore
	KVCacheWrap      = stake.KVCacheWrap
	CommitKVStore    = stake.CommitKVStore
	CommitID         = stake.CommitID
	Model            = stake.Model
)

// Pair constructs a model from a key-value pair
var Pair = stake.Pair
