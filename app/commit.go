package app

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
)

// CommitStore keeps the committed state together with the two scratch
// pads built on top of it. DeliverTx writes go to the deliver cache and
// become part of the state on Commit. CheckTx writes go to the check cache
// and are thrown away on Commit, so the mempool always validates against
// the latest committed block.
type CommitStore struct {
	committed stake.CommitKVStore
	deliver   stake.KVCacheWrap
	check     stake.KVCacheWrap
}

// NewCommitStore loads the latest version of the state.
func NewCommitStore(db stake.CommitKVStore) (*CommitStore, error) {
	if err := db.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	cs := &CommitStore{committed: db}
	cs.reset()
	return cs, nil
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the version and hash of the last commit.
func (cs *CommitStore) CommitInfo() (stake.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists everything delivered since the last commit.
func (cs *CommitStore) Commit() (stake.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return stake.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.reset()
	return id, nil
}

// Snapshot returns a read only view of the committed state. Call Discard
// on the result once done.
func (cs *CommitStore) Snapshot() stake.KVCacheWrap {
	return cs.committed.CacheWrap()
}

func (cs *CommitStore) CheckStore() stake.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() stake.CacheableKVStore {
	return cs.deliver
}

// chainIDKey lives under the "_st:" prefix reserved for data owned by the
// application itself rather than by an extension.
const chainIDKey = "_st:chainID"

// loadChainID returns the stored chain ID or an empty string before
// genesis.
func loadChainID(kv stake.ReadOnlyKVStore) (string, error) {
	raw, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID writes the chain ID once. A second call fails.
func saveChainID(kv stake.KVStore, chainID string) error {
	if !stake.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch exists, err := kv.Has([]byte(chainIDKey)); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrState, "chain id is set at genesis only")
	}
	return errors.Wrap(kv.Set([]byte(chainIDKey), []byte(chainID)), "save chain id")
}
