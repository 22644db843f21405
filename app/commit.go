package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// CommitStore keeps two scratch layers over the persistent store. DeliverTx
// writes land in deliver and become state on Commit. CheckTx writes land in
// check and are thrown away at every block.
type CommitStore struct {
	committed custody.CommitKVStore
	deliver   custody.KVCacheWrap
	check     custody.KVCacheWrap
}

// NewCommitStore restores the latest version of store. The node cannot
// start without it, so a failure panics.
func NewCommitStore(store custody.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(errors.Wrap(errors.ErrDatabase, err.Error()))
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the height and root hash of the last commit.
func (cs *CommitStore) CommitInfo() custody.CommitID {
	return cs.committed.LatestVersion()
}

// Commit persists the deliver layer and starts a fresh pair of layers.
func (cs *CommitStore) Commit() custody.CommitID {
	cs.check.Discard()
	cs.deliver.Write()
	id := cs.committed.Commit()
	cs.reset()
	return id
}

// The chain id lives next to the gconf singletons under the same prefix.
const chainIDKey = "_c:chain_id"

func loadChainID(db custody.ReadOnlyKVStore) string {
	return string(db.Get([]byte(chainIDKey)))
}

// saveChainID records the chain id at genesis. It can never change.
func saveChainID(db custody.KVStore, chainID string) error {
	if !custody.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	key := []byte(chainIDKey)
	if db.Has(key) {
		return errors.Wrap(errors.ErrImmutable, "chain id is set at genesis only")
	}
	db.Set(key, []byte(chainID))
	return nil
}
