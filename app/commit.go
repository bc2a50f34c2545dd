package app

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

// CommitStore wraps the committed state with two caches. Deliver writes
// land in one of them and reach the committed state on Commit. CheckTx
// runs on the other, which is thrown away at every commit so the mempool
// is checked against the latest block.
type CommitStore struct {
	committed vaultswap.CommitKVStore
	deliver   vaultswap.KVCacheWrap
	check     vaultswap.KVCacheWrap
}

// NewCommitStore loads the latest version of store. A store that cannot
// be loaded leaves the node unable to start, so it panics.
func NewCommitStore(store vaultswap.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.resetCaches()
	return cs
}

func (cs *CommitStore) resetCaches() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the height and app hash of the last commit.
func (cs *CommitStore) CommitInfo() (vaultswap.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists everything delivered in this block and returns the new
// height and app hash.
func (cs *CommitStore) Commit() (vaultswap.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return vaultswap.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, err
	}
	cs.resetCaches()
	return id, nil
}

func (cs *CommitStore) CheckStore() vaultswap.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() vaultswap.CacheableKVStore {
	return cs.deliver
}

// chainIDKey must stay outside of every bucket, no bucket is named _vs.
const chainIDKey = "_vs:chainID"

// mustLoadChainID returns the stored chain id, empty before genesis.
func mustLoadChainID(kv vaultswap.ReadOnlyKVStore) string {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(v)
}

// saveChainID stores the chain id once, at genesis. Vault addresses do
// not depend on it but every signature does, so it can never change.
func saveChainID(kv vaultswap.KVStore, chainID string) error {
	if !vaultswap.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	key := []byte(chainIDKey)
	switch exists, err := kv.Has(key); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	if err := kv.Set(key, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
