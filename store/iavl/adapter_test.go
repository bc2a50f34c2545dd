package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/vaultswap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitStoreCacheWrite(t *testing.T) {
	commit := NewMemCommitStore()
	require.NoError(t, commit.LoadLatestVersion())

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("vault"), []byte("locked")))
	got, err := commit.Get([]byte("vault"))
	require.NoError(t, err)
	assert.Nil(t, got, "cache must not leak before write")

	require.NoError(t, cache.Write())
	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get([]byte("vault"))
	require.NoError(t, err)
	assert.Equal(t, []byte("locked"), got)

	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
}

func TestCommitStoreOnDisk(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-adapter-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	require.NoError(t, commit.LoadLatestVersion())
	kv := commit.Adapter()
	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	require.NoError(t, kv.Set([]byte("b"), []byte("2")))
	first, err := commit.Commit()
	require.NoError(t, err)

	require.NoError(t, kv.Delete([]byte("a")))
	second, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, first.Version+1, second.Version)
	assert.NotEqual(t, first.Hash, second.Hash)

	it, err := kv.ReverseIterator(nil, nil)
	require.NoError(t, err)
	defer it.Release()
	k, v, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), k)
	assert.Equal(t, []byte("2"), v)
	_, _, err = it.Next()
	assert.True(t, errors.ErrIteratorDone.Is(err))
}
