package store

import (
	"testing"

	"github.com/iov-one/vaultswap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func TestBTreeCacheGetSet(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}
	base := devnull.CacheWrap()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	// writing more data is only visible in the cache
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)

	// discarded writes are lost
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assertGetHas(t, base, k3, nil, false)

	// deletes are propagated
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assertGetHas(t, c3, k, nil, false)
	assertGetHas(t, base, k, v, true)
	require.NoError(t, c3.Write())
	assertGetHas(t, base, k, nil, false)
	assertGetHas(t, base, k2, v2, true)
}

func collect(t testing.TB, it Iterator) []Model {
	t.Helper()
	defer it.Release()
	var res []Model
	for {
		k, v, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, Model{Key: k, Value: v})
	}
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("new-b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("new-c")))
	require.NoError(t, cache.Delete([]byte("e")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"full range ascending": {
			want: []Model{
				{Key: []byte("a"), Value: []byte("base-a")},
				{Key: []byte("b"), Value: []byte("new-b")},
				{Key: []byte("c"), Value: []byte("new-c")},
				{Key: []byte("g"), Value: []byte("base-g")},
			},
		},
		"bounded ascending": {
			start: []byte("b"),
			end:   []byte("g"),
			want: []Model{
				{Key: []byte("b"), Value: []byte("new-b")},
				{Key: []byte("c"), Value: []byte("new-c")},
			},
		},
		"full range descending": {
			reverse: true,
			want: []Model{
				{Key: []byte("g"), Value: []byte("base-g")},
				{Key: []byte("c"), Value: []byte("new-c")},
				{Key: []byte("b"), Value: []byte("new-b")},
				{Key: []byte("a"), Value: []byte("base-a")},
			},
		},
		"bounded descending": {
			start:   []byte("b"),
			end:     []byte("g"),
			reverse: true,
			want: []Model{
				{Key: []byte("c"), Value: []byte("new-c")},
				{Key: []byte("b"), Value: []byte("new-b")},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, collect(t, it))
		})
	}
}

func TestLogableStore(t *testing.T) {
	kv, ops := LogableStore()
	require.NoError(t, kv.Set([]byte("k"), []byte("v")))
	require.NoError(t, kv.Delete([]byte("x")))
	got := ops.ShowOps()
	require.Len(t, got, 2)
	assert.Equal(t, &Model{Key: []byte("k"), Value: []byte("v")}, got[0].IsSetOp())
	assert.Nil(t, got[1].IsSetOp())
}
