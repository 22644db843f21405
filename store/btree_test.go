package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges.
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, base.Get(k))
	assert.False(t, base.Has(k))
	base.Set(k, v)
	assert.Equal(t, v, base.Get(k))
	assert.True(t, base.Has(k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, cache.Get(k))
	assert.True(t, cache.Has(k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	cache.Set(k2, v2)
	assert.Equal(t, v2, cache.Get(k2))
	assert.Nil(t, base.Get(k2))
	assert.False(t, base.Has(k2))

	// we can write the cache to the base layer...
	cache.Write()
	assert.Equal(t, v, base.Get(k))
	assert.Equal(t, v2, base.Get(k2))

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	c2.Set(k3, v3)
	c2.Discard()
	assert.Nil(t, base.Get(k3))

	// and commit another
	c3 := base.CacheWrap()
	c3.Delete(k)
	assert.False(t, c3.Has(k))
	assert.True(t, base.Has(k))
	c3.Write()

	assert.Nil(t, base.Get(k))
	assert.Equal(t, v2, base.Get(k2))
	assert.Nil(t, base.Get(k3))
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	base.Set([]byte("a"), []byte("1"))
	base.Set([]byte("c"), []byte("3"))
	base.Set([]byte("e"), []byte("5"))

	cache := base.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Set([]byte("c"), []byte("33"))
	cache.Delete([]byte("e"))
	cache.Set([]byte("f"), []byte("6"))

	cases := map[string]struct {
		iter func() Iterator
		want []Model
	}{
		"full ascending": {
			iter: func() Iterator { return cache.Iterator(nil, nil) },
			want: []Model{
				{Key: []byte("a"), Value: []byte("1")},
				{Key: []byte("b"), Value: []byte("2")},
				{Key: []byte("c"), Value: []byte("33")},
				{Key: []byte("f"), Value: []byte("6")},
			},
		},
		"bounded ascending": {
			iter: func() Iterator { return cache.Iterator([]byte("b"), []byte("f")) },
			want: []Model{
				{Key: []byte("b"), Value: []byte("2")},
				{Key: []byte("c"), Value: []byte("33")},
			},
		},
		"full descending": {
			iter: func() Iterator { return cache.ReverseIterator(nil, nil) },
			want: []Model{
				{Key: []byte("f"), Value: []byte("6")},
				{Key: []byte("c"), Value: []byte("33")},
				{Key: []byte("b"), Value: []byte("2")},
				{Key: []byte("a"), Value: []byte("1")},
			},
		},
		"base is not modified": {
			iter: func() Iterator { return base.Iterator(nil, nil) },
			want: []Model{
				{Key: []byte("a"), Value: []byte("1")},
				{Key: []byte("c"), Value: []byte("3")},
				{Key: []byte("e"), Value: []byte("5")},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it := tc.iter()
			defer it.Close()
			var got []Model
			for ; it.Valid(); it.Next() {
				got = append(got, Model{Key: it.Key(), Value: it.Value()})
			}
			require.Equal(t, tc.want, got)
		})
	}
}

func TestLogableStore(t *testing.T) {
	kv, ops := LogableStore()
	kv.Set([]byte("foo"), []byte("bar"))
	kv.Delete([]byte("foo"))
	assert.Equal(t, []Op{SetOp([]byte("foo"), []byte("bar")), DelOp([]byte("foo"))}, ops.ShowOps())
}
