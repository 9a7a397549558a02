package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaleido-io/PET-atomic-settlements/errors"
)

func TestBTreeCacheGetSetDelete(t *testing.T) {
	db := MemStore()

	res, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, res)

	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	res, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), res)

	has, err = db.Has([]byte("a"))
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, db.Delete([]byte("a")))
	res, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("base"), []byte("1")))

	// Discarded writes never reach the parent.
	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("gone"), []byte("2")))
	cache.Discard()
	res, err := db.Get([]byte("gone"))
	require.NoError(t, err)
	assert.Nil(t, res)

	// Written caches do, including deletes.
	cache = db.CacheWrap()
	require.NoError(t, cache.Set([]byte("kept"), []byte("3")))
	require.NoError(t, cache.Delete([]byte("base")))

	// The parent is untouched until Write.
	res, err = db.Get([]byte("kept"))
	require.NoError(t, err)
	assert.Nil(t, res)
	res, err = db.Get([]byte("base"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), res)

	require.NoError(t, cache.Write())
	res, err = db.Get([]byte("kept"))
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), res)
	res, err = db.Get([]byte("base"))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestNestedCacheWraps(t *testing.T) {
	db := MemStore()
	outer := db.CacheWrap()
	inner := outer.CacheWrap()

	require.NoError(t, inner.Set([]byte("a"), []byte("1")))
	require.NoError(t, inner.Write())

	// Inner write lands in outer, not in the root.
	res, err := outer.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), res)
	res, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, res)

	// Discarding a second inner layer keeps the first one's data.
	inner2 := outer.CacheWrap()
	require.NoError(t, inner2.Set([]byte("b"), []byte("2")))
	inner2.Discard()
	res, err = outer.Get([]byte("b"))
	require.NoError(t, err)
	assert.Nil(t, res)
	res, err = outer.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), res)

	require.NoError(t, outer.Write())
	res, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), res)
}

func collect(t *testing.T, it Iterator) []Model {
	t.Helper()
	var res []Model
	defer it.Release()
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, Model{Key: key, Value: value})
	}
}

func TestIteratorMergesCacheAndParent(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	require.NoError(t, db.Set([]byte("c"), []byte("3")))
	require.NoError(t, db.Set([]byte("d"), []byte("4")))

	cache := db.CacheWrap()
	// New key, shadowed key, deleted key.
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Set([]byte("c"), []byte("33")))
	require.NoError(t, cache.Delete([]byte("d")))

	it, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	models := collect(t, it)
	require.Len(t, models, 3)
	assert.Equal(t, Model{Key: []byte("a"), Value: []byte("1")}, models[0])
	assert.Equal(t, Model{Key: []byte("b"), Value: []byte("2")}, models[1])
	assert.Equal(t, Model{Key: []byte("c"), Value: []byte("33")}, models[2])

	rit, err := cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	models = collect(t, rit)
	require.Len(t, models, 3)
	assert.Equal(t, []byte("c"), models[0].Key)
	assert.Equal(t, []byte("a"), models[2].Key)
}

func TestIteratorRange(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, db.Set([]byte(k), []byte(k)))
	}

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []string
	}{
		"closed range":          {[]byte("b"), []byte("d"), false, []string{"b", "c"}},
		"open start":            {nil, []byte("c"), false, []string{"a", "b"}},
		"open end":              {[]byte("d"), nil, false, []string{"d", "e"}},
		"reverse closed range":  {[]byte("b"), []byte("d"), true, []string{"c", "b"}},
		"reverse open start":    {nil, []byte("c"), true, []string{"b", "a"}},
		"reverse open end":      {[]byte("d"), nil, true, []string{"e", "d"}},
		"empty range":           {[]byte("x"), nil, false, nil},
		"end is exclusive":      {[]byte("a"), []byte("b"), false, []string{"a"}},
		"reverse end exclusive": {[]byte("a"), []byte("b"), true, []string{"a"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = db.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = db.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			models := collect(t, it)
			require.Len(t, models, len(tc.want))
			for i, k := range tc.want {
				assert.Equal(t, []byte(k), models[i].Key)
			}
		})
	}
}

func TestNilKeyPanics(t *testing.T) {
	db := MemStore()
	assert.Panics(t, func() { _ = db.Set(nil, []byte("x")) })
	assert.Panics(t, func() { _, _ = db.Get(nil) })
	assert.Panics(t, func() { _ = db.Delete(nil) })
}
