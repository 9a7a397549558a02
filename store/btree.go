package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/kaleido-io/PET-atomic-settlements/errors"
)

// item is what is stored in the btree: a pending write. A delete is stored
// as an item with the delete flag, shadowing whatever the backing store
// holds.
type item struct {
	key    []byte
	value  []byte
	delete bool
}

func (i item) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(item).key) < 0
}

// BTreeCacheable adds a simple btree-based CacheWrap strategy to a KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later written to this
// store, or discarded.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore)
}

// MemStore returns a simple implementation useful for tests. There is no
// persistence here.
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{})
}

// BTreeCacheWrap places a btree cache over a KVStore. All writes are held
// in the tree until Write copies them down to the backing store, or Discard
// drops them. It cache-wraps recursively, which is what lets a cancellation
// attempt each rollback leg in its own discardable layer.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	back KVStore
}

var _ KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around this kv store.
func NewBTreeCacheWrap(kv KVStore) *BTreeCacheWrap {
	return &BTreeCacheWrap{
		bt:   btree.New(2),
		back: kv,
	}
}

// CacheWrap layers another cache on this one.
func (b *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b)
}

// Write syncs the cached writes with the underlying store and resets the
// cache.
func (b *BTreeCacheWrap) Write() error {
	var err error
	b.bt.Ascend(func(bi btree.Item) bool {
		i := bi.(item)
		if i.delete {
			err = b.back.Delete(i.key)
		} else {
			err = b.back.Set(i.key, i.value)
		}
		return err == nil
	})
	b.Discard()
	return errors.Wrap(err, "cannot write cache")
}

// Discard invalidates this CacheWrap and releases all data.
func (b *BTreeCacheWrap) Discard() {
	b.bt.Clear(false)
}

// Set writes to the cache.
func (b *BTreeCacheWrap) Set(key, value []byte) error {
	b.assertValidKey(key)
	b.bt.ReplaceOrInsert(item{key: key, value: value})
	return nil
}

// Delete marks the key as deleted in the cache.
func (b *BTreeCacheWrap) Delete(key []byte) error {
	b.assertValidKey(key)
	b.bt.ReplaceOrInsert(item{key: key, delete: true})
	return nil
}

// Get reads from the cache, falling back to the backing store.
func (b *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	b.assertValidKey(key)
	if res := b.bt.Get(item{key: key}); res != nil {
		i := res.(item)
		if i.delete {
			return nil, nil
		}
		return i.value, nil
	}
	return b.back.Get(key)
}

// Has reads from the cache, falling back to the backing store.
func (b *BTreeCacheWrap) Has(key []byte) (bool, error) {
	b.assertValidKey(key)
	if res := b.bt.Get(item{key: key}); res != nil {
		return !res.(item).delete, nil
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order, merging cached writes
// over the backing store.
func (b *BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(b.inRange(start, end, false), parent, false), nil
}

// ReverseIterator over a domain of keys in descending order.
func (b *BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(b.inRange(start, end, true), parent, true), nil
}

// inRange materializes the cached items within [start, end).
func (b *BTreeCacheWrap) inRange(start, end []byte, reverse bool) []item {
	var res []item
	collect := func(bi btree.Item) bool {
		res = append(res, bi.(item))
		return true
	}
	switch {
	case start == nil && end == nil:
		if reverse {
			b.bt.Descend(collect)
		} else {
			b.bt.Ascend(collect)
		}
	case start == nil:
		if reverse {
			b.bt.DescendLessOrEqual(item{key: end}, func(bi btree.Item) bool {
				// end is exclusive
				if bytes.Equal(bi.(item).key, end) {
					return true
				}
				return collect(bi)
			})
		} else {
			b.bt.AscendLessThan(item{key: end}, collect)
		}
	case end == nil:
		if reverse {
			b.bt.Descend(func(bi btree.Item) bool {
				if bytes.Compare(bi.(item).key, start) < 0 {
					return false
				}
				return collect(bi)
			})
		} else {
			b.bt.AscendGreaterOrEqual(item{key: start}, collect)
		}
	default:
		if reverse {
			// btree's DescendRange bound semantics are the mirror
			// of the store contract, so walk with manual bounds.
			b.bt.Descend(func(bi btree.Item) bool {
				key := bi.(item).key
				if bytes.Compare(key, end) >= 0 {
					return true
				}
				if bytes.Compare(key, start) < 0 {
					return false
				}
				return collect(bi)
			})
		} else {
			b.bt.AscendRange(item{key: start}, item{key: end}, collect)
		}
	}
	return res
}

func (b *BTreeCacheWrap) assertValidKey(key []byte) {
	if key == nil {
		panic("nil key not allowed")
	}
}

// mergeIterator walks the cached items and the parent iterator in lockstep,
// letting cached writes shadow the backing data.
type mergeIterator struct {
	cached  []item
	parent  Iterator
	reverse bool

	pkey   []byte
	pvalue []byte
	pdone  bool
	primed bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []item, parent Iterator, reverse bool) *mergeIterator {
	return &mergeIterator{
		cached:  cached,
		parent:  parent,
		reverse: reverse,
	}
}

func (m *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if err := m.prime(); err != nil {
			return nil, nil, err
		}

		var useCache bool
		switch {
		case len(m.cached) == 0 && m.pdone:
			return nil, nil, errors.ErrIteratorDone
		case len(m.cached) == 0:
			useCache = false
		case m.pdone:
			useCache = true
		default:
			cmp := bytes.Compare(m.cached[0].key, m.pkey)
			if m.reverse {
				cmp = -cmp
			}
			if cmp == 0 {
				// Cached write shadows the backing entry.
				m.primed = false
				useCache = true
			} else {
				useCache = cmp < 0
			}
		}

		if useCache {
			i := m.cached[0]
			m.cached = m.cached[1:]
			if i.delete {
				continue
			}
			return i.key, i.value, nil
		}

		m.primed = false
		return m.pkey, m.pvalue, nil
	}
}

// prime loads the next parent entry into the lookahead buffer.
func (m *mergeIterator) prime() error {
	if m.primed || m.pdone {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case err == nil:
		m.pkey, m.pvalue = key, value
		m.primed = true
	case errors.ErrIteratorDone.Is(err):
		m.pdone = true
	default:
		return err
	}
	return nil
}

func (m *mergeIterator) Release() {
	m.cached = nil
	m.parent.Release()
}
