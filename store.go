package pet

// KVStore/Iterator are the basic objects to use in all extension code.
// Cache-wrapping is what gives a transaction (or a single leg inside one)
// its all-or-nothing property.

// ReadOnlyKVStore is a simple interface to read data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is
	// exclusive. Start must be less than end, or the Iterator is
	// invalid. Iterator must be released when done.
	// CONTRACT: No writes may happen within a domain while an iterator
	// exists over it.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive. Start must be greater than end, or the Iterator is
	// invalid.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// KVStore is a simple interface to get/set data.
type KVStore interface {
	ReadOnlyKVStore

	// Set sets the key. Panics on nil key.
	Set(key, value []byte) error

	// Delete deletes the key. Panics on nil key.
	Delete(key []byte) error
}

// Iterator allows iteration over a domain of keys.
//
//   for k, v, err := it.Next(); err == nil; k, v, err = it.Next() { ... }
//
// The iterator signals an exhausted domain by returning
// errors.ErrIteratorDone.
type Iterator interface {
	// Next fetches the next key/value pair, or returns
	// errors.ErrIteratorDone when the domain is exhausted.
	Next() (key, value []byte, err error)

	// Release frees the iterator. It can be safely called multiple times.
	Release()
}

// CacheableKVStore is a KVStore that supports CacheWrapping.
//
// CacheWrap() should not return a Committer, since Commit() on cache-wraps
// makes no sense.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap allows us to maintain a scratch-pad of uncommitted data that
// we can view with all queries.
//
// At the end, call Write to apply the cached writes to the backing store, or
// Discard to drop them.
type KVCacheWrap interface {
	// CacheableKVStore allows cache-wraps to nest, which is how a
	// cancellation isolates every rollback leg from the others.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}
