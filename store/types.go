package store

import pet "github.com/kaleido-io/PET-atomic-settlements"

// Move references for all storage types into this package for shorter names
// everywhere.

type ReadOnlyKVStore = pet.ReadOnlyKVStore
type KVStore = pet.KVStore
type Iterator = pet.Iterator
type CacheableKVStore = pet.CacheableKVStore
type KVCacheWrap = pet.KVCacheWrap
