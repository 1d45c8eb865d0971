// nolint
package store

import settle "github.com/iov-one/settle"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = settle.ReadOnlyKVStore
type SetDeleter = settle.SetDeleter
type KVStore = settle.KVStore
type Batch = settle.Batch
type CacheableKVStore = settle.CacheableKVStore
type KVCacheWrap = settle.KVCacheWrap
