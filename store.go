package custody

// ReadOnlyKVStore is what queries and read paths see. Escrow records,
// token accounts and signer sequences are all reached through it.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) []byte
	Has(key []byte) bool
	// Iterator walks [start, end) in ascending order. Nil bounds are open.
	// The range must not be written while the iterator is in use.
	Iterator(start, end []byte) Iterator
	// ReverseIterator walks [start, end) in descending order.
	ReverseIterator(start, end []byte) Iterator
}

// SetDeleter is the write half shared by stores and batches. Nil keys
// panic.
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// KVStore is the store a handler mutates.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Iterator is a cursor over a key range.
//
//	it := db.Iterator(start, end)
//	defer it.Close()
//	for ; it.Valid(); it.Next() {
//		use(it.Key(), it.Value())
//	}
//
// Key, Value and Next panic once Valid returned false. The returned slices
// must not be modified.
type Iterator interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stack a scratch layer on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes until Write pushes them one layer down or
// Discard drops them. Savepoints and the per block deliver and check state
// are built from it.
type KVCacheWrap interface {
	CacheableKVStore
	Write()
	Discard()
}

// CommitKVStore is the persistent store behind the application. Every
// Commit produces a new version with its own merkle root.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) []byte
	CacheWrap() KVCacheWrap
	Commit() CommitID
	// LoadLatestVersion restores the newest complete version, which may be
	// older than the last attempted commit after a crash.
	LoadLatestVersion() error
	LatestVersion() CommitID
}

// CommitID identifies a committed version by height and root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}
