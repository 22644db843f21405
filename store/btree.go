package store

import (
	"bytes"

	"github.com/google/btree"
)

// DefaultFreeListSize is the number of btree nodes kept for reuse across
// the caches of one stack.
const DefaultFreeListSize = btree.DefaultFreeListSize

// BatchKVStore is a store that can queue writes back into itself.
type BatchKVStore interface {
	KVStore
	NewBatch() Batch
}

// BTreeCacheable gives any BatchKVStore a btree backed CacheWrap. The iavl
// adapter is made cacheable this way.
type BTreeCacheable struct {
	BatchKVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.BatchKVStore, b.NewBatch(), nil)
}

// MemStore is an empty in-memory store for tests and genesis validation.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// ShowOpser lists the writes a store received, in order.
type ShowOpser interface {
	ShowOps() []Op
}

// LogableStore is a MemStore that also records every write.
func LogableStore() (CacheableKVStore, ShowOpser) {
	e := EmptyKVStore{}
	b := NewNonAtomicBatch(e)
	return NewBTreeCacheWrap(e, b, nil), b
}

// BTreeCacheWrap keeps pending writes in a btree, so that reads and range
// scans see them merged with the layer below. Writes reach the layer below
// only through the batch, on Write.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap caches over back. Pass the free list of the parent
// cache to share nodes, or nil for a new one.
func NewBTreeCacheWrap(back ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  back,
		batch: batch,
	}
}

// CacheWrap stacks another cache on this one. Savepoints rely on it.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write pushes all pending writes down and empties the cache.
func (b BTreeCacheWrap) Write() {
	b.batch.Write()
	b.Discard()
}

// Discard drops all pending writes.
func (b BTreeCacheWrap) Discard() {
	// Deleting one by one returns the nodes to the free list.
	for b.bt.DeleteMin() != nil {
	}
	if nb, ok := b.batch.(*NonAtomicBatch); ok {
		nb.ops = nil
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) {
	b.bt.ReplaceOrInsert(entry{key: key, value: value})
	b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) {
	b.bt.ReplaceOrInsert(entry{key: key, deleted: true})
	b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) []byte {
	if e, ok := b.lookup(key); ok {
		return e.value
	}
	return b.back.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) bool {
	if e, ok := b.lookup(key); ok {
		return !e.deleted
	}
	return b.back.Has(key)
}

// lookup returns the pending write of key, if any. A deleted entry has a
// nil value.
func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	it := b.bt.Get(entry{key: key})
	if it == nil {
		return entry{}, false
	}
	return it.(entry), true
}

func (b BTreeCacheWrap) Iterator(start, end []byte) Iterator {
	parent := b.back.Iterator(start, end)
	defer parent.Close()
	return NewSliceIterator(merge(b.pending(start, end), parent, 1))
}

func (b BTreeCacheWrap) ReverseIterator(start, end []byte) Iterator {
	parent := b.back.ReverseIterator(start, end)
	defer parent.Close()
	local := b.pending(start, end)
	for i, j := 0, len(local)-1; i < j; i, j = i+1, j-1 {
		local[i], local[j] = local[j], local[i]
	}
	return NewSliceIterator(merge(local, parent, -1))
}

// pending returns the cached entries within [start, end) in ascending
// order. Nil bounds are open.
func (b BTreeCacheWrap) pending(start, end []byte) []entry {
	var res []entry
	collect := func(it btree.Item) bool {
		res = append(res, it.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(collect)
	case start == nil:
		b.bt.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		b.bt.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		b.bt.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return res
}

// merge interleaves the cached entries with the parent iterator. A cached
// entry wins over the parent value of the same key, and a deleted entry
// hides it. direction is 1 for ascending and -1 for descending order.
func merge(local []entry, parent Iterator, direction int) []Model {
	var res []Model
	emit := func(e entry) {
		if !e.deleted {
			res = append(res, Model{Key: e.key, Value: e.value})
		}
	}
	i := 0
	for parent.Valid() {
		pk := parent.Key()
		if i < len(local) {
			switch cmp := bytes.Compare(local[i].key, pk) * direction; {
			case cmp < 0:
				emit(local[i])
				i++
				continue
			case cmp == 0:
				emit(local[i])
				i++
				parent.Next()
				continue
			}
		}
		res = append(res, Model{Key: pk, Value: parent.Value()})
		parent.Next()
	}
	for ; i < len(local); i++ {
		emit(local[i])
	}
	return res
}

// entry is a pending write ordered by key.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
