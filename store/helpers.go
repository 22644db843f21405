package store

import "fmt"

// SliceIterator walks a pre-sorted list of models. The btree cache and the
// iavl adapter both materialize their ranges into one.
type SliceIterator struct {
	data []Model
	pos  int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.data)
}

// Next advances the cursor. It panics once the end was passed.
func (s *SliceIterator) Next() {
	s.current()
	s.pos++
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) Close() {
	s.data, s.pos = nil, 0
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic(fmt.Sprintf("iterator position %d out of %d", s.pos, len(s.data)))
	}
	return s.data[s.pos]
}

// EmptyKVStore holds nothing and drops every write. It is the bottom layer
// of throwaway caches.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) []byte                    { return nil }
func (EmptyKVStore) Has([]byte) bool                      { return false }
func (EmptyKVStore) Set(_, _ []byte)                      {}
func (EmptyKVStore) Delete([]byte)                        {}
func (EmptyKVStore) Iterator(_, _ []byte) Iterator        { return NewSliceIterator(nil) }
func (EmptyKVStore) ReverseIterator(_, _ []byte) Iterator { return NewSliceIterator(nil) }

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// Op is a single recorded write or removal.
type Op struct {
	key   []byte
	value []byte
	del   bool
}

// SetOp records a write of value under key.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp records the removal of key.
func DelOp(key []byte) Op {
	return Op{key: key, del: true}
}

// Apply replays the operation on out.
func (o Op) Apply(out SetDeleter) {
	if o.del {
		out.Delete(o.key)
		return
	}
	out.Set(o.key, o.value)
}

func (o Op) String() string {
	if o.del {
		return fmt.Sprintf("del %X", o.key)
	}
	return fmt.Sprintf("set %X=%X", o.key, o.value)
}

// NonAtomicBatch queues writes and replays them in order on Write. It is
// only safe for in-memory targets where a partial replay cannot happen.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) {
	b.ops = append(b.ops, SetOp(key, value))
}

func (b *NonAtomicBatch) Delete(key []byte) {
	b.ops = append(b.ops, DelOp(key))
}

// Write flushes the queue into the target and empties it.
func (b *NonAtomicBatch) Write() {
	ops := b.ops
	b.ops = nil
	for _, op := range ops {
		op.Apply(b.out)
	}
}

// ShowOps lists the queued writes. Tests use it to inspect a LogableStore.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
