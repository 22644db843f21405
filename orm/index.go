package orm

import (
	"bytes"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const compactIdxPrefix = "_i."

// Indexer calculates the secondary index key for a given model. Returning
// nil means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// compactIndex is an index implementation that stores all indexed entities as
// a set, serialized and stored under single key. This implementation should
// be used only for small sized index collection.
//
// The value is one primary key (unique),
// Or an array of primary keys (!unique).
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ custody.QueryHandler = (*compactIndex)(nil)

func newCompactIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) *compactIndex {
	return &compactIndex{
		name:   name,
		id:     append([]byte(compactIdxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

// indexKey is the full key we store in the db, including prefix.
func (i *compactIndex) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// next == nil means delete
// both == nil is error
func (i *compactIndex) Update(db custody.KVStore, pk []byte, prev, next Model) error {
	if prev == nil && next == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	}

	var prevKey, nextKey []byte
	var err error
	if prev != nil {
		if prevKey, err = i.index(prev); err != nil {
			return err
		}
	}
	if next != nil {
		if nextKey, err = i.index(next); err != nil {
			return err
		}
	}
	if prev != nil && next != nil && bytes.Equal(prevKey, nextKey) {
		return nil
	}
	if prevKey != nil {
		if err := i.remove(db, prevKey, pk); err != nil {
			return err
		}
	}
	if nextKey != nil {
		if err := i.insert(db, nextKey, pk); err != nil {
			return err
		}
	}
	return nil
}

// Refs returns all primary keys stored under given index value.
func (i *compactIndex) Refs(db custody.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	val := db.Get(i.indexKey(index))
	if val == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var refs MultiRef
	if err := custody.Unmarshal(val, &refs); err != nil {
		return nil, errors.Wrap(err, "cannot parse index")
	}
	return refs.Refs, nil
}

func (i *compactIndex) insert(db custody.KVStore, index []byte, pk []byte) error {
	key := i.indexKey(index)
	cur := db.Get(key)

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		db.Set(key, pk)
		return nil
	}

	var refs MultiRef
	if err := custody.Unmarshal(cur, &refs); err != nil {
		return errors.Wrap(err, "cannot parse index")
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	raw, err := custody.Marshal(&refs)
	if err != nil {
		return err
	}
	db.Set(key, raw)
	return nil
}

func (i *compactIndex) remove(db custody.KVStore, index []byte, pk []byte) error {
	key := i.indexKey(index)
	cur := db.Get(key)
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrState, "index %s points elsewhere", i.name)
		}
		db.Delete(key)
		return nil
	}

	var refs MultiRef
	if err := custody.Unmarshal(cur, &refs); err != nil {
		return errors.Wrap(err, "cannot parse index")
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		db.Delete(key)
		return nil
	}
	raw, err := custody.Marshal(&refs)
	if err != nil {
		return err
	}
	db.Set(key, raw)
	return nil
}

// Query handles queries from the QueryRouter. Only exact index value
// lookups are supported and the referenced values are returned.
func (i *compactIndex) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	if mod != custody.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	refs, err := i.Refs(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]custody.Model, 0, len(refs))
	for _, pk := range refs {
		key := i.refKey(pk)
		res = append(res, custody.Pair(key, db.Get(key)))
	}
	return res, nil
}
