package orm

import (
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Model is impelemented by any entity that can be stored using ModelBucket.
type Model interface {
	custody.Persistent
	Validate() error
}

// ModelBucket is implemented by buckets that operates on Models.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db custody.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns true if an entity with given primary key exists.
	Has(db custody.ReadOnlyKVStore, key []byte) bool

	// ByIndex returns all keys of the entities that are indexed under
	// given value by the named index.
	ByIndex(db custody.ReadOnlyKVStore, indexName string, key []byte) ([][]byte, error)

	// Put saves given model in the database. Before inserting into the
	// database, model is validated using its Validate method.
	Put(db custody.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db custody.KVStore, key []byte) error

	// Register registers this buckets content to be accessible via query
	// requests under the given name.
	Register(name string, r custody.QueryRouter)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, indexer, unique)
	}
}

// NewModelBucket returns a ModelBucket instance. Given model is used only
// to learn the type of the stored entities.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	mb := &modelBucket{
		b:     NewBucket(name),
		model: tp.Elem(),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.model, dest)
	}
	raw := db.Get(mb.b.DBKey(key))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := custody.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

func (mb *modelBucket) Has(db custody.ReadOnlyKVStore, key []byte) bool {
	return db.Has(mb.b.DBKey(key))
}

func (mb *modelBucket) ByIndex(db custody.ReadOnlyKVStore, indexName string, key []byte) ([][]byte, error) {
	idx, ok := mb.b.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown index %q", indexName)
	}
	return idx.Refs(db, key)
}

func (mb *modelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.b.name)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := custody.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if err := mb.b.updateIndexes(db, key, prev, m); err != nil {
		return errors.Wrap(err, "cannot update indexes")
	}
	db.Set(mb.b.DBKey(key), raw)
	return nil
}

func (mb *modelBucket) Delete(db custody.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	if err := mb.b.updateIndexes(db, key, prev, nil); err != nil {
		return errors.Wrap(err, "cannot update indexes")
	}
	db.Delete(mb.b.DBKey(key))
	return nil
}

// load returns the stored entity or nil if it does not exist.
func (mb *modelBucket) load(db custody.ReadOnlyKVStore, key []byte) (Model, error) {
	raw := db.Get(mb.b.DBKey(key))
	if raw == nil {
		return nil, nil
	}
	m := reflect.New(mb.model).Interface().(Model)
	if err := custody.Unmarshal(raw, m); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal stored entity")
	}
	return m, nil
}

func (mb *modelBucket) Register(name string, r custody.QueryRouter) {
	mb.b.Register(name, r)
}
