/*
Package orm stores typed models in prefixed sections of the state.

Every bucket holds a single model type under "<name>:<key>" and may keep
secondary indexes next to it. The escrow bucket, for example, is keyed by
the record address and indexed by maker and by requested asset. Buckets and
their indexes answer ABCI queries directly.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is the untyped storage layer under a ModelBucket.
type Bucket struct {
	name    string
	prefix  []byte
	indexes map[string]*compactIndex
}

var _ custody.QueryHandler = Bucket{}

// NewBucket panics on a name that is not 3 to 10 lowercase letters or
// underscores.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":")}
}

func (b Bucket) Name() string {
	return b.name
}

// Register serves the bucket at "/<path>" and each index at
// "/<path>/<index>". An empty path uses the bucket name.
func (b Bucket) Register(path string, r custody.QueryRouter) {
	if path == "" {
		path = b.name
	}
	root := "/" + path
	r.Register(root, b)
	for name, idx := range b.indexes {
		r.Register(root+"/"+name, idx)
	}
}

// Query looks up a single key, or every key under a prefix with the
// "prefix" modifier. A missing key is an empty result.
func (b Bucket) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		key := b.DBKey(data)
		if value := db.Get(key); value != nil {
			return []custody.Model{custody.Pair(key, value)}, nil
		}
		return nil, nil
	case custody.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data)), nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// DBKey prepends the bucket prefix. The result never shares memory with
// key or with a previous result.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	out = append(out, b.prefix...)
	return append(out, key...)
}

// WithIndex returns a copy of b that also maintains the named index.
// Declaring the same name twice panics.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("Index %s registered twice", name))
	}
	next := make(map[string]*compactIndex, len(b.indexes)+1)
	for n, idx := range b.indexes {
		next[n] = idx
	}
	next[name] = newCompactIndex(b.name+"_"+name, indexer, unique, b.DBKey)
	b.indexes = next
	return b
}

// updateIndexes moves key from the index values of prev to those of next.
// Either may be nil. It runs before the model itself is written.
func (b Bucket) updateIndexes(db custody.KVStore, key []byte, prev, next Model) error {
	for name, idx := range b.indexes {
		if err := idx.Update(db, key, prev, next); err != nil {
			return errors.Wrapf(err, "index %s", name)
		}
	}
	return nil
}

func queryPrefix(db custody.ReadOnlyKVStore, prefix []byte) []custody.Model {
	it := db.Iterator(prefixRange(prefix))
	defer it.Close()

	var res []custody.Model
	for ; it.Valid(); it.Next() {
		res = append(res, custody.Pair(it.Key(), it.Value()))
	}
	return res
}

// prefixRange returns the [start, end) range covering every key that starts
// with prefix. end is nil when no upper bound exists, as for 0xFF...FF.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}
