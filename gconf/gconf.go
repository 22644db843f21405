package gconf

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Configuration is the stored entity of one package. Validate runs before
// every write.
type Configuration interface {
	custody.Persistent
	Validate() error
}

// Keys share the "_c:" prefix with the chain id.
func dbKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates src and stores it as the configuration of pkg.
func Save(db custody.KVStore, pkg string, src Configuration) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s configuration", pkg)
	}
	raw, err := custody.Marshal(src)
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	db.Set(dbKey(pkg), raw)
	return nil
}

// Load reads the configuration of pkg into dst. A package that was never
// configured gives ErrNotFound.
func Load(db custody.ReadOnlyKVStore, pkg string, dst custody.Persistent) error {
	raw := db.Get(dbKey(pkg))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := custody.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "unmarshal %s configuration", pkg)
	}
	return nil
}

// InitConfig saves the genesis section conf.<pkg> as the configuration of
// pkg. A missing section gives ErrNotFound so that callers can fall back to
// a default.
//
//	{"conf": {"escrow": {"owner": "...", "max_expiry_horizon": 100000}}}
func InitConfig(db custody.KVStore, opts custody.Options, pkg string, conf Configuration) error {
	var sections custody.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if _, ok := sections[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration in genesis", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "read %s configuration: %s", pkg, err)
	}
	return Save(db, pkg, conf)
}
