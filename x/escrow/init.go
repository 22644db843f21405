package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

// Initializer stores the escrow configuration. The default configuration
// is used when the genesis does not declare one.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, pkg, &conf); {
	case errors.ErrNotFound.Is(err):
		conf = Configuration{MaxExpiryHorizon: DefaultMaxExpiryHorizon}
		return gconf.Save(db, pkg, &conf)
	case err != nil:
		return errors.Wrap(err, "init config")
	}
	return nil
}
