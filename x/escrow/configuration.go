package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const pkg = "escrow"

// DefaultMaxExpiryHorizon is used until the configuration is set.
const DefaultMaxExpiryHorizon = 100000

// Configuration of the escrow extension.
type Configuration struct {
	Owner custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	// MaxExpiryHorizon is the number of seconds an expiry may be set ahead
	// of the current block time.
	MaxExpiryHorizon int64 `protobuf:"varint,2,opt,name=max_expiry_horizon,proto3" json:"max_expiry_horizon"`
}

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() custody.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	var errs error
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	if c.MaxExpiryHorizon <= 0 {
		errs = errors.Append(errs, errors.Field("MaxExpiryHorizon", errors.ErrInput, "must be positive"))
	}
	return errs
}

// loadConf returns the stored configuration or the default one if none
// was saved yet.
func loadConf(db custody.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, pkg, &conf); {
	case errors.ErrNotFound.Is(err):
		return &Configuration{MaxExpiryHorizon: DefaultMaxExpiryHorizon}, nil
	case err != nil:
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
