package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const (
	// pkg is the name under which the configuration is stored.
	pkg = "token"

	// AccountOverhead is the number of bytes every account is charged for,
	// regardless of its size.
	AccountOverhead = 128
)

// Configuration of the token ledger.
type Configuration struct {
	Owner custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	// DepositPerByte is the price of a single byte of account storage.
	// Accounts are free when it is not set.
	DepositPerByte *coin.Coin `protobuf:"bytes,2,opt,name=deposit_per_byte,proto3" json:"deposit_per_byte"`
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
	if c.DepositPerByte != nil {
		errs = errors.AppendField(errs, "DepositPerByte", c.DepositPerByte.Validate())
	}
	return errs
}

func loadConf(db custody.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, pkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load token configuration")
	}
	return &conf, nil
}

// StorageDeposit returns the deposit required to open an account reserving
// given number of extra bytes.
func StorageDeposit(db custody.ReadOnlyKVStore, size uint32) (coin.Coin, error) {
	conf, err := loadConf(db)
	if err != nil {
		return coin.Coin{}, err
	}
	if conf.DepositPerByte == nil {
		return coin.Coin{}, nil
	}
	return conf.DepositPerByte.Multiply(AccountOverhead + uint64(size))
}
