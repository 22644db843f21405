package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where token accounts are stored.
const BucketName = "tacct"

// Account holds a balance of a single asset.
type Account struct {
	Owner  custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	Asset  string          `protobuf:"bytes,2,opt,name=asset,proto3" json:"asset"`
	Amount uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	// Size is the number of extra bytes reserved by the account, on top
	// of AccountOverhead.
	Size uint32 `protobuf:"varint,4,opt,name=size,proto3" json:"size"`
}

func (a *Account) Reset()         { *a = Account{} }
func (a *Account) String() string { return proto.CompactTextString(a) }
func (*Account) ProtoMessage()    {}

var _ orm.Model = (*Account)(nil)

// IsData returns true for accounts that reserve storage but hold no tokens.
func (a *Account) IsData() bool {
	return a.Asset == ""
}

func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	if a.IsData() {
		if a.Amount != 0 {
			errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "data account holds no tokens"))
		}
	} else if !coin.IsCC(a.Asset) {
		errs = errors.Append(errs, errors.Field("Asset", errors.ErrCurrency, "invalid ticker %q", a.Asset))
	}
	return errs
}

// NewAccountBucket returns a bucket storing accounts under their address,
// indexed by owner.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Account{},
		orm.WithIndex("owner", ownerIndex, false),
	)
}

func ownerIndex(m orm.Model) ([]byte, error) {
	a, ok := m.(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return a.Owner, nil
}

// AssociatedCondition returns the condition that controls the conventional
// account of given owner for given asset.
func AssociatedCondition(owner custody.Address, asset string) (custody.Condition, error) {
	c, _, err := custody.DeriveCondition("token", "assoc", owner, []byte(asset))
	return c, err
}

// AssociatedAddress returns the address of the conventional account of
// given owner for given asset.
func AssociatedAddress(owner custody.Address, asset string) (custody.Address, error) {
	c, err := AssociatedCondition(owner, asset)
	if err != nil {
		return nil, err
	}
	return c.Address(), nil
}
