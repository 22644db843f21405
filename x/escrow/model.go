package escrow

import (
	"math"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// BucketName is where we store the escrows.
	BucketName = "esc"

	// RecordSize is the number of bytes reserved for a serialized Escrow.
	// The maker pays the storage deposit for it.
	RecordSize = 128
)

// Escrow holds the terms of a single offer.
type Escrow struct {
	Seed          uint64          `protobuf:"varint,1,opt,name=seed,proto3"`
	Maker         custody.Address `protobuf:"bytes,2,opt,name=maker,proto3"`
	MakerAsset    string          `protobuf:"bytes,3,opt,name=maker_asset,proto3"`
	TakerAsset    string          `protobuf:"bytes,4,opt,name=taker_asset,proto3"`
	DepositAmount uint64          `protobuf:"varint,5,opt,name=deposit_amount,proto3"`
	ReceiveAmount uint64          `protobuf:"varint,6,opt,name=receive_amount,proto3"`
	// Expiry is the last moment the offer can be taken. Zero means never.
	Expiry        custody.UnixTime `protobuf:"varint,7,opt,name=expiry,proto3"`
	AuthorityBump uint32           `protobuf:"varint,8,opt,name=authority_bump,proto3"`
	RecordBump    uint32           `protobuf:"varint,9,opt,name=record_bump,proto3"`
	VaultBump     uint32           `protobuf:"varint,10,opt,name=vault_bump,proto3"`
}

func (e *Escrow) Reset()         { *e = Escrow{} }
func (e *Escrow) String() string { return proto.CompactTextString(e) }
func (*Escrow) ProtoMessage()    {}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is consistent.
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Maker", e.Maker.Validate())
	if !coin.IsCC(e.MakerAsset) {
		errs = errors.Append(errs, errors.Field("MakerAsset", errors.ErrCurrency, "invalid ticker %q", e.MakerAsset))
	}
	if !coin.IsCC(e.TakerAsset) {
		errs = errors.Append(errs, errors.Field("TakerAsset", errors.ErrCurrency, "invalid ticker %q", e.TakerAsset))
	}
	if e.DepositAmount == 0 {
		errs = errors.Append(errs, errors.Field("DepositAmount", errors.ErrAmount, "must be positive"))
	}
	if e.ReceiveAmount == 0 {
		errs = errors.Append(errs, errors.Field("ReceiveAmount", errors.ErrAmount, "must be positive"))
	}
	errs = errors.AppendField(errs, "Expiry", e.Expiry.Validate())
	errs = errors.AppendField(errs, "AuthorityBump", validateBump(e.AuthorityBump))
	errs = errors.AppendField(errs, "RecordBump", validateBump(e.RecordBump))
	errs = errors.AppendField(errs, "VaultBump", validateBump(e.VaultBump))
	return errs
}

// Bumps are stored widened to uint32, only a single byte is meaningful.
func validateBump(bump uint32) error {
	if bump > math.MaxUint8 {
		return errors.Wrapf(errors.ErrInput, "bump %d out of range", bump)
	}
	return nil
}

// IsExpired returns true if the offer cannot be taken at given time.
// Expiry is inclusive, the offer can be taken during its last second.
func (e *Escrow) IsExpired(now custody.UnixTime) bool {
	return e.Expiry != 0 && now > e.Expiry
}

// Record returns the derivation condition of the record address.
func (e *Escrow) Record() custody.Condition {
	return custody.BumpCondition(ext, recordType, uint8(e.RecordBump), e.Maker, custody.EncodeSequence(e.Seed))
}

// Vault returns the derivation condition of the vault address.
func (e *Escrow) Vault() custody.Condition {
	return custody.BumpCondition(ext, vaultType, uint8(e.VaultBump), e.Record().Address())
}

// Authority returns the derivation condition of the authority that owns
// the vault and the record account.
func (e *Escrow) Authority() custody.Condition {
	return custody.BumpCondition(ext, authorityType, uint8(e.AuthorityBump))
}

// NewBucket returns a bucket for escrows keyed by the record address, with
// secondary indexes by maker and by the requested asset.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{},
		orm.WithIndex("maker", makerIndex, false),
		orm.WithIndex("taker_asset", takerAssetIndex, false),
	)
}

func makerIndex(m orm.Model) ([]byte, error) {
	e, ok := m.(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return e.Maker, nil
}

func takerAssetIndex(m orm.Model) ([]byte, error) {
	e, ok := m.(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return []byte(e.TakerAsset), nil
}
