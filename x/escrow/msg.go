package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

var (
	_ custody.Msg    = (*MakeMsg)(nil)
	_ custody.Msg    = (*UpdateMsg)(nil)
	_ custody.Msg    = (*RefundMsg)(nil)
	_ custody.Msg    = (*TakeMsg)(nil)
	_ gconf.PatchMsg = (*UpdateConfigurationMsg)(nil)
)

const (
	pathMake                = "escrow/make"
	pathUpdate              = "escrow/update"
	pathRefund              = "escrow/refund"
	pathTake                = "escrow/take"
	pathUpdateConfiguration = "escrow/update_configuration"
)

// MakeMsg opens a new offer. DepositAmount of MakerAsset is moved from the
// Source token account into the vault.
type MakeMsg struct {
	Seed          uint64          `protobuf:"varint,1,opt,name=seed,proto3"`
	Maker         custody.Address `protobuf:"bytes,2,opt,name=maker,proto3"`
	Source        custody.Address `protobuf:"bytes,3,opt,name=source,proto3"`
	MakerAsset    string          `protobuf:"bytes,4,opt,name=maker_asset,proto3"`
	TakerAsset    string          `protobuf:"bytes,5,opt,name=taker_asset,proto3"`
	DepositAmount uint64          `protobuf:"varint,6,opt,name=deposit_amount,proto3"`
	ReceiveAmount uint64          `protobuf:"varint,7,opt,name=receive_amount,proto3"`
	// Expiry is an absolute time, zero for an offer that never expires.
	Expiry custody.UnixTime `protobuf:"varint,8,opt,name=expiry,proto3"`
}

func (m *MakeMsg) Reset()         { *m = MakeMsg{} }
func (m *MakeMsg) String() string { return proto.CompactTextString(m) }
func (*MakeMsg) ProtoMessage()    {}

func (MakeMsg) Path() string {
	return pathMake
}

func (m *MakeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Maker", m.Maker.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "MakerAsset", validateTicker(m.MakerAsset))
	errs = errors.AppendField(errs, "TakerAsset", validateTicker(m.TakerAsset))
	if m.DepositAmount == 0 {
		errs = errors.Append(errs, errors.Field("DepositAmount", errors.ErrAmount, "must be positive"))
	}
	if m.ReceiveAmount == 0 {
		errs = errors.Append(errs, errors.Field("ReceiveAmount", errors.ErrAmount, "must be positive"))
	}
	errs = errors.AppendField(errs, "Expiry", m.Expiry.Validate())
	return errs
}

// UpdateMsg changes the terms of an open offer. The deposit cannot change.
type UpdateMsg struct {
	Escrow        custody.Address  `protobuf:"bytes,1,opt,name=escrow,proto3"`
	TakerAsset    string           `protobuf:"bytes,2,opt,name=taker_asset,proto3"`
	ReceiveAmount uint64           `protobuf:"varint,3,opt,name=receive_amount,proto3"`
	Expiry        custody.UnixTime `protobuf:"varint,4,opt,name=expiry,proto3"`
}

func (m *UpdateMsg) Reset()         { *m = UpdateMsg{} }
func (m *UpdateMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateMsg) ProtoMessage()    {}

func (UpdateMsg) Path() string {
	return pathUpdate
}

func (m *UpdateMsg) RecordAddress() custody.Address {
	return m.Escrow
}

func (m *UpdateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	errs = errors.AppendField(errs, "TakerAsset", validateTicker(m.TakerAsset))
	if m.ReceiveAmount == 0 {
		errs = errors.Append(errs, errors.Field("ReceiveAmount", errors.ErrAmount, "must be positive"))
	}
	errs = errors.AppendField(errs, "Expiry", m.Expiry.Validate())
	return errs
}

// RefundMsg cancels an offer and returns the deposit to the Destination
// token account of the maker.
type RefundMsg struct {
	Escrow      custody.Address `protobuf:"bytes,1,opt,name=escrow,proto3"`
	Destination custody.Address `protobuf:"bytes,2,opt,name=destination,proto3"`
}

func (m *RefundMsg) Reset()         { *m = RefundMsg{} }
func (m *RefundMsg) String() string { return proto.CompactTextString(m) }
func (*RefundMsg) ProtoMessage()    {}

func (RefundMsg) Path() string {
	return pathRefund
}

func (m *RefundMsg) RecordAddress() custody.Address {
	return m.Escrow
}

func (m *RefundMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	return errs
}

// TakeMsg accepts an offer. The taker pays Amount of Asset from Source to
// the MakerDestination account and receives the deposit into Destination.
// Asset and Amount must match the current terms of the escrow, so that a
// concurrent update cannot change the price the taker agreed to.
type TakeMsg struct {
	Escrow           custody.Address `protobuf:"bytes,1,opt,name=escrow,proto3"`
	Taker            custody.Address `protobuf:"bytes,2,opt,name=taker,proto3"`
	Source           custody.Address `protobuf:"bytes,3,opt,name=source,proto3"`
	Destination      custody.Address `protobuf:"bytes,4,opt,name=destination,proto3"`
	MakerDestination custody.Address `protobuf:"bytes,5,opt,name=maker_destination,proto3"`
	Asset            string          `protobuf:"bytes,6,opt,name=asset,proto3"`
	Amount           uint64          `protobuf:"varint,7,opt,name=amount,proto3"`
}

func (m *TakeMsg) Reset()         { *m = TakeMsg{} }
func (m *TakeMsg) String() string { return proto.CompactTextString(m) }
func (*TakeMsg) ProtoMessage()    {}

func (TakeMsg) Path() string {
	return pathTake
}

func (m *TakeMsg) RecordAddress() custody.Address {
	return m.Escrow
}

func (m *TakeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	errs = errors.AppendField(errs, "Taker", m.Taker.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "MakerDestination", m.MakerDestination.Validate())
	errs = errors.AppendField(errs, "Asset", validateTicker(m.Asset))
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	return errs
}

// UpdateConfigurationMsg patches the escrow configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfiguration
}

func (m *UpdateConfigurationMsg) GetPatch() gconf.OwnedConfig {
	if m.Patch == nil {
		return nil
	}
	return m.Patch
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	if len(m.Patch.Owner) != 0 {
		if err := m.Patch.Owner.Validate(); err != nil {
			return errors.Field("Patch.Owner", err, "invalid")
		}
	}
	if m.Patch.MaxExpiryHorizon < 0 {
		return errors.Field("Patch.MaxExpiryHorizon", errors.ErrInput, "negative")
	}
	return nil
}

func validateTicker(ticker string) error {
	if !coin.IsCC(ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
	}
	return nil
}
