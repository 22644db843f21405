package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

var (
	_ custody.Msg    = (*CreateAccountMsg)(nil)
	_ custody.Msg    = (*SendMsg)(nil)
	_ custody.Msg    = (*CloseAccountMsg)(nil)
	_ gconf.PatchMsg = (*UpdateConfigurationMsg)(nil)
)

const (
	pathCreateAccount       = "token/create_account"
	pathSend                = "token/send"
	pathCloseAccount        = "token/close_account"
	pathUpdateConfiguration = "token/update_configuration"
)

// CreateAccountMsg opens the associated account of Owner for Asset. The
// Payer covers the storage deposit.
type CreateAccountMsg struct {
	Payer custody.Address `protobuf:"bytes,1,opt,name=payer,proto3"`
	Owner custody.Address `protobuf:"bytes,2,opt,name=owner,proto3"`
	Asset string          `protobuf:"bytes,3,opt,name=asset,proto3"`
}

func (m *CreateAccountMsg) Reset()         { *m = CreateAccountMsg{} }
func (m *CreateAccountMsg) String() string { return proto.CompactTextString(m) }
func (*CreateAccountMsg) ProtoMessage()    {}

func (CreateAccountMsg) Path() string {
	return pathCreateAccount
}

func (m *CreateAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if !coin.IsCC(m.Asset) {
		errs = errors.Append(errs, errors.Field("Asset", errors.ErrCurrency, "invalid ticker %q", m.Asset))
	}
	return errs
}

// SendMsg transfers tokens between two accounts of the same asset.
type SendMsg struct {
	Source      custody.Address `protobuf:"bytes,1,opt,name=source,proto3"`
	Destination custody.Address `protobuf:"bytes,2,opt,name=destination,proto3"`
	Asset       string          `protobuf:"bytes,3,opt,name=asset,proto3"`
	Amount      uint64          `protobuf:"varint,4,opt,name=amount,proto3"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

func (SendMsg) Path() string {
	return pathSend
}

func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if !coin.IsCC(m.Asset) {
		errs = errors.Append(errs, errors.Field("Asset", errors.ErrCurrency, "invalid ticker %q", m.Asset))
	}
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	return errs
}

// CloseAccountMsg closes an empty account and releases its storage deposit
// to the Destination wallet.
type CloseAccountMsg struct {
	Account     custody.Address `protobuf:"bytes,1,opt,name=account,proto3"`
	Destination custody.Address `protobuf:"bytes,2,opt,name=destination,proto3"`
}

func (m *CloseAccountMsg) Reset()         { *m = CloseAccountMsg{} }
func (m *CloseAccountMsg) String() string { return proto.CompactTextString(m) }
func (*CloseAccountMsg) ProtoMessage()    {}

func (CloseAccountMsg) Path() string {
	return pathCloseAccount
}

func (m *CloseAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	return errs
}

// UpdateConfigurationMsg patches the token configuration. Only non zero
// fields of the Patch are applied.
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
	return errors.Wrap(m.Patch.Validate(), "patch")
}
