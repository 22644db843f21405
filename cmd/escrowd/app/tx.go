package app

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/token"
)

// Tx is the transaction envelope accepted by the application. It carries
// exactly one message and the signatures authorizing it.
//
// Every message the application understands has its own field. Field
// numbers must never be reused.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	CashSendMsg                  *cash.SendMsg                  `protobuf:"bytes,20,opt,name=cash_send_msg,proto3" json:"cash_send_msg,omitempty"`
	TokenCreateAccountMsg        *token.CreateAccountMsg        `protobuf:"bytes,30,opt,name=token_create_account_msg,proto3" json:"token_create_account_msg,omitempty"`
	TokenSendMsg                 *token.SendMsg                 `protobuf:"bytes,31,opt,name=token_send_msg,proto3" json:"token_send_msg,omitempty"`
	TokenCloseAccountMsg         *token.CloseAccountMsg         `protobuf:"bytes,32,opt,name=token_close_account_msg,proto3" json:"token_close_account_msg,omitempty"`
	TokenUpdateConfigurationMsg  *token.UpdateConfigurationMsg  `protobuf:"bytes,33,opt,name=token_update_configuration_msg,proto3" json:"token_update_configuration_msg,omitempty"`
	EscrowMakeMsg                *escrow.MakeMsg                `protobuf:"bytes,40,opt,name=escrow_make_msg,proto3" json:"escrow_make_msg,omitempty"`
	EscrowUpdateMsg              *escrow.UpdateMsg              `protobuf:"bytes,41,opt,name=escrow_update_msg,proto3" json:"escrow_update_msg,omitempty"`
	EscrowRefundMsg              *escrow.RefundMsg              `protobuf:"bytes,42,opt,name=escrow_refund_msg,proto3" json:"escrow_refund_msg,omitempty"`
	EscrowTakeMsg                *escrow.TakeMsg                `protobuf:"bytes,43,opt,name=escrow_take_msg,proto3" json:"escrow_take_msg,omitempty"`
	EscrowUpdateConfigurationMsg *escrow.UpdateConfigurationMsg `protobuf:"bytes,44,opt,name=escrow_update_configuration_msg,proto3" json:"escrow_update_configuration_msg,omitempty"`
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return proto.CompactTextString(tx) }
func (*Tx) ProtoMessage()     {}

// make sure tx fulfills all interfaces
var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// firstMsgField is the index of the first message field of Tx. All fields
// from there on hold a message pointer.
const firstMsgField = 1

var msgType = reflect.TypeOf((*custody.Msg)(nil)).Elem()

// NewTx returns an unsigned transaction carrying msg.
func NewTx(msg custody.Msg) (*Tx, error) {
	tx := new(Tx)
	if err := tx.SetMsg(msg); err != nil {
		return nil, err
	}
	return tx, nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := custody.Unmarshal(bz, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	var found custody.Msg
	v := reflect.ValueOf(tx).Elem()
	for i := firstMsgField; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.IsNil() {
			continue
		}
		if found != nil {
			return nil, errors.Wrap(errors.ErrDuplicate, "more than one message")
		}
		msg, ok := f.Interface().(custody.Msg)
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "%s is not a message", f.Type())
		}
		found = msg
	}
	if found == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no message")
	}
	return found, nil
}

// SetMsg replaces the message of this transaction.
func (tx *Tx) SetMsg(msg custody.Msg) error {
	if msg == nil || reflect.ValueOf(msg).IsNil() {
		return errors.Wrap(errors.ErrEmpty, "no message")
	}
	v := reflect.ValueOf(tx).Elem()
	target := -1
	for i := firstMsgField; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Type() == reflect.TypeOf(msg) {
			target = i
		}
	}
	if target < 0 {
		return errors.Wrapf(errors.ErrType, "unknown message %q", msg.Path())
	}
	for i := firstMsgField; i < v.NumField(); i++ {
		f := v.Field(i)
		f.Set(reflect.Zero(f.Type()))
	}
	v.Field(target).Set(reflect.ValueOf(msg))
	return nil
}

// GetSignatures returns the signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are not part of them.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	return custody.Marshal(&unsigned)
}

// NewMsg returns an empty message registered under given path.
func NewMsg(path string) (custody.Msg, error) {
	t := reflect.TypeOf(Tx{})
	for i := firstMsgField; i < t.NumField(); i++ {
		ft := t.Field(i).Type
		if !ft.Implements(msgType) {
			continue
		}
		if msg := reflect.New(ft.Elem()).Interface().(custody.Msg); msg.Path() == path {
			return msg, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "message %q", path)
}
