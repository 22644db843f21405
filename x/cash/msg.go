package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

var _ custody.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves native coins between two wallets.
type SendMsg struct {
	Source      custody.Address `protobuf:"bytes,1,opt,name=source,proto3"`
	Destination custody.Address `protobuf:"bytes,2,opt,name=destination,proto3"`
	Amount      *coin.Coin      `protobuf:"bytes,3,opt,name=amount,proto3"`
	Memo        string          `protobuf:"bytes,4,opt,name=memo,proto3"`
}

func (s *SendMsg) Reset()         { *s = SendMsg{} }
func (s *SendMsg) String() string { return proto.CompactTextString(s) }
func (*SendMsg) ProtoMessage()    {}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var errs error
	if coin.IsEmpty(s.Amount) {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	} else {
		errs = errors.AppendField(errs, "Amount", s.Amount.Validate())
	}
	errs = errors.AppendField(errs, "Source", s.Source.Validate())
	errs = errors.AppendField(errs, "Destination", s.Destination.Validate())
	if len(s.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "too long"))
	}
	return errs
}
