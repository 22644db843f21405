package custody

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// Models and messages declare their wire layout with protobuf struct tags,
// as generated code does:
//
//	type Coin struct {
//		Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3"`
//		Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3"`
//	}
//
// Every field of a serialized struct must be tagged. Zero values are
// omitted and unknown fields are skipped on read.

// Marshal serializes p into protobuf wire format.
func Marshal(p Persistent) ([]byte, error) {
	raw, err := proto.Marshal(p)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrState, "marshal %T: %s", p, err)
	}
	return raw, nil
}

// Unmarshal resets p and loads raw into it.
func Unmarshal(raw []byte, p Persistent) error {
	if err := proto.Unmarshal(raw, p); err != nil {
		return errors.Wrapf(errors.ErrInput, "unmarshal %T: %s", p, err)
	}
	return nil
}
