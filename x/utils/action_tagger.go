package utils

import (
	"github.com/iov-one/custody"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// ActionKey tags every delivered tx with the path of its message.
	ActionKey = "action"
	// RecordKey tags a delivered tx with the hex address of the record it
	// operated on, when the message names one.
	RecordKey = "record"
)

// recordReferrer is implemented by messages acting on an existing record,
// like escrow update, refund and take.
type recordReferrer interface {
	RecordAddress() custody.Address
}

// ActionTagger indexes successful deliveries so clients can subscribe to,
// for example, every take of a single escrow.
type ActionTagger struct{}

var _ custody.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	// An undecodable message must not reach the handler.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, tag(ActionKey, msg.Path()))
	if r, ok := msg.(recordReferrer); ok {
		res.Tags = append(res.Tags, tag(RecordKey, r.RecordAddress().String()))
	}
	return res, nil
}

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}
