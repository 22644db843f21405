package custodytest

import "github.com/iov-one/custody"

// Tx carries a single message. Err, when set, is returned instead of it.
// Test transactions and messages reach handlers already decoded and are
// never serialized.
type Tx struct {
	Msg custody.Msg
	Err error
}

var _ custody.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (custody.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return "test tx " + custody.GetPath(tx) }
func (*Tx) ProtoMessage()     {}

// Msg routes to RoutePath and keeps the raw transaction in Serialized.
// Err fails validation.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ custody.Msg = (*Msg)(nil)

func (m *Msg) Path() string    { return m.RoutePath }
func (m *Msg) Validate() error { return m.Err }

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return m.RoutePath }
func (*Msg) ProtoMessage()    {}
