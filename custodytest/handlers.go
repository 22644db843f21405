package custodytest

import "github.com/iov-one/custody"

// Handler returns canned results and counts its calls.
//
// WriteKey, when set, is stored before returning so a test can tell whether
// the write survived the surrounding decorators. Panic makes both methods
// panic after that write.
type Handler struct {
	calls

	CheckResult   custody.CheckResult
	CheckErr      error
	DeliverResult custody.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte
	Panic      interface{}
}

var _ custody.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	h.check++
	h.run(db)
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	h.deliver++
	h.run(db)
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) run(db custody.KVStore) {
	if h.WriteKey != nil {
		db.Set(h.WriteKey, h.WriteValue)
	}
	if h.Panic != nil {
		panic(h.Panic)
	}
}
