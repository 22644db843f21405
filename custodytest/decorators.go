package custodytest

import "github.com/iov-one/custody"

// Decorator passes calls through unless CheckErr or DeliverErr is set, in
// which case the wrapped handler is never reached. Every call is counted.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ custody.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate puts d in front of h.
func Decorate(h custody.Handler, d custody.Decorator) custody.Handler {
	return decorated{Handler: h, d: d}
}

type decorated struct {
	custody.Handler
	d custody.Decorator
}

func (w decorated) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	return w.d.Check(ctx, db, tx, w.Handler)
}

func (w decorated) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	return w.d.Deliver(ctx, db, tx, w.Handler)
}
