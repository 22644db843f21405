package utils

import (
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Recovery turns a panic further down the stack into an ErrPanic error. The
// client only learns the code, so the panic value and stack are logged here.
type Recovery struct{}

var _ custody.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (res *custody.CheckResult, err error) {
	defer recoverInto(ctx, "check", &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (res *custody.DeliverResult, err error) {
	defer recoverInto(ctx, "deliver", &err)
	return next.Deliver(ctx, db, tx)
}

// recoverInto must be deferred directly for recover to see the panic.
func recoverInto(ctx custody.Context, phase string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	custody.GetLogger(ctx).Error("handler panic", "phase", phase, "panic", fmt.Sprintf("%+v", *err))
}
