package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/x"
)

const (
	createAccountCost int64 = 300
	sendCost          int64 = 100
	closeAccountCost  int64 = 100
)

// RegisterQuery registers token accounts under "/accounts".
func RegisterQuery(qr custody.QueryRouter) {
	NewAccountBucket().Register("accounts", qr)
}

// RegisterRoutes registers handlers for all token messages.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, ctrl Controller) {
	auth = x.ChainAuth(auth, x.DerivedAuth{})
	r.Handle(&CreateAccountMsg{}, createAccountHandler{auth: auth, ctrl: ctrl})
	r.Handle(&SendMsg{}, sendHandler{auth: auth, ctrl: ctrl})
	r.Handle(&CloseAccountMsg{}, closeAccountHandler{auth: auth, ctrl: ctrl})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(pkg, &Configuration{}, auth))
}

type createAccountHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = createAccountHandler{}

func (h createAccountHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg CreateAccountMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Payer, "payer"); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: createAccountCost}, nil
}

// Deliver opens the associated account. The handler is the authority of
// associated addresses, so it presents the derived condition itself.
func (h createAccountHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg CreateAccountMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	cond, err := AssociatedCondition(msg.Owner, msg.Asset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	addr := cond.Address()
	ctx = x.WithDerived(ctx, cond)
	if err := h.ctrl.CreateAccount(ctx, db, h.auth, addr, msg.Owner, msg.Payer, msg.Asset, 0); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Data: addr}, nil
}

type sendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = sendHandler{}

func (h sendHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg SendMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &custody.CheckResult{GasAllocated: sendCost}, nil
}

func (h sendHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg SendMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Transfer(ctx, db, h.auth, msg.Source, msg.Destination, msg.Asset, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

type closeAccountHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = closeAccountHandler{}

func (h closeAccountHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg CloseAccountMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &custody.CheckResult{GasAllocated: closeAccountCost}, nil
}

func (h closeAccountHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg CloseAccountMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.CloseAccount(ctx, db, h.auth, msg.Account, msg.Destination); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}
