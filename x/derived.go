package x

import (
	"context"

	"github.com/iov-one/custody"
)

type contextKey int

const (
	contextKeyDerived contextKey = iota
)

// WithDerived returns a context that presents given condition as fulfilled.
// Only conditions that cannot be controlled by a private key are accepted,
// anything else is ignored. Handlers use it to act on behalf of an address
// they derived.
//
//	ctx = x.WithDerived(ctx, authority)
//	err = ledger.Transfer(ctx, db, auth, vault, dest, asset, amount)
func WithDerived(ctx custody.Context, cond custody.Condition) custody.Context {
	if !cond.Derived() {
		return ctx
	}
	prev, _ := ctx.Value(contextKeyDerived).([]custody.Condition)
	conds := make([]custody.Condition, 0, len(prev)+1)
	conds = append(conds, prev...)
	conds = append(conds, cond)
	return context.WithValue(ctx, contextKeyDerived, conds)
}

// DerivedAuth authenticates conditions attached with WithDerived.
type DerivedAuth struct{}

var _ Authenticator = DerivedAuth{}

// GetConditions returns all derived conditions held by the context.
func (DerivedAuth) GetConditions(ctx custody.Context) []custody.Condition {
	val, _ := ctx.Value(contextKeyDerived).([]custody.Condition)
	return val
}

// HasAddress returns true if a held derived condition hashes into given address.
func (a DerivedAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	return AnyControls(a.GetConditions(ctx), addr)
}
