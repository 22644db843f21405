package x

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Authenticator tells a handler which conditions the current transaction
// fulfils. Handlers receive one in their constructor and never look at
// signatures directly.
type Authenticator interface {
	GetConditions(custody.Context) []custody.Condition
	HasAddress(custody.Context, custody.Address) bool
}

// MultiAuth accepts whatever any of its members accepts.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth combines signature based and derived authentication, in that
// order.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

func (m MultiAuth) GetConditions(ctx custody.Context) []custody.Condition {
	var all []custody.Condition
	for _, a := range m {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m MultiAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// AnyControls reports whether one of conds owns addr.
func AnyControls(conds []custody.Condition, addr custody.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}

// RequireSigner fails with ErrUnauthorized unless addr authorized the
// transaction. role names the party in the error message.
func RequireSigner(ctx custody.Context, auth Authenticator, addr custody.Address, role string) error {
	if auth.HasAddress(ctx, addr) {
		return nil
	}
	return errors.Wrapf(errors.ErrUnauthorized, "%s signature missing", role)
}
