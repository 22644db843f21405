package custodytest

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x"
)

// Auth authenticates a fixed set of conditions no matter what the
// transaction carries. Signer and Signers are combined.
type Auth struct {
	Signer  custody.Condition
	Signers []custody.Condition
}

func (a *Auth) GetConditions(custody.Context) []custody.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]custody.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	return x.AnyControls(a.GetConditions(ctx), addr)
}
