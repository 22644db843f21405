package sigs

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x"
)

type contextKey int

const contextKeySigners contextKey = iota

// Only the decorator of this package may attach signers.
func withSigners(ctx custody.Context, signers []custody.Condition) custody.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate exposes the signers the Decorator verified.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx custody.Context) []custody.Condition {
	signers, _ := ctx.Value(contextKeySigners).([]custody.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	return x.AnyControls(a.GetConditions(ctx), addr)
}
