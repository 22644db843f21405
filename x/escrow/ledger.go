package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/token"
)

// Ledger is the token ledger the escrow keeps its deposits in. Every
// operation authenticates the parties it acts for using given
// authenticator, derived addresses included.
type Ledger interface {
	// CreateAccount opens an account at addr. Both addr and payer must be
	// authenticated. An empty asset opens a data account of given size.
	CreateAccount(ctx custody.Context, db custody.KVStore, auth x.Authenticator, addr, owner, payer custody.Address, asset string, size uint32) error
	// Transfer moves amount of asset between two accounts. The owner of
	// src must be authenticated.
	Transfer(ctx custody.Context, db custody.KVStore, auth x.Authenticator, src, dst custody.Address, asset string, amount uint64) error
	// CloseAccount removes an empty account and releases its storage
	// deposit to refundTo.
	CloseAccount(ctx custody.Context, db custody.KVStore, auth x.Authenticator, addr, refundTo custody.Address) error
	// Account returns the account stored at addr or ErrNotFound.
	Account(db custody.ReadOnlyKVStore, addr custody.Address) (*token.Account, error)
}

var _ Ledger = token.Controller{}
