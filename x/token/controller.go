package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
)

// Controller implements all token account operations. Each operation
// authenticates the parties it acts for through given authenticator.
type Controller struct {
	accounts orm.ModelBucket
	cash     cash.Controller
}

// NewController returns a controller paying account deposits through given
// wallet controller.
func NewController(cashctrl cash.Controller) Controller {
	return Controller{
		accounts: NewAccountBucket(),
		cash:     cashctrl,
	}
}

// Account returns the account stored under given address.
func (c Controller) Account(db custody.ReadOnlyKVStore, addr custody.Address) (*Account, error) {
	var a Account
	if err := c.accounts.One(db, addr, &a); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &a, nil
}

// CreateAccount opens a new account at given address. Both the payer and the
// address itself must authorize the creation. The storage deposit is moved
// from the payer wallet into the wallet of the new account.
// An empty asset opens a data account.
func (c Controller) CreateAccount(
	ctx custody.Context,
	db custody.KVStore,
	auth x.Authenticator,
	addr, owner, payer custody.Address,
	asset string,
	size uint32,
) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if asset != "" && !coin.IsCC(asset) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", asset)
	}
	if err := x.RequireSigner(ctx, auth, payer, "payer"); err != nil {
		return err
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "account %s did not authorize creation", addr)
	}
	if c.accounts.Has(db, addr) {
		return errors.Wrapf(errors.ErrAccountInUse, "account %s", addr)
	}

	deposit, err := StorageDeposit(db, size)
	if err != nil {
		return err
	}
	if deposit.IsPositive() {
		if err := c.cash.MoveCoins(db, payer, addr, deposit); err != nil {
			return errors.Wrap(err, "storage deposit")
		}
	}

	acc := Account{Owner: owner, Asset: asset, Size: size}
	if err := c.accounts.Put(db, addr, &acc); err != nil {
		return errors.Wrap(err, "cannot save account")
	}
	return nil
}

// Transfer moves amount of asset between two accounts of that asset. The
// owner of the source account must authorize it.
func (c Controller) Transfer(
	ctx custody.Context,
	db custody.KVStore,
	auth x.Authenticator,
	src, dst custody.Address,
	asset string,
	amount uint64,
) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}
	if src.Equals(dst) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same account")
	}
	from, err := c.Account(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	to, err := c.Account(db, dst)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if from.Asset != asset || to.Asset != asset || from.IsData() {
		return errors.Wrapf(errors.ErrCurrency, "transfer of %s from %s to %s account", asset, from.Asset, to.Asset)
	}
	if err := x.RequireSigner(ctx, auth, from.Owner, "source owner"); err != nil {
		return err
	}

	sent, err := coin.NewCoin(from.Amount, asset).Subtract(coin.NewCoin(amount, asset))
	if err != nil {
		return err
	}
	received, err := coin.NewCoin(to.Amount, asset).Add(coin.NewCoin(amount, asset))
	if err != nil {
		return err
	}
	from.Amount = sent.Amount
	to.Amount = received.Amount

	if err := c.accounts.Put(db, src, from); err != nil {
		return errors.Wrap(err, "cannot save source")
	}
	if err := c.accounts.Put(db, dst, to); err != nil {
		return errors.Wrap(err, "cannot save destination")
	}
	return nil
}

// CloseAccount removes an empty account. The owner must authorize it. The
// storage deposit is released to the refundTo wallet.
func (c Controller) CloseAccount(
	ctx custody.Context,
	db custody.KVStore,
	auth x.Authenticator,
	addr, refundTo custody.Address,
) error {
	acc, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if err := x.RequireSigner(ctx, auth, acc.Owner, "owner"); err != nil {
		return err
	}
	if acc.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "account holds %d %s", acc.Amount, acc.Asset)
	}
	if err := refundTo.Validate(); err != nil {
		return errors.Wrap(err, "refund address")
	}
	if err := c.accounts.Delete(db, addr); err != nil {
		return err
	}

	deposit, err := c.cash.Balance(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil
	case err != nil:
		return err
	}
	for _, d := range deposit {
		if err := c.cash.MoveCoins(db, addr, refundTo, *d); err != nil {
			return errors.Wrap(err, "release deposit")
		}
	}
	return nil
}

// mint credits tokens to an existing account. Only genesis can create
// tokens.
func (c Controller) mint(db custody.KVStore, addr custody.Address, amount uint64) error {
	acc, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if acc.IsData() {
		return errors.Wrap(errors.ErrCurrency, "data account")
	}
	total, err := coin.NewCoin(acc.Amount, acc.Asset).Add(coin.NewCoin(amount, acc.Asset))
	if err != nil {
		return err
	}
	acc.Amount = total.Amount
	return c.accounts.Put(db, addr, acc)
}
