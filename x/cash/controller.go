package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

// Controller is the functionality needed by cash.Handler and
// the token ledger, which pays account deposits from wallets.
type Controller interface {
	MoveCoins(db custody.KVStore, src, dest custody.Address, amount coin.Coin) error
	IssueCoins(db custody.KVStore, dest custody.Address, amount coin.Coin) error
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (coin.Coins, error)
}

// BaseController is a simple implementation of controller
// wallet must return something that supports AsSet
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by given address.
func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (coin.Coins, error) {
	var w Wallet
	if err := c.bucket.One(db, addr, &w); err != nil {
		return nil, errors.Wrap(err, "wallet")
	}
	return w.Coins, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db custody.KVStore, src, dest custody.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "cannot move coins to the same wallet")
	}

	var sender Wallet
	if err := c.bucket.One(db, src, &sender); err != nil {
		return errors.Wrap(err, "source wallet")
	}
	left, err := sender.Coins.Subtract(amount)
	if err != nil {
		return errors.Wrap(err, "source wallet")
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return errors.Wrap(err, "destination wallet")
	}

	sender.Coins = left
	if err := c.bucket.Save(db, src, &sender); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}

// IssueCoins adds the given amount of coins to the destination wallet.
// It is only used when the chain is initialized.
func (c BaseController) IssueCoins(db custody.KVStore, dest custody.Address, amount coin.Coin) error {
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}
