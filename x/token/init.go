package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const optKey = "token"

// GenesisAccount declares a funded associated account.
type GenesisAccount struct {
	Owner  custody.Address `json:"owner"`
	Asset  string          `json:"asset"`
	Amount uint64          `json:"amount"`
}

// Initializer loads the configuration and the initial token accounts from
// the genesis file. Genesis accounts do not pay a storage deposit.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, pkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := Controller{accounts: NewAccountBucket()}
	for i, a := range accts {
		addr, err := AssociatedAddress(a.Owner, a.Asset)
		if err != nil {
			return err
		}
		if ctrl.accounts.Has(db, addr) {
			return errors.Wrapf(errors.ErrDuplicate, "account %d", i)
		}
		acc := Account{Owner: a.Owner, Asset: a.Asset}
		if acc.IsData() {
			return errors.Wrapf(errors.ErrCurrency, "account %d: asset required", i)
		}
		if err := ctrl.accounts.Put(db, addr, &acc); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if a.Amount == 0 {
			continue
		}
		if err := ctrl.mint(db, addr, a.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
