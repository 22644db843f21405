package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/commands/server"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/token"
	abci "github.com/tendermint/tendermint/abci/types"
)

const (
	// FeeTicker is the native coin paying for storage deposits.
	FeeTicker = "IOV"

	genesisCoins  = 1000000
	genesisTokens = 1000
)

// genesisAssets are opened and funded for every genesis address so that
// a fresh chain can be used to trade right away.
var genesisAssets = []string{"ETH", "BTC"}

// GenInitOptions produces the app_state for the genesis file. Every
// argument is a hex address to fund. If none is given, a new key is
// generated and printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addrs []custody.Address
	for _, a := range args {
		addr, err := custody.ParseAddress(a)
		if err == nil {
			err = addr.Validate()
		}
		if err != nil {
			return nil, errors.Wrapf(err, "address %q", a)
		}
		addrs = append(addrs, addr)
	}
	if len(addrs) == 0 {
		addr, secret, err := server.GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		fmt.Printf("address: %s\nsecret:  %s\n", addr, hex.EncodeToString(secret))
		addrs = append(addrs, addr)
	}
	return GenesisState(addrs)
}

// GenesisState returns the app_state funding each address with native
// coins and every genesis asset.
func GenesisState(addrs []custody.Address) (json.RawMessage, error) {
	var (
		wallets  []cash.GenesisAccount
		accounts []token.GenesisAccount
	)
	for _, addr := range addrs {
		wallets = append(wallets, cash.GenesisAccount{
			Address: addr,
			Coins:   []coin.Coin{coin.NewCoin(genesisCoins, FeeTicker)},
		})
		for _, asset := range genesisAssets {
			accounts = append(accounts, token.GenesisAccount{
				Owner:  addr,
				Asset:  asset,
				Amount: genesisTokens,
			})
		}
	}
	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"token":  token.Configuration{DepositPerByte: coin.NewCoinp(1, FeeTicker)},
			"escrow": escrow.Configuration{MaxExpiryHorizon: escrow.DefaultMaxExpiryHorizon},
		},
		"cash":  wallets,
		"token": accounts,
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "escrow.db")
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	return Application("escrow", Stack(), TxDecoder, kv, options.Logger, options.Debug), nil
}
