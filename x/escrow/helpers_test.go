package escrow

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/token"
	"github.com/iov-one/custody/x/utils"
	"github.com/stretchr/testify/require"
)

const (
	initialIOV = 10000
	initialETH = 1000
	initialBTC = 500

	// horizon is the maximum expiry configured in tests.
	horizon = 3600

	// deposits paid by the maker for the record and the vault.
	recordDeposit = token.AccountOverhead + RecordSize
	vaultDeposit  = token.AccountOverhead
)

var testNow = time.Date(2019, 5, 1, 12, 0, 0, 0, time.UTC)

// env is a ledger where the maker holds ETH, the taker holds BTC and both
// have the other asset account open but empty.
type env struct {
	db      store.CacheableKVStore
	ledger  token.Controller
	cash    cash.Controller
	auth    *custodytest.Auth
	handler custody.Handler

	maker, taker       custody.Condition
	makerETH, makerBTC custody.Address
	takerETH, takerBTC custody.Address
}

func newEnv(t testing.TB) *env {
	return newEnvWithLedger(t, nil)
}

// newEnvWithLedger allows to wrap the ledger used by the escrow handlers.
func newEnvWithLedger(t testing.TB, wrap func(Ledger) Ledger) *env {
	t.Helper()

	e := &env{
		db:    store.MemStore(),
		maker: custodytest.NewCondition(),
		taker: custodytest.NewCondition(),
		auth:  &custodytest.Auth{},
	}
	maker, taker := e.maker.Address(), e.taker.Address()

	genesis := map[string]interface{}{
		"conf": map[string]interface{}{
			"token":  token.Configuration{DepositPerByte: coin.NewCoinp(1, "IOV")},
			"escrow": Configuration{MaxExpiryHorizon: horizon},
		},
		"cash": []cash.GenesisAccount{
			{Address: maker, Coins: []coin.Coin{coin.NewCoin(initialIOV, "IOV")}},
			{Address: taker, Coins: []coin.Coin{coin.NewCoin(initialIOV, "IOV")}},
		},
		"token": []token.GenesisAccount{
			{Owner: maker, Asset: "ETH", Amount: initialETH},
			{Owner: maker, Asset: "BTC"},
			{Owner: taker, Asset: "BTC", Amount: initialBTC},
			{Owner: taker, Asset: "ETH"},
		},
	}
	raw, err := json.Marshal(genesis)
	require.NoError(t, err)
	var opts custody.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	init := custody.ChainInitializers(cash.Initializer{}, token.Initializer{}, Initializer{})
	require.NoError(t, init.FromGenesis(opts, e.db))

	e.cash = cash.NewController(cash.NewBucket())
	e.ledger = token.NewController(e.cash)

	var ledger Ledger = e.ledger
	if wrap != nil {
		ledger = wrap(ledger)
	}
	rt := app.NewRouter()
	RegisterRoutes(rt, e.auth, ledger)
	token.RegisterRoutes(rt, e.auth, e.ledger)
	e.handler = app.ChainDecorators(
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(rt)

	e.makerETH = associated(t, maker, "ETH")
	e.makerBTC = associated(t, maker, "BTC")
	e.takerETH = associated(t, taker, "ETH")
	e.takerBTC = associated(t, taker, "BTC")
	return e
}

func associated(t testing.TB, owner custody.Address, asset string) custody.Address {
	t.Helper()
	addr, err := token.AssociatedAddress(owner, asset)
	require.NoError(t, err)
	return addr
}

// deliver runs the message through check and deliver at given time.
func (e *env) deliver(now time.Time, signer custody.Condition, msg custody.Msg) (*custody.DeliverResult, error) {
	e.auth.Signer = signer
	ctx := custodytest.Context(now)
	tx := &custodytest.Tx{Msg: msg}
	if _, err := e.handler.Check(ctx, e.db, tx); err != nil {
		return nil, err
	}
	return e.handler.Deliver(ctx, e.db, tx)
}

// tokens returns the balance of a token account, or -1 if it does not
// exist.
func (e *env) tokens(t testing.TB, addr custody.Address) int64 {
	t.Helper()
	acc, err := e.ledger.Account(e.db, addr)
	if errors.ErrNotFound.Is(err) {
		return -1
	}
	require.NoError(t, err)
	return int64(acc.Amount)
}

// iov returns the native coin balance of a wallet.
func (e *env) iov(t testing.TB, addr custody.Address) uint64 {
	t.Helper()
	coins, err := e.cash.Balance(e.db, addr)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	require.NoError(t, err)
	return coins.Balance("IOV").Amount
}

func (e *env) escrow(t testing.TB, addr custody.Address) *Escrow {
	t.Helper()
	esc, err := loadEscrow(NewBucket(), e.db, addr)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	require.NoError(t, err)
	return esc
}

// makeMsg returns an offer of 100 ETH for 40 BTC expiring in 10 minutes.
func (e *env) makeMsg(seed uint64) *MakeMsg {
	return &MakeMsg{
		Seed:          seed,
		Maker:         e.maker.Address(),
		Source:        e.makerETH,
		MakerAsset:    "ETH",
		TakerAsset:    "BTC",
		DepositAmount: 100,
		ReceiveAmount: 40,
		Expiry:        custody.AsUnixTime(testNow).Add(10 * time.Minute),
	}
}

// open opens an offer and returns its record address.
func (e *env) open(t testing.TB, msg *MakeMsg) custody.Address {
	t.Helper()
	res, err := e.deliver(testNow, e.maker, msg)
	require.NoError(t, err)
	return res.Data
}

// takeMsg accepts the offer at record with the default terms.
func (e *env) takeMsg(record custody.Address) *TakeMsg {
	return &TakeMsg{
		Escrow:           record,
		Taker:            e.taker.Address(),
		Source:           e.takerBTC,
		Destination:      e.takerETH,
		MakerDestination: e.makerBTC,
		Asset:            "BTC",
		Amount:           40,
	}
}

// snapshot captures all balances of the environment.
func (e *env) snapshot(t testing.TB) map[string]int64 {
	t.Helper()
	return map[string]int64{
		"maker ETH": e.tokens(t, e.makerETH),
		"maker BTC": e.tokens(t, e.makerBTC),
		"taker ETH": e.tokens(t, e.takerETH),
		"taker BTC": e.tokens(t, e.takerBTC),
		"maker IOV": int64(e.iov(t, e.maker.Address())),
		"taker IOV": int64(e.iov(t, e.taker.Address())),
	}
}

func saveConf(e *env, conf *Configuration) error {
	return gconf.Save(e.db, pkg, conf)
}
