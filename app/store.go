package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp owns the state of the chain. It answers queries, runs genesis
// and commits blocks. BaseApp adds transaction processing on top.
type StoreApp struct {
	// mu serializes every ABCI call.
	mu sync.Mutex

	name   string
	logger log.Logger
	store  *CommitStore

	// chainID is read from the store on start and written once at genesis.
	chainID string

	// baseContext lives as long as the process. blockContext is rebuilt
	// from it on every BeginBlock.
	baseContext  custody.Context
	blockContext custody.Context

	queryRouter custody.QueryRouter
	initializer custody.Initializer
}

// NewStoreApp loads the latest committed state of store. It panics when the
// store cannot be loaded.
func NewStoreApp(name string, store custody.CommitKVStore, queryRouter custody.QueryRouter, baseContext custody.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	if s.chainID = loadChainID(s.DeliverStore()); s.chainID != "" {
		s.baseContext = custody.WithChainID(s.baseContext, s.chainID)
	}
	s.blockContext = custody.WithHeight(s.baseContext, s.store.CommitInfo().Version)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets what InitChain feeds the genesis app state into.
func (s *StoreApp) WithInit(init custody.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger also makes logger the default of every handler context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = custody.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext carries the height, time and chain id of the current block.
func (s *StoreApp) BlockContext() custody.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() custody.CacheableKVStore {
	return s.store.deliver
}

func (s *StoreApp) CheckStore() custody.CacheableKVStore {
	return s.store.check
}

// Info reports the last committed height and hash so tendermint can
// replay any blocks the application missed.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.store.CommitInfo()
	s.logger.Info("Info synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          custody.Version(),
		LastBlockHeight:  id.Version,
		LastBlockAppHash: id.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query serves committed state.
//
// Path names a registered handler, optionally followed by a modifier, as
// in "/escrows" or "/escrows?prefix". Data is interpreted by the handler.
// Only the latest height can be queried and proofs are not available. Keys
// and values of all matches are returned as two ResultSets.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	s.mu.Lock()
	defer s.mu.Unlock()

	height := s.store.CommitInfo().Version
	models, err := s.query(req, height)
	if err != nil {
		code, log := errors.ABCIInfo(err, false)
		return abci.ResponseQuery{Code: code, Log: log, Height: height}
	}
	res := abci.ResponseQuery{Height: height}
	if len(models) == 0 {
		return res
	}
	if res.Key, err = custody.Marshal(ResultsFromKeys(models)); err == nil {
		res.Value, err = custody.Marshal(ResultsFromValues(models))
	}
	if err != nil {
		code, log := errors.ABCIInfo(err, false)
		return abci.ResponseQuery{Code: code, Log: log, Height: height}
	}
	return res
}

func (s *StoreApp) query(req abci.RequestQuery, height int64) ([]custody.Model, error) {
	path, mod := splitPath(req.Path)
	h := s.queryRouter.Handler(path)
	switch {
	case h == nil:
		return nil, errors.Wrapf(errors.ErrNotFound, "unknown query path %q", path)
	case req.Prove:
		return nil, errors.Wrap(errors.ErrInput, "proofs not supported")
	case req.Height != 0 && req.Height != height:
		return nil, errors.Wrapf(errors.ErrInput, "only latest height %d can be queried", height)
	}
	// A fresh cache over the committed store never sees pending delivers.
	db := s.store.committed.CacheWrap()
	defer db.Discard()
	return h.Query(db, mod, req.Data)
}

// splitPath separates the query modifier following "?".
func splitPath(full string) (path, mod string) {
	if i := strings.IndexByte(full, '?'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.store.Commit()
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// InitChain runs once in the life of a chain. Tendermint has no way to
// receive an error here, so a bad genesis halts the node.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadGenesis(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) loadGenesis(appState []byte, chainID string) error {
	switch {
	case s.chainID != "":
		return errors.Wrapf(errors.ErrImmutable, "genesis already loaded for chain %s", s.chainID)
	case len(appState) == 0:
		return errors.Wrap(errors.ErrEmpty, "app state")
	case s.initializer == nil:
		return errors.Wrap(errors.ErrState, "initializer not set")
	}
	var opts custody.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = custody.WithChainID(s.baseContext, chainID)
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

// BeginBlock sets the height and time every handler of this block sees.
// The block time is the only clock escrow expiry is checked against.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blockContext = s.newBlockContext(req.Header.Height, req.Header.Time)
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) newBlockContext(height int64, blockTime time.Time) custody.Context {
	ctx := custody.WithHeight(s.baseContext, height)
	ctx = custody.WithBlockTime(ctx, blockTime)
	return custody.WithLogInfo(ctx, "height", height)
}

// EndBlock leaves the validator set alone.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
