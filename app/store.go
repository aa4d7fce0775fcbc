package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the state related half of abci.Application: genesis,
// block boundaries, commits and queries. BaseApp embeds it and adds
// transaction processing.
//
// ABCI calls that carry no user input (Info, InitChain, Commit) cannot
// report a failure to tendermint. A failure there means the node state is
// broken, so those calls panic.
type StoreApp struct {
	logger log.Logger

	// name is reported by Info.
	name string

	store       *CommitStore
	initializer stake.Initializer
	queryRouter stake.QueryRouter

	// chainID is empty until genesis was loaded.
	chainID string

	// baseContext is valid for the lifetime of the app, blockContext for
	// the current block only.
	baseContext  stake.Context
	blockContext stake.Context

	stats blockStats
}

// blockStats counts the transactions delivered within the current block.
type blockStats struct {
	delivered int
	failed    int
}

// NewStoreApp loads the latest committed state. It panics if the state
// cannot be read.
func NewStoreApp(name string, db stake.CommitKVStore, queryRouter stake.QueryRouter, baseContext stake.Context) *StoreApp {
	cs, err := NewCommitStore(db)
	if err != nil {
		panic(err)
	}
	s := &StoreApp{
		name:        name,
		store:       cs,
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	if s.chainID, err = loadChainID(cs.DeliverStore()); err != nil {
		panic(err)
	}
	if s.chainID != "" {
		s.baseContext = stake.WithChainID(s.baseContext, s.chainID)
	}
	info, err := cs.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = stake.WithHeight(s.baseContext, info.Version)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the initializer used by InitChain.
func (s *StoreApp) WithInit(init stake.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the app and of every context it creates.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = stake.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() stake.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() stake.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() stake.CacheableKVStore {
	return s.store.CheckStore()
}

// loadGenesis runs the initializer against the app_state of the genesis
// file. It is called once, when the chain is created.
func (s *StoreApp) loadGenesis(appState []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %q", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state missing in genesis file")
	}
	if s.initializer == nil {
		return errors.Wrap(errors.ErrHuman, "initializer not set")
	}
	var opts stake.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = stake.WithChainID(s.baseContext, chainID)
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

// Info reports the last committed height and app hash so that tendermint
// can replay missing blocks.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

/*
Query reads the latest committed state.

The path selects the handler: "/" for raw keys, "/<bucket>" for models by
primary key and "/<bucket>/<index>" for models by secondary index. A
"?prefix" suffix turns the query into a prefix query. Only the latest
height can be queried, a request for any other height is rejected.

Key and Value of the response are ResultSets of equal length.
*/
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	if req.Height != 0 && req.Height != info.Version {
		return queryError(errors.Wrapf(errors.ErrInput, "height %d, only the latest height %d can be queried", req.Height, info.Version))
	}

	db := s.store.Snapshot()
	defer db.Discard()
	models, err := qh.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}

	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return queryError(err)
	}
	return res
}

// splitPath separates the handler path from the query modifier following
// the question mark.
func splitPath(full string) (path, mod string) {
	if i := strings.IndexByte(full, '?'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}

func queryError(err error) abci.ResponseQuery {
	code, msg := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: msg}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets the height and the block time used by every transaction
// of the block. The block time decides whether a bet deadline has passed.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := stake.WithHeight(s.baseContext, req.Header.GetHeight())
	s.blockContext = stake.WithBlockTime(ctx, req.Header.GetTime())
	s.stats = blockStats{}
	return abci.ResponseBeginBlock{}
}

// EndBlock logs a summary of the delivered transactions.
func (s *StoreApp) EndBlock(req abci.RequestEndBlock) abci.ResponseEndBlock {
	if s.stats.delivered > 0 {
		s.logger.Info("Block delivered",
			"height", req.Height,
			"txs", s.stats.delivered,
			"failed", s.stats.failed)
	}
	return abci.ResponseEndBlock{}
}

// countDelivered records the outcome of a delivered transaction.
func (s *StoreApp) countDelivered(err error) {
	s.stats.delivered++
	if err != nil {
		s.stats.failed++
	}
}
