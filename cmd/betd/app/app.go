// Package app assembles the betd application: the decorator stack, the
// cash and bet handlers, their queries and the persistent store.
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/app"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/store/iavl"
	"github.com/iov-one/stake/x"
	"github.com/iov-one/stake/x/bet"
	"github.com/iov-one/stake/x/cash"
	"github.com/iov-one/stake/x/sigs"
	"github.com/iov-one/stake/x/utils"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// Authenticator accepts ed25519 signatures verified by the sigs decorator.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain is the decorator stack in front of every handler. The first
// savepoint keeps CheckTx side effect free. The second one sits below the
// signature check so a failed bet operation still consumes the nonce.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router routes cash and bet messages. Bets move funds through the same
// cash controller as plain transfers.
func Router(auth x.Authenticator) *app.Router {
	r := app.NewRouter()
	ctrl := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, auth, ctrl)
	bet.RegisterRoutes(r, auth, ctrl)
	return r
}

// QueryRouter serves "/wallets", "/auth", "/bets" and raw "/" queries.
func QueryRouter() stake.QueryRouter {
	r := stake.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		bet.RegisterQuery,
		app.RegisterQuery,
	)
	return r
}

// Stack is the complete transaction handler.
func Stack() stake.Handler {
	return Chain().WithHandler(Router(Authenticator()))
}

// Initializers load the cash and bet sections of the genesis file.
func Initializers() stake.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		bet.Initializer{},
	)
}

// Application builds the ABCI application on top of kv.
func Application(name string, h stake.Handler, dec stake.TxDecoder, kv stake.CommitKVStore, debug bool) app.BaseApp {
	st := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	st.WithInit(Initializers())
	return app.NewBaseApp(st, dec, h, debug)
}

// CommitKVStore opens the iavl store at dbPath. An empty path gives an in
// memory store. A trailing extension such as ".db" is ignored.
func CommitKVStore(dbPath, backend string) (stake.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStoreFromDB(dbm.NewMemDB()), nil
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q: %s", dbPath, err)
	}
	abs = strings.TrimSuffix(abs, filepath.Ext(abs))
	return iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs), dbm.DBBackendType(backend)), nil
}
