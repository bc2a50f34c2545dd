/*
Package app links together all the various components
to construct the vaultd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/app"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/store/iavl"
	"github.com/iov-one/vaultswap/x"
	"github.com/iov-one/vaultswap/x/rent"
	"github.com/iov-one/vaultswap/x/sigs"
	"github.com/iov-one/vaultswap/x/token"
	"github.com/iov-one/vaultswap/x/utils"
	"github.com/iov-one/vaultswap/x/vault"
)

// Authenticator returns the signers of a transaction together with the
// vault that signs for its custody account while a vault handler runs.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, vault.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		utils.NewActionTagger(),
		// on DeliverTx, a failed message leaves no state behind
		// but the signer sequence is still incremented
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the rent, token and vault
// handlers. All of them share one token and one rent controller.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	rents := rent.NewController()
	tokens := token.NewController(authFn, rents)
	rent.RegisterRoutes(r, authFn, rents)
	token.RegisterRoutes(r, authFn, tokens)
	vault.RegisterRoutes(r, authFn, tokens, rents)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/auth", "/lamports", "/mints",
// "/tokenaccounts" and "/vaults"
func QueryRouter() vaultswap.QueryRouter {
	r := vaultswap.NewQueryRouter()
	r.RegisterAll(
		sigs.RegisterQuery,
		rent.RegisterQuery,
		token.RegisterQuery,
		vault.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() vaultswap.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h vaultswap.Handler,
	tx vaultswap.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	return newApplication(name, h, tx, kv, debug), nil
}

func newApplication(name string, h vaultswap.Handler, tx vaultswap.TxDecoder, kv vaultswap.CommitKVStore, debug bool) app.BaseApp {
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug)
}

// Initializers returns every extension that reads the genesis file.
func Initializers() vaultswap.Initializer {
	return vaultswap.ChainInitializers(
		rent.Initializer{},
		token.Initializer{},
	)
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (vaultswap.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name %q", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
