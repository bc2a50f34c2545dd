package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/crypto"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/x/rent"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported by the ABCI Info call.
const Name = "vaultd"

// Rent defaults written by GenInitOptions.
const (
	DefaultLamportsPerByte = 10
	DefaultAccountOverhead = 128
	genesisLamports        = 1000000000
)

// GenInitOptions produces the app_state of a development chain: the rent
// configuration owned by one rich account.
//
// The account address can be passed as the first argument, otherwise a
// new key is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr vaultswap.Address
	if len(args) > 0 {
		var err error
		if addr, err = vaultswap.ParseAddress(args[0]); err != nil {
			return nil, errors.Wrap(err, "owner address")
		}
	} else {
		// if no address provided, auto-generate one
		// and print out the key
		var keys string
		var err error
		if addr, keys, err = GenerateKey(); err != nil {
			return nil, err
		}
		fmt.Println(keys)
	}

	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"rent": rent.Configuration{
				Owner:           addr,
				LamportsPerByte: DefaultLamportsPerByte,
				AccountOverhead: DefaultAccountOverhead,
			},
		},
		"rent": map[string]interface{}{
			"balances": []rent.GenesisBalance{
				{Address: addr, Lamports: genesisLamports},
			},
		},
		"token": map[string]interface{}{
			"mints":    []interface{}{},
			"accounts": []interface{}{},
		},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "vault.db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

// ReplayApp builds the application on a store that vaultd retry rolled
// back to the block before the one being replayed.
func ReplayApp(kv vaultswap.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	application := newApplication(Name, Stack(), TxDecoder, kv, debug)
	application.WithLogger(logger)
	return application
}

type output struct {
	Address vaultswap.Address `json:"address"`
	Secret  []byte            `json:"secret"`
}

// GenerateKey returns the address of a new ed25519 key together with a
// json document holding the private key.
func GenerateKey() (vaultswap.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	addr := privKey.PublicKey().Address()

	out := output{Address: addr, Secret: privKey.Ed25519}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, string(keys), nil
}
