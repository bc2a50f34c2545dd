package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/store"
)

// ValidateGenesis loads the app_state of every given genesis file into
// a throwaway store and reports the first one that does not initialize.
func ValidateGenesis(ini vaultswap.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini vaultswap.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var genesis struct {
		State vaultswap.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
