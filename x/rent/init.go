package rent

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/gconf"
)

const optKey = "rent"

// GenesisBalance is used to parse the json from genesis file.
type GenesisBalance struct {
	Address  vaultswap.Address `json:"address"`
	Lamports uint64            `json:"lamports"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ vaultswap.Initializer = Initializer{}

// FromGenesis stores the rent configuration found under conf.rent and
// credits every listed balance.
func (Initializer) FromGenesis(opts vaultswap.Options, kv vaultswap.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, configPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var state struct {
		Balances []GenesisBalance `json:"balances"`
	}
	if err := opts.ReadOptions(optKey, &state); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, b := range state.Balances {
		if err := ctrl.Issue(kv, b.Address, b.Lamports); err != nil {
			return errors.Wrapf(err, "balance #%d", i)
		}
	}
	return nil
}
