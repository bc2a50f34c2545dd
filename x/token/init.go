package token

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

const optKey = "token"

// GenesisMint is used to parse the json from genesis file.
type GenesisMint struct {
	Address   vaultswap.Address `json:"address"`
	Authority vaultswap.Address `json:"authority"`
	Decimals  uint32            `json:"decimals"`
}

// GenesisAccount is used to parse the json from genesis file. When no
// address is given the associated account of the owner is used.
type GenesisAccount struct {
	Address vaultswap.Address `json:"address"`
	Owner   vaultswap.Address `json:"owner"`
	Mint    vaultswap.Address `json:"mint"`
	Amount  uint64            `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ vaultswap.Initializer = Initializer{}

// FromGenesis stores all mints and holding accounts. Genesis accounts pay
// no rent deposit and the supply of every mint is the sum of its genesis
// accounts.
func (Initializer) FromGenesis(opts vaultswap.Options, kv vaultswap.KVStore) error {
	var state struct {
		Mints    []GenesisMint    `json:"mints"`
		Accounts []GenesisAccount `json:"accounts"`
	}
	if err := opts.ReadOptions(optKey, &state); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	mints := NewMintBucket()
	for i, gm := range state.Mints {
		if err := gm.Address.Validate(); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
		m := &Mint{Authority: gm.Authority, Decimals: gm.Decimals}
		if err := mints.Put(kv, gm.Address, m); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
	}

	accounts := NewAccountBucket()
	for i, ga := range state.Accounts {
		addr := ga.Address
		if len(addr) == 0 {
			var err error
			if addr, err = AssociatedAddress(ga.Owner, ga.Mint); err != nil {
				return errors.Wrapf(err, "account #%d", i)
			}
		}
		if err := accounts.Has(kv, addr); err == nil {
			return errors.Wrapf(errors.ErrDuplicate, "account #%d", i)
		}
		var m Mint
		if err := mints.One(kv, ga.Mint, &m); err != nil {
			return errors.Wrapf(errors.ErrInvalidMint, "account #%d: %s", i, err)
		}
		if m.Supply+ga.Amount < m.Supply {
			return errors.Wrapf(errors.ErrOverflow, "account #%d", i)
		}
		m.Supply += ga.Amount
		if err := mints.Put(kv, ga.Mint, &m); err != nil {
			return err
		}
		acct := &Account{Mint: ga.Mint, Owner: ga.Owner, Amount: ga.Amount}
		if err := accounts.Put(kv, addr, acct); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
