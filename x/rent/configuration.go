package rent

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/gconf"
)

const configPkg = "rent"

// Configuration prices the storage of accounts.
type Configuration struct {
	// Owner may update this configuration.
	Owner vaultswap.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	// LamportsPerByte is the deposit charged for every stored byte.
	LamportsPerByte uint64 `protobuf:"varint,2,opt,name=lamports_per_byte,proto3" json:"lamports_per_byte"`
	// AccountOverhead is added to every account size, covering the
	// bookkeeping that is stored next to the data.
	AccountOverhead uint64 `protobuf:"varint,3,opt,name=account_overhead,proto3" json:"account_overhead"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() vaultswap.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	if c.Owner != nil {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	// keep MinimumBalance far from overflowing for any realistic size
	if c.LamportsPerByte > 1<<32 {
		return errors.Wrap(errors.ErrInput, "lamports per byte too big")
	}
	if c.AccountOverhead > 1<<16 {
		return errors.Wrap(errors.ErrInput, "account overhead too big")
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, configPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "rent configuration")
	}
	return &conf, nil
}

// SaveConfiguration stores conf as the rent configuration.
func SaveConfiguration(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, configPkg, conf)
}
