package rent

import (
	"math/bits"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/orm"
)

// Controller moves lamports between addresses and collects the storage
// deposit of new accounts.
type Controller interface {
	// MinimumBalance returns the deposit an account of given size must
	// hold.
	MinimumBalance(db vaultswap.ReadOnlyKVStore, size int) (uint64, error)

	// Balance returns the lamports held by addr. Unknown addresses hold
	// nothing.
	Balance(db vaultswap.ReadOnlyKVStore, addr vaultswap.Address) (uint64, error)

	// Send moves amount from src to dest.
	Send(db vaultswap.KVStore, src, dest vaultswap.Address, amount uint64) error

	// Issue credits dest with new lamports.
	Issue(db vaultswap.KVStore, dest vaultswap.Address, amount uint64) error

	// Fund tops up a new account of given size to its minimum balance,
	// charging the payer. It returns the amount that was moved.
	Fund(db vaultswap.KVStore, payer, account vaultswap.Address, size int) (uint64, error)

	// Reclaim moves every lamport of a closing account to dest and
	// forgets the account. It returns the amount that was moved.
	Reclaim(db vaultswap.KVStore, account, dest vaultswap.Address) (uint64, error)
}

// NewController returns a controller backed by the lamport bucket.
func NewController() Controller {
	return &controller{bucket: NewBucket()}
}

type controller struct {
	bucket orm.ModelBucket
}

var _ Controller = (*controller)(nil)

func (c *controller) MinimumBalance(db vaultswap.ReadOnlyKVStore, size int) (uint64, error) {
	if size < 0 {
		return 0, errors.Wrap(errors.ErrInput, "negative size")
	}
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	bytes := conf.AccountOverhead + uint64(size)
	if bytes < conf.AccountOverhead {
		return 0, errors.Wrapf(errors.ErrOverflow, "account of %d bytes", size)
	}
	hi, min := bits.Mul64(bytes, conf.LamportsPerByte)
	if hi != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "rent of %d bytes", size)
	}
	return min, nil
}

func (c *controller) Balance(db vaultswap.ReadOnlyKVStore, addr vaultswap.Address) (uint64, error) {
	var b Balance
	switch err := c.bucket.One(db, addr, &b); {
	case err == nil:
		return b.Lamports, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

func (c *controller) Send(db vaultswap.KVStore, src, dest vaultswap.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero lamports")
	}
	have, err := c.Balance(db, src)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s holds %d lamports, needs %d", src, have, amount)
	}
	if err := c.set(db, src, have-amount); err != nil {
		return err
	}
	return c.Issue(db, dest, amount)
}

func (c *controller) Issue(db vaultswap.KVStore, dest vaultswap.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	have, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	total := have + amount
	if total < have {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest)
	}
	return c.set(db, dest, total)
}

func (c *controller) Fund(db vaultswap.KVStore, payer, account vaultswap.Address, size int) (uint64, error) {
	min, err := c.MinimumBalance(db, size)
	if err != nil {
		return 0, err
	}
	have, err := c.Balance(db, account)
	if err != nil {
		return 0, err
	}
	if have >= min {
		return 0, nil
	}
	missing := min - have
	if err := c.Send(db, payer, account, missing); err != nil {
		return 0, errors.Wrap(err, "rent deposit")
	}
	return missing, nil
}

func (c *controller) Reclaim(db vaultswap.KVStore, account, dest vaultswap.Address) (uint64, error) {
	have, err := c.Balance(db, account)
	if err != nil {
		return 0, err
	}
	if have == 0 {
		return 0, nil
	}
	if err := c.bucket.Delete(db, account); err != nil {
		return 0, err
	}
	if err := c.Issue(db, dest, have); err != nil {
		return 0, err
	}
	return have, nil
}

// set stores the balance, dropping empty entries.
func (c *controller) set(db vaultswap.KVStore, addr vaultswap.Address, lamports uint64) error {
	if lamports == 0 {
		err := c.bucket.Delete(db, addr)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return c.bucket.Put(db, addr, &Balance{Lamports: lamports})
}
