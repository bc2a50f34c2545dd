package token

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/orm"
	"github.com/iov-one/vaultswap/x"
	"github.com/iov-one/vaultswap/x/rent"
)

// Controller is the token service used by other extensions.
//
// Operations that move tokens take the authority explicitly. The
// authority must own the source account and must be authenticated by the
// controller's Authenticator in the given context.
type Controller interface {
	// GetMint returns the mint stored under given address or
	// ErrNotFound.
	GetMint(db vaultswap.ReadOnlyKVStore, mint vaultswap.Address) (*Mint, error)

	// GetAccount returns the holding account stored under given address
	// or ErrNotFound.
	GetAccount(db vaultswap.ReadOnlyKVStore, addr vaultswap.Address) (*Account, error)

	// Balance returns the amount held by a holding account.
	Balance(db vaultswap.ReadOnlyKVStore, addr vaultswap.Address) (uint64, error)

	// CreateMint stores a new mint. The payer funds its rent deposit.
	CreateMint(db vaultswap.KVStore, payer, mint, authority vaultswap.Address, decimals uint32) error

	// InitializeAccount opens an empty holding account at addr. The
	// payer funds its rent deposit. ErrDuplicate is returned when addr
	// is already a live account.
	InitializeAccount(db vaultswap.KVStore, payer, addr, owner, mint vaultswap.Address) error

	// AssociatedAddress returns the canonical holding account of owner
	// for mint.
	AssociatedAddress(owner, mint vaultswap.Address) (vaultswap.Address, error)

	// CreateAssociated opens the associated account of owner for mint.
	CreateAssociated(db vaultswap.KVStore, payer, owner, mint vaultswap.Address) (vaultswap.Address, error)

	// GetOrCreateAssociated returns the associated account of owner
	// for mint, opening it first if it does not exist yet.
	GetOrCreateAssociated(db vaultswap.KVStore, payer, owner, mint vaultswap.Address) (vaultswap.Address, error)

	// MintTo creates amount new tokens in dest. Authority must be the
	// mint authority.
	MintTo(ctx vaultswap.Context, db vaultswap.KVStore, mint, dest, authority vaultswap.Address, amount uint64) error

	// TransferChecked moves amount of mint from src to dest. The caller
	// states the mint and its decimals and the transfer is rejected when
	// either disagrees with the stored state.
	TransferChecked(ctx vaultswap.Context, db vaultswap.KVStore, src, mint, dest, authority vaultswap.Address, amount uint64, decimals uint32) error

	// CloseAccount deletes an empty holding account and moves its rent
	// deposit to dest.
	CloseAccount(ctx vaultswap.Context, db vaultswap.KVStore, account, dest, authority vaultswap.Address) error
}

// NewController returns a Controller that authenticates authorities with
// auth and collects rent through rents.
func NewController(auth x.Authenticator, rents rent.Controller) Controller {
	return &controller{
		auth:     auth,
		rent:     rents,
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
	}
}

type controller struct {
	auth     x.Authenticator
	rent     rent.Controller
	mints    orm.ModelBucket
	accounts orm.ModelBucket
}

var _ Controller = (*controller)(nil)

func (c *controller) GetMint(db vaultswap.ReadOnlyKVStore, mint vaultswap.Address) (*Mint, error) {
	var m Mint
	if err := c.mints.One(db, mint, &m); err != nil {
		return nil, errors.Wrapf(err, "mint %s", mint)
	}
	return &m, nil
}

func (c *controller) GetAccount(db vaultswap.ReadOnlyKVStore, addr vaultswap.Address) (*Account, error) {
	var a Account
	if err := c.accounts.One(db, addr, &a); err != nil {
		return nil, errors.Wrapf(err, "token account %s", addr)
	}
	return &a, nil
}

func (c *controller) Balance(db vaultswap.ReadOnlyKVStore, addr vaultswap.Address) (uint64, error) {
	a, err := c.GetAccount(db, addr)
	if err != nil {
		return 0, err
	}
	return a.Amount, nil
}

func (c *controller) CreateMint(db vaultswap.KVStore, payer, mint, authority vaultswap.Address, decimals uint32) error {
	if err := mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	switch err := c.mints.Has(db, mint); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "mint %s", mint)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	m := &Mint{Authority: authority, Decimals: decimals}
	if err := c.mints.Put(db, mint, m); err != nil {
		return err
	}
	if _, err := c.rent.Fund(db, payer, mint, MintSize); err != nil {
		return err
	}
	return nil
}

func (c *controller) InitializeAccount(db vaultswap.KVStore, payer, addr, owner, mint vaultswap.Address) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	switch err := c.accounts.Has(db, addr); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "token account %s", addr)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	if _, err := c.GetMint(db, mint); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrap(errors.ErrInvalidMint, err.Error())
		}
		return err
	}
	if err := c.accounts.Put(db, addr, &Account{Mint: mint, Owner: owner}); err != nil {
		return err
	}
	if _, err := c.rent.Fund(db, payer, addr, AccountSize); err != nil {
		return err
	}
	return nil
}

func (c *controller) AssociatedAddress(owner, mint vaultswap.Address) (vaultswap.Address, error) {
	return AssociatedAddress(owner, mint)
}

func (c *controller) CreateAssociated(db vaultswap.KVStore, payer, owner, mint vaultswap.Address) (vaultswap.Address, error) {
	addr, err := AssociatedAddress(owner, mint)
	if err != nil {
		return nil, err
	}
	if err := c.InitializeAccount(db, payer, addr, owner, mint); err != nil {
		return nil, err
	}
	return addr, nil
}

func (c *controller) GetOrCreateAssociated(db vaultswap.KVStore, payer, owner, mint vaultswap.Address) (vaultswap.Address, error) {
	addr, err := AssociatedAddress(owner, mint)
	if err != nil {
		return nil, err
	}
	acct, err := c.GetAccount(db, addr)
	switch {
	case err == nil:
		// the address is derived from owner and mint, so a mismatch
		// means the state is corrupted
		if !acct.Owner.Equals(owner) || !acct.Mint.Equals(mint) {
			return nil, errors.Wrapf(errors.ErrState, "associated account %s", addr)
		}
		return addr, nil
	case errors.ErrNotFound.Is(err):
		if err := c.InitializeAccount(db, payer, addr, owner, mint); err != nil {
			return nil, err
		}
		return addr, nil
	default:
		return nil, err
	}
}

func (c *controller) MintTo(ctx vaultswap.Context, db vaultswap.KVStore, mint, dest, authority vaultswap.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	m, err := c.GetMint(db, mint)
	if err != nil {
		return err
	}
	if !m.Authority.Equals(authority) || !c.auth.HasAddress(ctx, authority) {
		return errors.Wrap(errors.ErrUnauthorized, "mint authority")
	}
	to, err := c.GetAccount(db, dest)
	if err != nil {
		return err
	}
	if !to.Mint.Equals(mint) {
		return errors.Wrapf(errors.ErrInvalidMint, "destination holds %s", to.Mint)
	}
	if m.Supply+amount < m.Supply || to.Amount+amount < to.Amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	m.Supply += amount
	to.Amount += amount
	if err := c.mints.Put(db, mint, m); err != nil {
		return err
	}
	return c.accounts.Put(db, dest, to)
}

func (c *controller) TransferChecked(ctx vaultswap.Context, db vaultswap.KVStore, src, mint, dest, authority vaultswap.Address, amount uint64, decimals uint32) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	from, err := c.GetAccount(db, src)
	if err != nil {
		return err
	}
	if !from.Owner.Equals(authority) || !c.auth.HasAddress(ctx, authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "owner of %s", src)
	}
	if !from.Mint.Equals(mint) {
		return errors.Wrapf(errors.ErrInvalidMint, "source holds %s", from.Mint)
	}
	to, err := c.GetAccount(db, dest)
	if err != nil {
		return err
	}
	if !to.Mint.Equals(mint) {
		return errors.Wrapf(errors.ErrInvalidMint, "destination holds %s", to.Mint)
	}
	m, err := c.GetMint(db, mint)
	if err != nil {
		return err
	}
	if m.Decimals != decimals {
		return errors.Wrapf(errors.ErrInvalidMint, "decimals %d, mint has %d", decimals, m.Decimals)
	}
	if from.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s holds %d, needs %d", src, from.Amount, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	if to.Amount+amount < to.Amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest)
	}
	from.Amount -= amount
	to.Amount += amount
	if err := c.accounts.Put(db, src, from); err != nil {
		return err
	}
	return c.accounts.Put(db, dest, to)
}

func (c *controller) CloseAccount(ctx vaultswap.Context, db vaultswap.KVStore, account, dest, authority vaultswap.Address) error {
	acct, err := c.GetAccount(db, account)
	if err != nil {
		return err
	}
	if !acct.Owner.Equals(authority) || !c.auth.HasAddress(ctx, authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "owner of %s", account)
	}
	if acct.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "%s still holds %d", account, acct.Amount)
	}
	if err := c.accounts.Delete(db, account); err != nil {
		return err
	}
	if _, err := c.rent.Reclaim(db, account, dest); err != nil {
		return errors.Wrap(err, "rent refund")
	}
	return nil
}
