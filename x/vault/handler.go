package vault

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/orm"
	"github.com/iov-one/vaultswap/x"
	"github.com/iov-one/vaultswap/x/rent"
	"github.com/iov-one/vaultswap/x/token"
)

const (
	initializeCost int64 = 300
	depositCost    int64 = 400
	cancelCost     int64 = 200
)

// RegisterRoutes will instantiate and register
// all handlers in this package.
//
// tokens must authenticate with an Authenticator that includes
// Authenticate, otherwise custody can never be released.
func RegisterRoutes(r vaultswap.Registry, auth x.Authenticator, tokens token.Controller, rents rent.Controller) {
	bucket := NewBucket()
	r.Handle(&InitializeMsg{}, InitializeHandler{auth: auth, bucket: bucket, tokens: tokens, rent: rents})
	r.Handle(&DepositMsg{}, DepositHandler{auth: auth, bucket: bucket, tokens: tokens, rent: rents})
	r.Handle(&CancelMsg{}, CancelHandler{auth: auth, bucket: bucket, tokens: tokens, rent: rents})
}

// InitializeHandler opens vaults.
type InitializeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	tokens token.Controller
	rent   rent.Controller
}

var _ vaultswap.Handler = InitializeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h InitializeHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: initializeCost}, nil
}

// Deliver stores the vault record, opens the custody account and moves
// the initializer amount into it.
func (h InitializeHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, rec, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	vault := msg.Vault

	if err := h.bucket.Put(db, vault, rec); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	if _, err := h.rent.Fund(db, msg.Initializer, vault, RecordSize); err != nil {
		return nil, err
	}
	custody, err := h.tokens.GetOrCreateAssociated(db, msg.Initializer, vault, msg.MintA)
	if err != nil {
		return nil, errors.Wrap(err, "custody account")
	}
	if held, err := h.tokens.Balance(db, custody); err != nil {
		return nil, err
	} else if held != 0 {
		return nil, errors.Wrapf(errors.ErrState, "custody %s already holds %d", custody, held)
	}

	mint, err := h.tokens.GetMint(db, msg.MintA)
	if err != nil {
		return nil, err
	}
	err = h.tokens.TransferChecked(ctx, db, msg.InitializerTokenA, msg.MintA, custody, msg.Initializer, msg.InitializerAmount, mint.Decimals)
	if err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	vaultswap.GetLogger(ctx).Info("vault opened",
		"vault", vault,
		"seed", rec.Seed,
		"initializer", rec.Initializer,
		"initializer_amount", rec.InitializerAmount,
		"taker_amount", rec.TakerAmount)
	return &vaultswap.DeliverResult{Data: vault}, nil
}

// validate does all common pre-processing between Check and Deliver. The
// returned message always carries the derived vault address.
func (h InitializeHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*InitializeMsg, *Record, error) {
	var msg InitializeMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Initializer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "initializer signature missing")
	}

	vault, bump, err := Address(msg.Seed)
	if err != nil {
		return nil, nil, errors.Wrap(err, "derive vault")
	}
	if msg.Vault != nil && !msg.Vault.Equals(vault) {
		return nil, nil, errors.Wrapf(ErrAuthorityDerivationMismatch, "seed %d derives %s", msg.Seed, vault)
	}
	msg.Vault = vault
	switch err := h.bucket.Has(db, vault); {
	case err == nil:
		return nil, nil, errors.Wrapf(ErrDuplicateVault, "seed %d", msg.Seed)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}

	if _, err := h.tokens.GetMint(db, msg.MintB); err != nil {
		return nil, nil, errors.Wrap(errors.ErrInvalidMint, err.Error())
	}
	src, err := h.tokens.GetAccount(db, msg.InitializerTokenA)
	if err != nil {
		return nil, nil, errors.Wrap(err, "initializer token a")
	}
	if !src.Mint.Equals(msg.MintA) {
		return nil, nil, errors.Wrapf(errors.ErrInvalidMint, "initializer token a holds %s", src.Mint)
	}
	if src.Amount < msg.InitializerAmount {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientFunds, "initializer holds %d, locks %d", src.Amount, msg.InitializerAmount)
	}

	rec := &Record{
		Seed:              msg.Seed,
		Bump:              bump,
		MintA:             msg.MintA,
		MintB:             msg.MintB,
		Initializer:       msg.Initializer,
		InitializerAmount: msg.InitializerAmount,
		TakerAmount:       msg.TakerAmount,
	}
	return &msg, rec, nil
}

// DepositHandler settles vaults.
type DepositHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	tokens token.Controller
	rent   rent.Controller
}

var _ vaultswap.Handler = DepositHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h DepositHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver pays the initializer, releases custody to the taker and closes
// the vault.
func (h DepositHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, rec, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	takerA, err := h.tokens.GetOrCreateAssociated(db, msg.Taker, msg.Taker, rec.MintA)
	if err != nil {
		return nil, errors.Wrap(err, "taker token a")
	}
	initializerB, err := h.tokens.GetOrCreateAssociated(db, msg.Taker, rec.Initializer, rec.MintB)
	if err != nil {
		return nil, errors.Wrap(err, "initializer token b")
	}
	takerB, err := h.tokens.AssociatedAddress(msg.Taker, rec.MintB)
	if err != nil {
		return nil, err
	}
	mintB, err := h.tokens.GetMint(db, rec.MintB)
	if err != nil {
		return nil, err
	}

	err = h.tokens.TransferChecked(ctx, db, takerB, rec.MintB, initializerB, msg.Taker, rec.TakerAmount, mintB.Decimals)
	if err != nil {
		return nil, errors.Wrap(err, "payment")
	}
	released, err := release(ctx, db, h.tokens, msg.Vault, rec, takerA)
	if err != nil {
		return nil, err
	}
	if err := closeVault(ctx, db, h.bucket, h.tokens, h.rent, msg.Vault, rec); err != nil {
		return nil, err
	}

	vaultswap.GetLogger(ctx).Info("vault settled",
		"vault", msg.Vault,
		"seed", rec.Seed,
		"taker", msg.Taker,
		"released", released,
		"paid", rec.TakerAmount)
	return &vaultswap.DeliverResult{Data: msg.Vault}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h DepositHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*DepositMsg, *Record, error) {
	var msg DepositMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}
	rec, err := loadOpen(db, h.bucket, msg.Vault)
	if err != nil {
		return nil, nil, err
	}
	if !rec.MintB.Equals(msg.MintB) {
		return nil, nil, errors.Wrapf(ErrVaultMintMismatch, "vault asks for %s", rec.MintB)
	}
	if !rec.MintA.Equals(msg.MintA) {
		return nil, nil, errors.Wrapf(ErrVaultMintMismatch, "vault holds %s", rec.MintA)
	}
	if !rec.Initializer.Equals(msg.Initializer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "initializer does not match the vault")
	}

	takerB, err := h.tokens.AssociatedAddress(msg.Taker, rec.MintB)
	if err != nil {
		return nil, nil, err
	}
	var balance uint64
	switch acct, err := h.tokens.GetAccount(db, takerB); {
	case err == nil:
		balance = acct.Amount
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	if balance < rec.TakerAmount {
		return nil, nil, errors.Wrapf(ErrInsufficientPayment, "taker holds %d, vault asks %d", balance, rec.TakerAmount)
	}
	return &msg, rec, nil
}

// CancelHandler returns the locked tokens to the initializer.
type CancelHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	tokens token.Controller
	rent   rent.Controller
}

var _ vaultswap.Handler = CancelHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CancelHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: cancelCost}, nil
}

// Deliver moves the custody balance back to the initializer and closes
// the vault.
func (h CancelHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, rec, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	initializerA, err := h.tokens.GetOrCreateAssociated(db, rec.Initializer, rec.Initializer, rec.MintA)
	if err != nil {
		return nil, errors.Wrap(err, "initializer token a")
	}
	released, err := release(ctx, db, h.tokens, msg.Vault, rec, initializerA)
	if err != nil {
		return nil, err
	}
	if err := closeVault(ctx, db, h.bucket, h.tokens, h.rent, msg.Vault, rec); err != nil {
		return nil, err
	}

	vaultswap.GetLogger(ctx).Info("vault cancelled",
		"vault", msg.Vault,
		"seed", rec.Seed,
		"initializer", rec.Initializer,
		"released", released)
	return &vaultswap.DeliverResult{Data: msg.Vault}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CancelHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*CancelMsg, *Record, error) {
	var msg CancelMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	rec, err := loadOpen(db, h.bucket, msg.Vault)
	if err != nil {
		return nil, nil, err
	}
	if !rec.Initializer.Equals(msg.Initializer) || !h.auth.HasAddress(ctx, rec.Initializer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the initializer can cancel")
	}
	if !rec.MintA.Equals(msg.MintA) {
		return nil, nil, errors.Wrapf(ErrVaultMintMismatch, "vault holds %s", rec.MintA)
	}
	return &msg, rec, nil
}

// loadOpen returns the record of an open vault after proving that its
// stored seed and bump derive the vault address.
func loadOpen(db vaultswap.ReadOnlyKVStore, bucket orm.ModelBucket, vault vaultswap.Address) (*Record, error) {
	var rec Record
	switch err := bucket.One(db, vault, &rec); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrVaultAlreadyClosed, "no vault at %s", vault)
	default:
		return nil, errors.Wrap(err, "cannot load vault from the store")
	}
	if err := verifyAuthority(vault, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// release moves the whole custody balance to dest, signed by the vault.
// Custody never holds less than the initializer amount. Tokens anyone
// transferred to custody after Initialize leave with it, so dest may
// receive more than InitializerAmount.
func release(ctx vaultswap.Context, db vaultswap.KVStore, tokens token.Controller, vault vaultswap.Address, rec *Record, dest vaultswap.Address) (uint64, error) {
	custody, err := CustodyAddress(vault, rec.MintA)
	if err != nil {
		return 0, err
	}
	held, err := tokens.Balance(db, custody)
	if err != nil {
		return 0, errors.Wrap(err, "custody")
	}
	if held < rec.InitializerAmount {
		return 0, errors.Wrapf(errors.ErrState, "custody holds %d, vault locked %d", held, rec.InitializerAmount)
	}
	mint, err := tokens.GetMint(db, rec.MintA)
	if err != nil {
		return 0, err
	}
	signed := withVaultSigner(ctx, vault)
	if err := tokens.TransferChecked(signed, db, custody, rec.MintA, dest, vault, held, mint.Decimals); err != nil {
		return 0, errors.Wrap(err, "release custody")
	}
	return held, nil
}

// closeVault closes the emptied custody account and deletes the record.
// Both rent deposits go to the initializer.
func closeVault(ctx vaultswap.Context, db vaultswap.KVStore, bucket orm.ModelBucket, tokens token.Controller, rents rent.Controller, vault vaultswap.Address, rec *Record) error {
	custody, err := CustodyAddress(vault, rec.MintA)
	if err != nil {
		return err
	}
	signed := withVaultSigner(ctx, vault)
	if err := tokens.CloseAccount(signed, db, custody, rec.Initializer, vault); err != nil {
		return errors.Wrap(err, "close custody")
	}
	if err := bucket.Delete(db, vault); err != nil {
		return errors.Wrap(err, "cannot delete vault")
	}
	if _, err := rents.Reclaim(db, vault, rec.Initializer); err != nil {
		return errors.Wrap(err, "rent refund")
	}
	return nil
}
