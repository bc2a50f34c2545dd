package token

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/x"
)

const (
	createMintCost       int64 = 200
	mintToCost           int64 = 100
	transferCost         int64 = 100
	createAssociatedCost int64 = 150
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r vaultswap.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&CreateMintMsg{}, CreateMintHandler{auth: auth, ctrl: ctrl})
	r.Handle(&MintToMsg{}, MintToHandler{ctrl: ctrl})
	r.Handle(&TransferMsg{}, TransferHandler{ctrl: ctrl})
	r.Handle(&CreateAssociatedMsg{}, CreateAssociatedHandler{auth: auth, ctrl: ctrl})
}

// CreateMintHandler registers new mints.
type CreateMintHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ vaultswap.Handler = CreateMintHandler{}

func (h CreateMintHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: createMintCost}, nil
}

func (h CreateMintHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.CreateMint(db, msg.Payer, msg.Mint, msg.Authority, msg.Decimals); err != nil {
		return nil, err
	}
	return &vaultswap.DeliverResult{Data: msg.Mint}, nil
}

func (h CreateMintHandler) validate(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*CreateMintMsg, error) {
	var msg CreateMintMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	if !h.auth.HasAddress(ctx, msg.Mint) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "mint signature missing")
	}
	return &msg, nil
}

// MintToHandler creates new tokens. The controller authenticates the mint
// authority.
type MintToHandler struct {
	ctrl Controller
}

var _ vaultswap.Handler = MintToHandler{}

func (h MintToHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	var msg MintToMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &vaultswap.CheckResult{GasAllocated: mintToCost}, nil
}

func (h MintToHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	var msg MintToMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.MintTo(ctx, db, msg.Mint, msg.Destination, msg.Authority, msg.Amount); err != nil {
		return nil, err
	}
	return &vaultswap.DeliverResult{}, nil
}

// TransferHandler moves tokens on behalf of a signing owner.
//
// The controller authenticates the authority, so a program derived owner
// such as a vault custody account can never be moved through this
// handler.
type TransferHandler struct {
	ctrl Controller
}

var _ vaultswap.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	var msg TransferMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &vaultswap.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	var msg TransferMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	err := h.ctrl.TransferChecked(ctx, db, msg.Source, msg.Mint, msg.Destination, msg.Authority, msg.Amount, msg.Decimals)
	if err != nil {
		return nil, err
	}
	return &vaultswap.DeliverResult{}, nil
}

// CreateAssociatedHandler opens associated accounts. Anyone may open the
// associated account of any owner as long as they pay the deposit.
type CreateAssociatedHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ vaultswap.Handler = CreateAssociatedHandler{}

func (h CreateAssociatedHandler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: createAssociatedCost}, nil
}

func (h CreateAssociatedHandler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.CreateAssociated(db, msg.Payer, msg.Owner, msg.Mint)
	if err != nil {
		return nil, err
	}
	return &vaultswap.DeliverResult{Data: addr}, nil
}

func (h CreateAssociatedHandler) validate(ctx vaultswap.Context, tx vaultswap.Tx) (*CreateAssociatedMsg, error) {
	var msg CreateAssociatedMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	return &msg, nil
}
