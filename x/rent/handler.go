package rent

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/gconf"
	"github.com/iov-one/vaultswap/x"
)

const sendTxCost = 100

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r vaultswap.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
	r.Handle(&UpdateConfigurationMsg{}, NewConfigHandler(auth))
}

// SendHandler will handle sending lamports
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ vaultswap.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx vaultswap.Context, store vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &vaultswap.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the lamports from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx vaultswap.Context, store vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Send(store, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &vaultswap.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx vaultswap.Context, tx vaultswap.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := vaultswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}

// NewConfigHandler returns a handler that applies UpdateConfigurationMsg
// signed by the configuration owner.
func NewConfigHandler(auth x.Authenticator) vaultswap.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(configPkg, &conf, auth)
}
