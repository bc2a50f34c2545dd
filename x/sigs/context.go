package sigs

import (
	"context"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx vaultswap.Context, signers []vaultswap.Address) vaultswap.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reveals the addresses of all keys that signed the current
// transaction.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetAddresses returns who signed the current Context.
// May be empty
func (a Authenticate) GetAddresses(ctx vaultswap.Context) []vaultswap.Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]vaultswap.Address)
	return val
}

// HasAddress returns true if the given address signed the current Context.
func (a Authenticate) HasAddress(ctx vaultswap.Context, addr vaultswap.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
