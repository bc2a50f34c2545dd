package vaulttest

import (
	"context"
	"fmt"

	"github.com/iov-one/vaultswap"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
// You can use either Signer or Signers (or both) attributes to reference
// addresses. Signers come first.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer vaultswap.Address

	// Signers represents an authentication of multiple signers.
	Signers []vaultswap.Address
}

func (a *Auth) GetAddresses(vaultswap.Context) []vaultswap.Address {
	if a.Signer != nil {
		return append(append([]vaultswap.Address(nil), a.Signers...), a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx vaultswap.Context, addr vaultswap.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve addresses.
type CtxAuth struct {
	// Key used to set and retrieve addresses from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetAddresses(ctx vaultswap.Context, addrs ...vaultswap.Address) vaultswap.Context {
	return context.WithValue(ctx, a.Key, addrs)
}

func (a *CtxAuth) GetAddresses(ctx vaultswap.Context) []vaultswap.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	addrs, ok := val.([]vaultswap.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []vaultswap.Address got %T", val))
	}
	return addrs
}

func (a *CtxAuth) HasAddress(ctx vaultswap.Context, addr vaultswap.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
