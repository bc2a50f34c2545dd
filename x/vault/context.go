package vault

import (
	"context"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/x"
)

type contextKey int // local to the vault module

const (
	contextKeyVault contextKey = iota
)

// withVaultSigner authenticates a vault address. Only this package can do
// it, after the address was re-derived from its record.
func withVaultSigner(ctx vaultswap.Context, vault vaultswap.Address) vaultswap.Context {
	return context.WithValue(ctx, contextKeyVault, vault)
}

// Authenticate reveals the vault address the program is currently acting
// for. Chain it with the signature authenticator so the token service
// accepts the vault as the owner of its custody account.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetAddresses returns the vault that signs in this context, if any.
func (Authenticate) GetAddresses(ctx vaultswap.Context) []vaultswap.Address {
	val, _ := ctx.Value(contextKeyVault).(vaultswap.Address)
	if val == nil {
		return nil
	}
	return []vaultswap.Address{val}
}

// HasAddress returns true if addr is the vault that signs in this
// context.
func (Authenticate) HasAddress(ctx vaultswap.Context, addr vaultswap.Address) bool {
	val, _ := ctx.Value(contextKeyVault).(vaultswap.Address)
	return val != nil && val.Equals(addr)
}
