package vault

import (
	"github.com/iov-one/vaultswap/errors"
)

// vault takes 1010-1020
var (
	ErrDuplicateVault              = errors.Register(1010, "vault already exists")
	ErrInsufficientPayment         = errors.Register(1011, "insufficient payment")
	ErrVaultMintMismatch           = errors.Register(1012, "vault mint mismatch")
	ErrAuthorityDerivationMismatch = errors.Register(1013, "authority derivation mismatch")
	ErrVaultAlreadyClosed          = errors.Register(1014, "vault already closed")
)
