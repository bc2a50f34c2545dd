package token

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/pda"
)

var (
	// ProgramID identifies the token program. It takes part in the
	// derivation of associated accounts.
	ProgramID = vaultswap.MustParseAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

	// AssociatedProgramID is the namespace of associated accounts.
	AssociatedProgramID = vaultswap.MustParseAddress("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
)

// AssociatedAddress returns the canonical holding account of owner for
// given mint. The result depends only on its arguments.
func AssociatedAddress(owner, mint vaultswap.Address) (vaultswap.Address, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if err := mint.Validate(); err != nil {
		return nil, errors.Wrap(err, "mint")
	}
	return pda.FindProgramAddress(AssociatedProgramID, owner, ProgramID, mint)
}
