package vault

import (
	"encoding/binary"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/pda"
	"github.com/iov-one/vaultswap/x/token"
)

// ProgramID identifies the vault program. Every vault address is derived
// under it.
var ProgramID = vaultswap.MustParseAddress("AHnWUmyXfyRqtN3AwoRxMoyVKskyF9cS59YE2ZbqB8x6")

// StateSeed is the namespace tag of vault records.
const StateSeed = "state"

func seedBytes(seed uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	return b[:]
}

// Address returns the vault record address for seed together with the
// bump that makes it a program address.
func Address(seed uint64) (vaultswap.Address, uint8, error) {
	return pda.FindProgramAddressAndBump(ProgramID, []byte(StateSeed), seedBytes(seed))
}

// CustodyAddress returns the account holding the locked token A of a
// vault.
func CustodyAddress(vault, mintA vaultswap.Address) (vaultswap.Address, error) {
	return token.AssociatedAddress(vault, mintA)
}

// verifyAuthority recomputes the record address from its stored seed and
// bump and compares it with the address the record was loaded from.
func verifyAuthority(vault vaultswap.Address, r *Record) error {
	derived, err := pda.CreateProgramAddress(ProgramID, []byte(StateSeed), seedBytes(r.Seed), []byte{r.Bump})
	if err != nil {
		return errors.Wrapf(ErrAuthorityDerivationMismatch, "seed %d bump %d: %s", r.Seed, r.Bump, err)
	}
	if !derived.Equals(vault) {
		return errors.Wrapf(ErrAuthorityDerivationMismatch, "seed %d bump %d derive %s", r.Seed, r.Bump, derived)
	}
	return nil
}
