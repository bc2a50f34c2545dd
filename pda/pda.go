/*
Package pda derives program addresses: 32 byte addresses that are controlled
by a program instead of a private key.

An address is the sha256 digest of the seeds, the program identity and the
"ProgramDerivedAddress" marker. A digest that happens to be a valid ed25519
point is rejected, so no private key can ever exist for a derived address.
Clients reproduce the derivation bit for bit to locate vaults.
*/
package pda

import (
	"crypto/sha256"
	"math"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/jdgcs/ed25519/edwards25519"
)

const (
	// MaxSeeds is the maximum number of seeds accepted by a derivation,
	// bump included.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	marker = "ProgramDerivedAddress"
)

// ErrOnCurve is returned when the derived digest is a valid ed25519 public
// key and therefore cannot be used as a program address.
var ErrOnCurve = errors.Register(120, "derived address on curve")

// CreateProgramAddress derives the address for given program and seeds. It
// fails with ErrOnCurve when the result lies on the ed25519 curve.
func CreateProgramAddress(program vaultswap.Address, seeds ...[]byte) (vaultswap.Address, error) {
	if len(seeds) > MaxSeeds {
		return nil, errors.Wrapf(errors.ErrInput, "%d seeds, max %d", len(seeds), MaxSeeds)
	}
	if err := program.Validate(); err != nil {
		return nil, errors.Wrap(err, "program")
	}

	h := sha256.New()
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, errors.Wrapf(errors.ErrInput, "seed %d exceeds %d bytes", i, MaxSeedLength)
		}
		h.Write(s)
	}
	h.Write(program)
	h.Write([]byte(marker))

	var pub [32]byte
	copy(pub[:], h.Sum(nil))

	var point edwards25519.ExtendedGroupElement
	if point.FromBytes(&pub) {
		return nil, ErrOnCurve
	}
	return vaultswap.Address(pub[:]), nil
}

// FindProgramAddressAndBump searches for the highest bump byte, starting at
// 255, that appended to the seeds yields an off curve address. It returns
// the address and the bump.
func FindProgramAddressAndBump(program vaultswap.Address, seeds ...[]byte) (vaultswap.Address, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := math.MaxUint8; bump > 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateProgramAddress(program, withBump...)
		switch {
		case err == nil:
			return addr, uint8(bump), nil
		case ErrOnCurve.Is(err):
			continue
		default:
			return nil, 0, err
		}
	}
	return nil, 0, errors.Wrap(ErrOnCurve, "no viable bump")
}

// FindProgramAddress is FindProgramAddressAndBump without the bump.
func FindProgramAddress(program vaultswap.Address, seeds ...[]byte) (vaultswap.Address, error) {
	addr, _, err := FindProgramAddressAndBump(program, seeds...)
	return addr, err
}

// IsOnCurve returns true if given address is a valid ed25519 public key.
func IsOnCurve(addr vaultswap.Address) bool {
	if len(addr) != 32 {
		return false
	}
	var pub [32]byte
	copy(pub[:], addr)
	var point edwards25519.ExtendedGroupElement
	return point.FromBytes(&pub)
}
