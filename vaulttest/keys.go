package vaulttest

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/crypto"
)

// NewKey returns a random private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewAddress returns the address of a random key.
func NewAddress() vaultswap.Address {
	return NewKey().PublicKey().Address()
}
