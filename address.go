package vaultswap

import (
	"bytes"
	"encoding/json"

	"github.com/iov-one/vaultswap/errors"
	"github.com/mr-tron/base58"
)

// AddressLength is the length of all addresses. An address is either an
// ed25519 public key or a program derived address that lies off the curve.
const AddressLength = 32

// Address identifies an account: a human held key, a mint, a token holding
// account or a program controlled record.
type Address []byte

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy that does not share the underlying array.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	return append(Address(nil), a...)
}

// String returns the base58 representation.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return base58.Encode(a)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// MarshalJSON provides a base58 representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(base58.Encode(a))
}

// UnmarshalJSON parses a base58 encoded address.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if enc == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes a base58 address and ensures it has the right length.
func ParseAddress(enc string) (Address, error) {
	raw, err := base58.Decode(enc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "base58: %s", err)
	}
	addr := Address(raw)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// MustParseAddress is like ParseAddress but panics on malformed input. Use
// it only for compile time constants such as program identifiers.
func MustParseAddress(enc string) Address {
	addr, err := ParseAddress(enc)
	if err != nil {
		panic(err)
	}
	return addr
}

// Set updates the value of an address. It implements flag.Value so that
// command line tools can take addresses as flags.
func (a *Address) Set(enc string) error {
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
