package vault

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

const (
	pathInitializeMsg = "vault/initialize"
	pathDepositMsg    = "vault/deposit"
	pathCancelMsg     = "vault/cancel"
)

// InitializeMsg opens a vault, locking InitializerAmount of mint A in
// custody and asking TakerAmount of mint B for it.
type InitializeMsg struct {
	Initializer vaultswap.Address `protobuf:"bytes,1,opt,name=initializer,proto3" json:"initializer,omitempty"`
	MintA       vaultswap.Address `protobuf:"bytes,2,opt,name=mint_a,proto3" json:"mint_a,omitempty"`
	MintB       vaultswap.Address `protobuf:"bytes,3,opt,name=mint_b,proto3" json:"mint_b,omitempty"`
	// InitializerTokenA is the account the locked tokens are taken from.
	InitializerTokenA vaultswap.Address `protobuf:"bytes,4,opt,name=initializer_token_a,proto3" json:"initializer_token_a,omitempty"`
	// Vault is optional. When set it must be the address derived from
	// Seed.
	Vault             vaultswap.Address `protobuf:"bytes,5,opt,name=vault,proto3" json:"vault,omitempty"`
	Seed              uint64            `protobuf:"varint,6,opt,name=seed,proto3" json:"seed,omitempty"`
	InitializerAmount uint64            `protobuf:"varint,7,opt,name=initializer_amount,proto3" json:"initializer_amount,omitempty"`
	TakerAmount       uint64            `protobuf:"varint,8,opt,name=taker_amount,proto3" json:"taker_amount,omitempty"`
}

var _ vaultswap.Msg = (*InitializeMsg)(nil)

func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

func (m *InitializeMsg) Validate() error {
	if err := m.Initializer.Validate(); err != nil {
		return errors.Wrap(err, "initializer")
	}
	if err := m.MintA.Validate(); err != nil {
		return errors.Wrap(err, "mint a")
	}
	if err := m.MintB.Validate(); err != nil {
		return errors.Wrap(err, "mint b")
	}
	if err := m.InitializerTokenA.Validate(); err != nil {
		return errors.Wrap(err, "initializer token a")
	}
	if m.Vault != nil {
		if err := m.Vault.Validate(); err != nil {
			return errors.Wrap(err, "vault")
		}
	}
	if m.InitializerAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "initializer amount must be positive")
	}
	if m.TakerAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "taker amount must be positive")
	}
	return nil
}



// DepositMsg settles a vault. The taker pays the asked amount of mint B
// to the initializer and receives the custody balance.
type DepositMsg struct {
	Taker       vaultswap.Address `protobuf:"bytes,1,opt,name=taker,proto3" json:"taker,omitempty"`
	Initializer vaultswap.Address `protobuf:"bytes,2,opt,name=initializer,proto3" json:"initializer,omitempty"`
	MintA       vaultswap.Address `protobuf:"bytes,3,opt,name=mint_a,proto3" json:"mint_a,omitempty"`
	MintB       vaultswap.Address `protobuf:"bytes,4,opt,name=mint_b,proto3" json:"mint_b,omitempty"`
	Vault       vaultswap.Address `protobuf:"bytes,5,opt,name=vault,proto3" json:"vault,omitempty"`
}

var _ vaultswap.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m *DepositMsg) Validate() error {
	if err := m.Taker.Validate(); err != nil {
		return errors.Wrap(err, "taker")
	}
	if err := m.Initializer.Validate(); err != nil {
		return errors.Wrap(err, "initializer")
	}
	if err := m.MintA.Validate(); err != nil {
		return errors.Wrap(err, "mint a")
	}
	if err := m.MintB.Validate(); err != nil {
		return errors.Wrap(err, "mint b")
	}
	if err := m.Vault.Validate(); err != nil {
		return errors.Wrap(err, "vault")
	}
	return nil
}



// CancelMsg closes a vault that nobody settled, returning the locked
// tokens to the initializer.
type CancelMsg struct {
	Initializer vaultswap.Address `protobuf:"bytes,1,opt,name=initializer,proto3" json:"initializer,omitempty"`
	MintA       vaultswap.Address `protobuf:"bytes,2,opt,name=mint_a,proto3" json:"mint_a,omitempty"`
	Vault       vaultswap.Address `protobuf:"bytes,3,opt,name=vault,proto3" json:"vault,omitempty"`
}

var _ vaultswap.Msg = (*CancelMsg)(nil)

func (CancelMsg) Path() string {
	return pathCancelMsg
}

func (m *CancelMsg) Validate() error {
	if err := m.Initializer.Validate(); err != nil {
		return errors.Wrap(err, "initializer")
	}
	if err := m.MintA.Validate(); err != nil {
		return errors.Wrap(err, "mint a")
	}
	if err := m.Vault.Validate(); err != nil {
		return errors.Wrap(err, "vault")
	}
	return nil
}


