package token

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

const (
	pathCreateMintMsg       = "token/create_mint"
	pathMintToMsg           = "token/mint_to"
	pathTransferMsg         = "token/transfer"
	pathCreateAssociatedMsg = "token/create_associated"
)

// CreateMintMsg registers a new token type. Both the payer and the mint
// key must sign, so a mint address can never be taken by someone else.
type CreateMintMsg struct {
	Payer     vaultswap.Address `protobuf:"bytes,1,opt,name=payer,proto3" json:"payer,omitempty"`
	Mint      vaultswap.Address `protobuf:"bytes,2,opt,name=mint,proto3" json:"mint,omitempty"`
	Authority vaultswap.Address `protobuf:"bytes,3,opt,name=authority,proto3" json:"authority,omitempty"`
	Decimals  uint32            `protobuf:"varint,4,opt,name=decimals,proto3" json:"decimals,omitempty"`
}

var _ vaultswap.Msg = (*CreateMintMsg)(nil)

func (CreateMintMsg) Path() string {
	return pathCreateMintMsg
}

func (m *CreateMintMsg) Validate() error {
	if err := m.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if m.Decimals > MaxDecimals {
		return errors.Wrapf(errors.ErrInvalidMint, "decimals %d", m.Decimals)
	}
	return nil
}



// MintToMsg creates new tokens in a holding account.
type MintToMsg struct {
	Mint        vaultswap.Address `protobuf:"bytes,1,opt,name=mint,proto3" json:"mint,omitempty"`
	Destination vaultswap.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Authority   vaultswap.Address `protobuf:"bytes,3,opt,name=authority,proto3" json:"authority,omitempty"`
	Amount      uint64            `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ vaultswap.Msg = (*MintToMsg)(nil)

func (MintToMsg) Path() string {
	return pathMintToMsg
}

func (m *MintToMsg) Validate() error {
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}



// TransferMsg moves tokens between two holding accounts of the same mint.
type TransferMsg struct {
	Source      vaultswap.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Mint        vaultswap.Address `protobuf:"bytes,2,opt,name=mint,proto3" json:"mint,omitempty"`
	Destination vaultswap.Address `protobuf:"bytes,3,opt,name=destination,proto3" json:"destination,omitempty"`
	Authority   vaultswap.Address `protobuf:"bytes,4,opt,name=authority,proto3" json:"authority,omitempty"`
	Amount      uint64            `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
	Decimals    uint32            `protobuf:"varint,6,opt,name=decimals,proto3" json:"decimals,omitempty"`
}

var _ vaultswap.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}



// CreateAssociatedMsg opens the associated account of owner for mint.
type CreateAssociatedMsg struct {
	Payer vaultswap.Address `protobuf:"bytes,1,opt,name=payer,proto3" json:"payer,omitempty"`
	Owner vaultswap.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Mint  vaultswap.Address `protobuf:"bytes,3,opt,name=mint,proto3" json:"mint,omitempty"`
}

var _ vaultswap.Msg = (*CreateAssociatedMsg)(nil)

func (CreateAssociatedMsg) Path() string {
	return pathCreateAssociatedMsg
}

func (m *CreateAssociatedMsg) Validate() error {
	if err := m.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	return nil
}



