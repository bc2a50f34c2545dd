package token

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/orm"
)

const (
	// MintSize is the stored size a mint pays rent for.
	MintSize = 82
	// AccountSize is the stored size a holding account pays rent for.
	AccountSize = 165

	// MaxDecimals bounds the precision of a mint.
	MaxDecimals = 18
)

// Mint describes a token type.
type Mint struct {
	// Authority may create new tokens.
	Authority vaultswap.Address `protobuf:"bytes,1,opt,name=authority,proto3" json:"authority,omitempty"`
	Decimals  uint32            `protobuf:"varint,2,opt,name=decimals,proto3" json:"decimals,omitempty"`
	Supply    uint64            `protobuf:"varint,3,opt,name=supply,proto3" json:"supply,omitempty"`
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Validate() error {
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if m.Decimals > MaxDecimals {
		return errors.Wrapf(errors.ErrInvalidMint, "decimals %d", m.Decimals)
	}
	return nil
}

func (m *Mint) Copy() orm.Model {
	return &Mint{
		Authority: m.Authority.Clone(),
		Decimals:  m.Decimals,
		Supply:    m.Supply,
	}
}



// Account holds tokens of a single mint on behalf of its owner.
type Account struct {
	Mint   vaultswap.Address `protobuf:"bytes,1,opt,name=mint,proto3" json:"mint,omitempty"`
	Owner  vaultswap.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Amount uint64            `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	if err := a.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

func (a *Account) Copy() orm.Model {
	return &Account{
		Mint:   a.Mint.Clone(),
		Owner:  a.Owner.Clone(),
		Amount: a.Amount,
	}
}



// NewMintBucket returns the bucket of mints keyed by mint address.
func NewMintBucket() orm.ModelBucket {
	return orm.NewModelBucket("mint", &Mint{})
}

// NewAccountBucket returns the bucket of holding accounts keyed by
// account address and indexed by owner.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("token_account", &Account{},
		orm.WithIndex("owner", ownerIndex, false))
}

func ownerIndex(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	acct, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return acct.Owner, nil
}

// RegisterQuery will register mints as "/mints" and holding accounts as
// "/tokenaccounts" and "/tokenaccounts/owner"
func RegisterQuery(qr vaultswap.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewAccountBucket().Register("tokenaccounts", qr)
}
