package vault

import (
	"encoding/binary"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/orm"
)

const (
	// BucketName is where vault records are stored.
	BucketName = "vault"

	// RecordSize is the fixed length of an encoded Record.
	RecordSize = 8 + 1 + 32 + 32 + 32 + 8 + 8
)

// Record describes one open vault. It is stored under the vault address.
type Record struct {
	// Seed was chosen by the initializer and makes the vault address
	// unique.
	Seed uint64
	// Bump makes the vault address a program address.
	Bump              uint8
	MintA             vaultswap.Address
	MintB             vaultswap.Address
	Initializer       vaultswap.Address
	InitializerAmount uint64
	TakerAmount       uint64
}

var _ orm.Model = (*Record)(nil)

func (r *Record) Validate() error {
	if err := r.MintA.Validate(); err != nil {
		return errors.Wrap(err, "mint a")
	}
	if err := r.MintB.Validate(); err != nil {
		return errors.Wrap(err, "mint b")
	}
	if err := r.Initializer.Validate(); err != nil {
		return errors.Wrap(err, "initializer")
	}
	if r.InitializerAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "initializer amount")
	}
	if r.TakerAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "taker amount")
	}
	return nil
}

func (r *Record) Copy() orm.Model {
	return &Record{
		Seed:              r.Seed,
		Bump:              r.Bump,
		MintA:             r.MintA.Clone(),
		MintB:             r.MintB.Clone(),
		Initializer:       r.Initializer.Clone(),
		InitializerAmount: r.InitializerAmount,
		TakerAmount:       r.TakerAmount,
	}
}

// Marshal writes the fixed layout: seed, bump, mint a, mint b,
// initializer, initializer amount, taker amount. Integers are little
// endian.
func (r *Record) Marshal() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	raw := make([]byte, RecordSize)
	binary.LittleEndian.PutUint64(raw[0:8], r.Seed)
	raw[8] = r.Bump
	copy(raw[9:41], r.MintA)
	copy(raw[41:73], r.MintB)
	copy(raw[73:105], r.Initializer)
	binary.LittleEndian.PutUint64(raw[105:113], r.InitializerAmount)
	binary.LittleEndian.PutUint64(raw[113:121], r.TakerAmount)
	return raw, nil
}

func (r *Record) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrModel, "vault record of %d bytes", len(raw))
	}
	*r = Record{
		Seed:              binary.LittleEndian.Uint64(raw[0:8]),
		Bump:              raw[8],
		MintA:             append(vaultswap.Address(nil), raw[9:41]...),
		MintB:             append(vaultswap.Address(nil), raw[41:73]...),
		Initializer:       append(vaultswap.Address(nil), raw[73:105]...),
		InitializerAmount: binary.LittleEndian.Uint64(raw[105:113]),
		TakerAmount:       binary.LittleEndian.Uint64(raw[113:121]),
	}
	return nil
}

// State is the life cycle stage of a vault address.
type State uint8

const (
	// StateClosed means no record exists: the vault was never opened,
	// or it was settled or cancelled.
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// CurrentState reports whether a record exists under the vault address.
func CurrentState(db vaultswap.ReadOnlyKVStore, vault vaultswap.Address) (State, error) {
	switch err := NewBucket().Has(db, vault); {
	case err == nil:
		return StateOpen, nil
	case errors.ErrNotFound.Is(err):
		return StateClosed, nil
	default:
		return StateClosed, err
	}
}

// NewBucket returns the bucket of vault records indexed by initializer.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Record{},
		orm.WithIndex("initializer", initializerIndex, false))
}

func initializerIndex(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	r, ok := obj.Value().(*Record)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return r.Initializer, nil
}

// RegisterQuery will register this bucket as "/vaults" and
// "/vaults/initializer"
func RegisterQuery(qr vaultswap.QueryRouter) {
	NewBucket().Register("vaults", qr)
}
