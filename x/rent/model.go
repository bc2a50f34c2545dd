package rent

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/orm"
)

// BucketName is where lamport balances are stored.
const BucketName = "lamport"

// Balance is the native balance of a single address.
type Balance struct {
	Lamports uint64 `protobuf:"varint,1,opt,name=lamports,proto3" json:"lamports,omitempty"`
}

var _ orm.Model = (*Balance)(nil)

func (b *Balance) Validate() error {
	return nil
}

func (b *Balance) Copy() orm.Model {
	return &Balance{Lamports: b.Lamports}
}

// NewBucket returns a bucket of balances keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Balance{})
}

// RegisterQuery will register this bucket as "/lamports"
func RegisterQuery(qr vaultswap.QueryRouter) {
	NewBucket().Register("lamports", qr)
}
