package utils

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

// Recovery stops a panicking handler from taking the node down. The panic
// becomes an ErrPanic result that names the message path, and is logged
// with the block height so that the faulty transaction can be found.
type Recovery struct{}

var _ vaultswap.Decorator = Recovery{}

// NewRecovery returns the decorator that should wrap every other one.
func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx, next vaultswap.Checker) (_ *vaultswap.CheckResult, err error) {
	defer recovered(ctx, tx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx, next vaultswap.Deliverer) (_ *vaultswap.DeliverResult, err error) {
	defer recovered(ctx, tx, &err)
	return next.Deliver(ctx, db, tx)
}

// recovered must be deferred directly, recover returns nil otherwise.
func recovered(ctx vaultswap.Context, tx vaultswap.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	path := vaultswap.GetPath(tx)
	*err = errors.Wrapf(errors.ErrPanic, "%s: %v", path, r)

	height, _ := vaultswap.GetHeight(ctx)
	vaultswap.GetLogger(ctx).Error("handler panic", "path", path, "height", height, "panic", r)
}
