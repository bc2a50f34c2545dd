package vaulttest

import "github.com/iov-one/vaultswap"

// Handler is a mock handler that counts its calls and returns preset
// results.
type Handler struct {
	checkCall   int
	CheckResult vaultswap.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult vaultswap.DeliverResult
	DeliverErr    error

	// Write, when set, is stored by every call before returning.
	Write *vaultswap.Model
}

var _ vaultswap.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) write(db vaultswap.KVStore) error {
	if h.Write == nil {
		return nil
	}
	return db.Set(h.Write.Key, h.Write.Value)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
