package app

import (
	"reflect"

	"github.com/iov-one/vaultswap"
)

// Decorators is an ordered stack of decorators that still lacks the
// handler at its bottom.
type Decorators struct {
	chain []vaultswap.Decorator
}

// ChainDecorators starts a stack. The first decorator is the outermost
// one and sees every transaction first. Nil decorators are skipped, so an
// optional decorator can be passed without a condition.
//
// vaultd builds its stack as
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//		utils.NewActionTagger(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
func ChainDecorators(chain ...vaultswap.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a stack with the given decorators appended below the
// existing ones. The receiver is not modified.
func (d Decorators) Chain(chain ...vaultswap.Decorator) Decorators {
	out := make([]vaultswap.Decorator, len(d.chain), len(d.chain)+len(chain))
	copy(out, d.chain)
	for _, dec := range chain {
		if !isNil(dec) {
			out = append(out, dec)
		}
	}
	return Decorators{chain: out}
}

func isNil(d vaultswap.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h vaultswap.Handler) vaultswap.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{decorator: d.chain[i], next: h}
	}
	return h
}

// decorated is a handler that runs a decorator around the rest of the
// stack.
type decorated struct {
	decorator vaultswap.Decorator
	next      vaultswap.Handler
}

var _ vaultswap.Handler = decorated{}

func (d decorated) Check(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx vaultswap.Context, db vaultswap.KVStore, tx vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.next)
}
