package vaultswap

import (
	"fmt"
)

const (
	// KeyQueryMod matches the exact key.
	KeyQueryMod = ""
	// PrefixQueryMod matches every key starting with the query data.
	PrefixQueryMod = "prefix"
)

// Model is one key value pair of a query response.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair returns a Model holding key and value.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers the queries sent to one path, for example the
// vault records under /vaults.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query paths of an extension.
type QueryRegister func(QueryRouter)

// QueryRouter maps a query path to its handler.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register with this router.
func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register binds h to path. Two extensions claiming the same path is a
// wiring mistake, so it panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.routes[path] = h
}

// Handler returns the handler of path, nil for an unknown path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
