package stake

import (
	"fmt"
	"strings"
)

// Query modifiers understood by the stock query handlers. A key query
// returns at most one model, a prefix query every model whose key starts
// with the query data.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair returns a Model holding given key and value.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers read only queries against the committed state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryHandlerFunc adapts a function to the QueryHandler interface.
type QueryHandlerFunc func(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)

func (fn QueryHandlerFunc) Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error) {
	return fn(db, mod, data)
}

// QueryRouter dispatches a query to the handler registered for its path.
// Paths are absolute, for example "/bets" or "/bets/judge".
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler),
	}
}

// Register binds the handler to the path. It panics if the path is not
// absolute or is already taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if !strings.HasPrefix(path, "/") {
		panic(fmt.Sprintf("query path must start with a slash: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path already registered: %q", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to the path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

// QueryRegister binds the queries of one extension to a router.
type QueryRegister func(QueryRouter)

// RegisterAll calls every register with this router.
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, register := range qr {
		register(r)
	}
}
