package tide

// Querier is implemented by anything that can resolve read-only lookups
// against the database. The raw result is the serialized model, or nil
// when the entity does not exist.
type Querier interface {
	Query(db ReadOnlyKVStore, key []byte) ([]byte, error)
}

// QueryRouter allows us to register many query paths and dispatch
// lookups to the proper querier.
type QueryRouter struct {
	routes map[string]Querier
}

// NewQueryRouter initializes a QueryRouter with no routes.
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]Querier),
	}
}

// Register adds a querier under given path. Re-registering a path is
// considered a programmer error and panics.
func (r QueryRouter) Register(path string, q Querier) {
	if _, ok := r.routes[path]; ok {
		panic("re-registering query path: " + path)
	}
	r.routes[path] = q
}

// Querier returns the querier registered under given path, or nil.
func (r QueryRouter) Querier(path string) Querier {
	return r.routes[path]
}
