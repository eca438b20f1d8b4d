package tide

import (
	"encoding/json"
)

// Handler is a core engine that can process a few specific messages.
// This could represent "transfer coins", or "deposit into a stream".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a
// transaction. It is its own interface to allow better type controls in
// the next arguments in Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication, or fee-handling, to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// CheckResult captures any non-error response from the preliminary
// validation of a transaction.
type CheckResult struct {
	// GasAllocated is an estimate of the cost of processing this
	// transaction. It has no meaning beyond relative ordering here.
	GasAllocated int64
}

// DeliverResult captures any non-error response from executing a
// transaction.
type DeliverResult struct {
	// Data is a machine-parseable return value, like an id of the
	// object that was touched.
	Data []byte
	// Log is a human readable success message.
	Log string
}

// Registry is an interface to register your handler, the setup side of
// a Router.
type Registry interface {
	Handle(path string, h Handler)
}

// Options are the application initialization options. Each extension
// can look up its key and parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the
// json into the given obj. Returns an error if it cannot parse. Noop
// and no error if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize extensions from
// genesis file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
