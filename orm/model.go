package orm

import (
	tide "github.com/iov-one/tide"
)

// Model is implemented by any entity that can be stored using a
// ModelBucket. Implementations serialize themselves, this package does
// not care through which codec.
type Model interface {
	tide.Persistent
	Validate() error
}
