package orm

import (
	"regexp"

	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket is implemented by buckets that operate on Models.
type ModelBucket interface {
	// One queries the database for a single model instance. Lookup is
	// done by the primary key. The result is loaded into dest. This
	// method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db tide.ReadOnlyKVStore, key []byte, dest Model) error

	// Put saves given model in the database. When the key is nil a
	// sequence generated key is used. The key the model is stored under
	// is returned.
	Put(db tide.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the
	// database. It returns ErrNotFound if an entity with given key does
	// not exist.
	Delete(db tide.KVStore, key []byte) error

	// Has returns nil if an entity with given primary key exists, and
	// ErrNotFound otherwise.
	Has(db tide.ReadOnlyKVStore, key []byte) error

	// Iterator walks all entities of the bucket in primary key order.
	Iterator(db tide.ReadOnlyKVStore) (tide.Iterator, error)

	// Register registers this bucket for raw queries under given name.
	Register(name string, qr tide.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance storing entities under
// the given name prefix. An invalid bucket name panics, this is a
// programmer error.
func NewModelBucket(name string, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	b := &modelBucket{
		prefix: []byte(name + ":"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ModelBucketOption configures an optional behaviour of a ModelBucket.
type ModelBucketOption func(b *modelBucket)

// WithIDSequence configures the bucket to use given sequence to
// generate primary keys for entities stored without one.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(b *modelBucket) {
		b.idSeq = &s
	}
}

type modelBucket struct {
	prefix []byte
	idSeq  *Sequence
}

var _ ModelBucket = (*modelBucket)(nil)

func (b *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

func (b *modelBucket) One(db tide.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.dbKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot deserialize %T", dest)
	}
	return nil
}

func (b *modelBucket) Put(db tide.KVStore, key []byte, m Model) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	if key == nil {
		if b.idSeq == nil {
			return nil, errors.Wrap(errors.ErrHuman, "bucket has no ID sequence")
		}
		var err error
		if key, err = b.idSeq.NextVal(db); err != nil {
			return nil, errors.Wrap(err, "cannot acquire ID")
		}
	}
	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot serialize %T", m)
	}
	if err := db.Set(b.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (b *modelBucket) Delete(db tide.KVStore, key []byte) error {
	if err := b.Has(db, key); err != nil {
		return err
	}
	return db.Delete(b.dbKey(key))
}

func (b *modelBucket) Has(db tide.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(b.dbKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (b *modelBucket) Iterator(db tide.ReadOnlyKVStore) (tide.Iterator, error) {
	start := b.dbKey(nil)
	// The prefix never ends with 0xff so incrementing the last byte
	// produces the exclusive upper bound of the key range.
	end := b.dbKey(nil)
	end[len(end)-1]++
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return &prefixIterator{prefix: len(b.prefix), it: it}, nil
}

func (b *modelBucket) Register(name string, qr tide.QueryRouter) {
	qr.Register(name, b)
}

// Query implements tide.Querier and resolves raw serialized entities by
// their primary key.
func (b *modelBucket) Query(db tide.ReadOnlyKVStore, key []byte) ([]byte, error) {
	return db.Get(b.dbKey(key))
}

// prefixIterator strips the bucket prefix from the keys it returns.
type prefixIterator struct {
	prefix int
	it     tide.Iterator
}

func (p *prefixIterator) Next() ([]byte, []byte, error) {
	key, value, err := p.it.Next()
	if err != nil {
		return nil, nil, err
	}
	return key[p.prefix:], value, nil
}

func (p *prefixIterator) Release() {
	p.it.Release()
}
