package store

import (
	"bytes"

	"github.com/google/btree"

	tide "github.com/iov-one/tide"
)

// item is a single btree entry. Inside a cache-wrap an entry may be a
// deletion marker shadowing the parent store.
type item struct {
	key     []byte
	value   []byte
	deleted bool
}

func (i item) Less(other btree.Item) bool {
	return bytes.Compare(i.key, other.(item).key) < 0
}

// MemStore is a btree-backed KVStore. There is no persistence, all data
// is lost when the process ends.
type MemStore struct {
	bt *btree.BTree
}

var _ tide.CacheableKVStore = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{bt: btree.New(2)}
}

// Get returns nil iff key doesn't exist.
func (m *MemStore) Get(key []byte) ([]byte, error) {
	res := m.bt.Get(item{key: key})
	if res == nil {
		return nil, nil
	}
	return res.(item).value, nil
}

// Has checks if a key exists.
func (m *MemStore) Has(key []byte) (bool, error) {
	return m.bt.Has(item{key: key}), nil
}

// Set sets the key to given value.
func (m *MemStore) Set(key, value []byte) error {
	m.bt.ReplaceOrInsert(item{key: key, value: value})
	return nil
}

// Delete removes the key.
func (m *MemStore) Delete(key []byte) error {
	m.bt.Delete(item{key: key})
	return nil
}

// Iterator over a domain of keys in ascending order.
func (m *MemStore) Iterator(start, end []byte) (tide.Iterator, error) {
	var items []item
	ascendRange(m.bt, start, end, func(i item) {
		items = append(items, i)
	})
	return &sliceIterator{items: items}, nil
}

// ReverseIterator over a domain of keys in descending order.
func (m *MemStore) ReverseIterator(start, end []byte) (tide.Iterator, error) {
	var items []item
	ascendRange(m.bt, start, end, func(i item) {
		items = append(items, i)
	})
	reverse(items)
	return &sliceIterator{items: items}, nil
}

// CacheWrap returns a scratch-pad store on top of this one.
func (m *MemStore) CacheWrap() tide.KVCacheWrap {
	return NewCacheWrap(m)
}

// ascendRange walks [start, end) of the tree in order. A nil start
// means from the first key, a nil end means past the last key.
func ascendRange(bt *btree.BTree, start, end []byte, fn func(item)) {
	visit := func(i btree.Item) bool {
		fn(i.(item))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(visit)
	case start == nil:
		bt.AscendLessThan(item{key: end}, visit)
	case end == nil:
		bt.AscendGreaterOrEqual(item{key: start}, visit)
	default:
		bt.AscendRange(item{key: start}, item{key: end}, visit)
	}
}

func reverse(items []item) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
