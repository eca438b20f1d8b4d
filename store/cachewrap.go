package store

import (
	"bytes"
	"sort"

	"github.com/google/btree"

	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/errors"
)

// CacheWrap places a btree overlay over any KVStore. All writes land in
// the overlay until Write copies them into the parent, or Discard drops
// them.
type CacheWrap struct {
	parent tide.KVStore
	bt     *btree.BTree
}

var _ tide.KVCacheWrap = (*CacheWrap)(nil)

// NewCacheWrap initializes a btree overlay around this store.
func NewCacheWrap(parent tide.KVStore) *CacheWrap {
	return &CacheWrap{
		parent: parent,
		bt:     btree.New(2),
	}
}

// Get returns the overlay value if the key was written in this wrap,
// otherwise asks the parent.
func (c *CacheWrap) Get(key []byte) ([]byte, error) {
	if res := c.bt.Get(item{key: key}); res != nil {
		it := res.(item)
		if it.deleted {
			return nil, nil
		}
		return it.value, nil
	}
	return c.parent.Get(key)
}

// Has checks if a key exists, consulting the overlay first.
func (c *CacheWrap) Has(key []byte) (bool, error) {
	if res := c.bt.Get(item{key: key}); res != nil {
		return !res.(item).deleted, nil
	}
	return c.parent.Has(key)
}

// Set records the write in the overlay.
func (c *CacheWrap) Set(key, value []byte) error {
	c.bt.ReplaceOrInsert(item{key: key, value: value})
	return nil
}

// Delete records a deletion marker in the overlay.
func (c *CacheWrap) Delete(key []byte) error {
	c.bt.ReplaceOrInsert(item{key: key, deleted: true})
	return nil
}

// Iterator merges the parent range with the overlay writes.
func (c *CacheWrap) Iterator(start, end []byte) (tide.Iterator, error) {
	items, err := c.mergedRange(start, end)
	if err != nil {
		return nil, err
	}
	return &sliceIterator{items: items}, nil
}

// ReverseIterator merges the parent range with the overlay writes and
// walks it backwards.
func (c *CacheWrap) ReverseIterator(start, end []byte) (tide.Iterator, error) {
	items, err := c.mergedRange(start, end)
	if err != nil {
		return nil, err
	}
	reverse(items)
	return &sliceIterator{items: items}, nil
}

// CacheWrap allows recursive wrapping.
func (c *CacheWrap) CacheWrap() tide.KVCacheWrap {
	return NewCacheWrap(c)
}

// Write copies all cached writes into the parent store and resets the
// overlay.
func (c *CacheWrap) Write() error {
	var err error
	c.bt.Ascend(func(i btree.Item) bool {
		it := i.(item)
		if it.deleted {
			err = c.parent.Delete(it.key)
		} else {
			err = c.parent.Set(it.key, it.value)
		}
		return err == nil
	})
	c.bt.Clear(false)
	return err
}

// Discard drops all cached writes.
func (c *CacheWrap) Discard() {
	c.bt.Clear(false)
}

func (c *CacheWrap) mergedRange(start, end []byte) ([]item, error) {
	merged := make(map[string]item)

	it, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Release()
	for {
		key, value, err := it.Next()
		if err != nil {
			if errors.ErrIteratorDone.Is(err) {
				break
			}
			return nil, err
		}
		merged[string(key)] = item{key: key, value: value}
	}

	ascendRange(c.bt, start, end, func(i item) {
		if i.deleted {
			delete(merged, string(i.key))
		} else {
			merged[string(i.key)] = i
		}
	})

	items := make([]item, 0, len(merged))
	for _, i := range merged {
		items = append(items, i)
	}
	sort.Slice(items, func(a, b int) bool {
		return bytes.Compare(items[a].key, items[b].key) < 0
	})
	return items, nil
}
