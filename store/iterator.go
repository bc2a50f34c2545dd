package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/vaultswap/errors"
)

// ascendBtree snapshots all cached items within [start, end) in ascending
// order. Deleted markers are kept, so they can shadow the parent.
func ascendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	collect := func(i btree.Item) bool {
		items = append(items, i)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// descendBtree snapshots all cached items within [start, end) in descending
// order.
func descendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	collect := func(i btree.Item) bool {
		k := i.(keyer).Key()
		if start != nil && bytes.Compare(k, start) < 0 {
			return false
		}
		if end != nil && bytes.Compare(k, end) >= 0 {
			return true
		}
		items = append(items, i)
		return true
	}
	bt.Descend(collect)
	return items
}

// mergeIterator combines cached items with the iterator of the parent
// store. Cached items win over parent items with the same key, and
// deleted markers hide them.
type mergeIterator struct {
	items     []btree.Item
	parent    Iterator
	ascending bool

	// look-ahead of the parent iterator
	pKey, pValue []byte
	pDone        bool
	pErr         error
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []btree.Item, parent Iterator, ascending bool) *mergeIterator {
	it := &mergeIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	it.advanceParent()
	return it
}

func (m *mergeIterator) advanceParent() {
	k, v, err := m.parent.Next()
	switch {
	case err == nil:
		m.pKey, m.pValue = k, v
	case errors.ErrIteratorDone.Is(err):
		m.pKey, m.pValue, m.pDone = nil, nil, true
	default:
		m.pErr = err
	}
}

// before returns true if a comes before b in the iteration order.
func (m *mergeIterator) before(a, b []byte) bool {
	if m.ascending {
		return bytes.Compare(a, b) < 0
	}
	return bytes.Compare(a, b) > 0
}

// Next returns the next visible key value pair or ErrIteratorDone.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if m.pErr != nil {
			return nil, nil, m.pErr
		}
		if len(m.items) == 0 {
			if m.pDone {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "store")
			}
			k, v := m.pKey, m.pValue
			m.advanceParent()
			return k, v, nil
		}

		head := m.items[0]
		hKey := head.(keyer).Key()
		if !m.pDone && m.before(m.pKey, hKey) {
			k, v := m.pKey, m.pValue
			m.advanceParent()
			return k, v, nil
		}
		if !m.pDone && bytes.Equal(m.pKey, hKey) {
			// cached value shadows the parent
			m.advanceParent()
		}
		m.items = m.items[1:]
		if s, ok := head.(setItem); ok {
			return s.key, s.value, nil
		}
	}
}

// Release releases the parent iterator.
func (m *mergeIterator) Release() {
	m.parent.Release()
	m.items = nil
}
