package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// avlIterator is bound to a live node or the end sentinel (isEnd).
// It has to be tagged with its owner, because an end iterator has
// no node to tell the maps apart.
type avlIterator[K any, V any] struct {
	owner *avlMap[K, V]
	node  *avlNode[K, V]
	isEnd bool
}

var _ AVLIterator[int, int] = (*avlIterator[int, int])(nil)

func (m *avlMap[K, V]) iterator(x *avlNode[K, V]) *avlIterator[K, V] {
	return &avlIterator[K, V]{
		owner: m,
		node:  x,
	}
}

func (m *avlMap[K, V]) endIterator() *avlIterator[K, V] {
	return &avlIterator[K, V]{
		owner: m,
		isEnd: true,
	}
}

func (it *avlIterator[K, V]) deref() (*avlNode[K, V], error) {
	if it.isEnd {
		return nil, infra.WrapErrorStackWithMessage(ErrAVLInvalidIterator, "dereference end iterator")
	}
	if it.node == nil || it.node.dead {
		return nil, infra.WrapErrorStackWithMessage(ErrAVLInvalidIterator, "dereference erased node")
	}
	return it.node, nil
}

func (it *avlIterator[K, V]) Key() (key K, err error) {
	x, err := it.deref()
	if err != nil {
		return key, err
	}
	return x.key, nil
}

func (it *avlIterator[K, V]) Val() (val V, err error) {
	x, err := it.deref()
	if err != nil {
		return val, err
	}
	return x.val, nil
}

func (it *avlIterator[K, V]) ValRef() (*V, error) {
	x, err := it.deref()
	if err != nil {
		return nil, err
	}
	return &x.val, nil
}

func (it *avlIterator[K, V]) SetVal(val V) error {
	x, err := it.deref()
	if err != nil {
		return err
	}
	x.val = val
	return nil
}

func (it *avlIterator[K, V]) IsEnd() bool {
	return it.isEnd
}

/*
n1: X has right subtree, the successor is the leftmost node of it.

n2: Climb while X is a right child. Stop at the parent reached by the
first left turn. If the climbing reaches the root, X is the maximum
and the iterator turns into end.
*/
func (it *avlIterator[K, V]) Next() error {
	if it.isEnd {
		return infra.WrapErrorStackWithMessage(ErrAVLInvalidIterator, "advance end iterator")
	}
	x, err := it.deref()
	if err != nil {
		return err
	}
	if succ := x.succ(); succ != nil {
		it.node = succ
	} else {
		it.node, it.isEnd = nil, true
	}
	return nil
}

/*
p1: The end iterator moves to the rightmost node of the whole tree.

p2: X has left subtree, the predecessor is the rightmost node of it.

p3: Climb while X is a left child. Stop at the parent reached by the
first right turn. If the climbing reaches the root, X is the minimum
and the iterator is left unchanged.
*/
func (it *avlIterator[K, V]) Prev() error {
	if /* p1 */ it.isEnd {
		if it.owner == nil || it.owner.root == nil {
			return infra.WrapErrorStackWithMessage(ErrAVLInvalidIterator, "retreat end iterator of empty map")
		}
		it.node, it.isEnd = it.owner.root.maximum(), false
		return nil
	}
	x, err := it.deref()
	if err != nil {
		return err
	}
	pred := x.pred()
	if pred == nil {
		return infra.WrapErrorStackWithMessage(ErrAVLInvalidIterator, "retreat past the minimum")
	}
	it.node = pred
	return nil
}

func (it *avlIterator[K, V]) Equal(other ReadOnlyAVLIterator[K, V]) bool {
	o := unwrapAVLIterator[K, V](other)
	if it == nil || o == nil {
		return it == nil && o == nil
	}
	if it.owner != o.owner {
		return false
	}
	if it.isEnd || o.isEnd {
		return it.isEnd == o.isEnd
	}
	return it.node == o.node
}

func (it *avlIterator[K, V]) Clone() AVLIterator[K, V] {
	return &avlIterator[K, V]{
		owner: it.owner,
		node:  it.node,
		isEnd: it.isEnd,
	}
}

func unwrapAVLIterator[K any, V any](it ReadOnlyAVLIterator[K, V]) *avlIterator[K, V] {
	switch x := it.(type) {
	case *avlIterator[K, V]:
		return x
	case *avlReadOnlyIterator[K, V]:
		if x == nil {
			return nil
		}
		return x.it
	default:
	}
	return nil
}

// avlReadOnlyIterator hides the value writers.
type avlReadOnlyIterator[K any, V any] struct {
	it *avlIterator[K, V]
}

var _ ReadOnlyAVLIterator[int, int] = (*avlReadOnlyIterator[int, int])(nil)

func (it *avlReadOnlyIterator[K, V]) Key() (K, error) {
	return it.it.Key()
}

func (it *avlReadOnlyIterator[K, V]) Val() (V, error) {
	return it.it.Val()
}

func (it *avlReadOnlyIterator[K, V]) IsEnd() bool {
	return it.it.IsEnd()
}

func (it *avlReadOnlyIterator[K, V]) Next() error {
	return it.it.Next()
}

func (it *avlReadOnlyIterator[K, V]) Prev() error {
	return it.it.Prev()
}

func (it *avlReadOnlyIterator[K, V]) Equal(other ReadOnlyAVLIterator[K, V]) bool {
	return it.it.Equal(other)
}
