package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

type AVLRotation uint8

const (
	// RightRotation fixes the left-left case.
	RightRotation AVLRotation = iota
	// LeftRotation fixes the right-right case.
	LeftRotation
	// LeftRightRotation rotates the left child left, then the node right.
	LeftRightRotation
	// RightLeftRotation rotates the right child right, then the node left.
	RightLeftRotation
)

func (r AVLRotation) String() string {
	switch r {
	case RightRotation:
		return "RightRotation"
	case LeftRotation:
		return "LeftRotation"
	case LeftRightRotation:
		return "LeftRightRotation"
	case RightLeftRotation:
		return "RightLeftRotation"
	default:
	}
	return "UnknownRotation"
}

// AVLNode is the read-only view of a vertex.
// A nil child is returned as a nil interface.
type AVLNode[K any, V any] interface {
	Key() K
	Val() V
	Height() int64
	Left() AVLNode[K, V]
	Right() AVLNode[K, V]
	Parent() AVLNode[K, V]
}

// ReadOnlyAVLIterator is a cursor over the map in key order.
// It is either bound to a live entry or the past-the-end sentinel.
type ReadOnlyAVLIterator[K any, V any] interface {
	Key() (K, error)
	Val() (V, error)
	IsEnd() bool
	// Next moves to the in-order successor or to the end sentinel.
	Next() error
	// Prev moves to the in-order predecessor, the end sentinel moves
	// to the maximum entry.
	Prev() error
	// Equal reports whether both cursors belong to the same map and
	// point to the same entry (or both are end).
	Equal(other ReadOnlyAVLIterator[K, V]) bool
}

type AVLIterator[K any, V any] interface {
	ReadOnlyAVLIterator[K, V]
	// ValRef returns the address of the mapped value. It stays valid
	// until the entry is erased.
	ValRef() (*V, error)
	SetVal(val V) error
	Clone() AVLIterator[K, V]
}

// AVLTree contains the operations shared by the mutable map and
// its read-only view.
type AVLTree[K any, V any] interface {
	Len() int64
	IsEmpty() bool
	Height() int64
	Root() AVLNode[K, V]
	KeyComp() infra.LessFunc[K]
	Count(key K) int64
	// Foreach traverses in order, stops if action returns false.
	Foreach(action func(idx int64, key K, val V) bool)
	All() iter.Seq2[K, V]
	Backward() iter.Seq2[K, V]
}

type ReadOnlyAVLMap[K any, V any] interface {
	AVLTree[K, V]
	// At returns ErrAVLOutOfRange if the key does not exist.
	At(key K) (V, error)
	// Index behaves like At. It never inserts.
	Index(key K) (V, error)
	Find(key K) ReadOnlyAVLIterator[K, V]
	Begin() ReadOnlyAVLIterator[K, V]
	End() ReadOnlyAVLIterator[K, V]
}

type AVLMap[K any, V any] interface {
	AVLTree[K, V]
	// At returns ErrAVLOutOfRange if the key does not exist.
	At(key K) (*V, error)
	// Index returns the mapped value, inserting a zero value if the
	// key does not exist.
	Index(key K) *V
	Find(key K) AVLIterator[K, V]
	Begin() AVLIterator[K, V]
	End() AVLIterator[K, V]
	// Insert keeps the existing value untouched if the key exists and
	// returns the iterator to it with false.
	Insert(key K, val V) (AVLIterator[K, V], bool)
	Erase(it AVLIterator[K, V]) error
	EraseKey(key K) int64
	Clear()
	// Clone deep copies the map with the same shape.
	Clone() AVLMap[K, V]
	// CopyFrom releases the current entries and deep copies src.
	CopyFrom(src ReadOnlyAVLMap[K, V])
	ReadOnly() ReadOnlyAVLMap[K, V]
}

// AVLMapStats receives the structural events of a map.
type AVLMapStats interface {
	RecordRotation(kind AVLRotation)
	RecordLen(delta int64)
}
