package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

// avlMapView is the read-only view of the map. It shares the nodes
// with the map, so it observes all of the later mutations.
type avlMapView[K any, V any] struct {
	m *avlMap[K, V]
}

var _ ReadOnlyAVLMap[int, int] = (*avlMapView[int, int])(nil)

func (v *avlMapView[K, V]) Len() int64 {
	return v.m.Len()
}

func (v *avlMapView[K, V]) IsEmpty() bool {
	return v.m.IsEmpty()
}

func (v *avlMapView[K, V]) Height() int64 {
	return v.m.Height()
}

func (v *avlMapView[K, V]) Root() AVLNode[K, V] {
	return v.m.Root()
}

func (v *avlMapView[K, V]) KeyComp() infra.LessFunc[K] {
	return v.m.KeyComp()
}

func (v *avlMapView[K, V]) Count(key K) int64 {
	return v.m.Count(key)
}

func (v *avlMapView[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	v.m.Foreach(action)
}

func (v *avlMapView[K, V]) All() iter.Seq2[K, V] {
	return v.m.All()
}

func (v *avlMapView[K, V]) Backward() iter.Seq2[K, V] {
	return v.m.Backward()
}

func (v *avlMapView[K, V]) At(key K) (val V, err error) {
	x := v.m.search(key)
	if x == nil {
		return val, infra.WrapErrorStackWithMessage(ErrAVLOutOfRange, "read-only at")
	}
	return x.val, nil
}

// Index never inserts, a missing key is reported as out of range.
func (v *avlMapView[K, V]) Index(key K) (val V, err error) {
	x := v.m.search(key)
	if x == nil {
		return val, infra.WrapErrorStackWithMessage(ErrAVLOutOfRange, "read-only index")
	}
	return x.val, nil
}

func (v *avlMapView[K, V]) Find(key K) ReadOnlyAVLIterator[K, V] {
	if x := v.m.search(key); x != nil {
		return &avlReadOnlyIterator[K, V]{it: v.m.iterator(x)}
	}
	return &avlReadOnlyIterator[K, V]{it: v.m.endIterator()}
}

func (v *avlMapView[K, V]) Begin() ReadOnlyAVLIterator[K, V] {
	if v.m.root == nil {
		return &avlReadOnlyIterator[K, V]{it: v.m.endIterator()}
	}
	return &avlReadOnlyIterator[K, V]{it: v.m.iterator(v.m.root.minimum())}
}

func (v *avlMapView[K, V]) End() ReadOnlyAVLIterator[K, V] {
	return &avlReadOnlyIterator[K, V]{it: v.m.endIterator()}
}
