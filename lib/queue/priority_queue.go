package queue

import (
	"sync"
	"sync/atomic"

	"github.com/benz9527/xtree/lib/infra"
)

type pqItem[E comparable] struct {
	priority int64
	index    int64
	value    E
}

func (item *pqItem[E]) Index() int64 {
	if item == nil {
		return -1
	}
	return atomic.LoadInt64(&item.index)
}

func (item *pqItem[E]) Value() (val E) {
	if item == nil {
		// return empty value by default
		return
	}
	return item.value
}

func (item *pqItem[E]) Priority() int64 {
	if item == nil {
		return -1
	}
	return atomic.LoadInt64(&item.priority)
}

func (item *pqItem[E]) SetIndex(idx int64) {
	if item == nil {
		return
	}
	atomic.StoreInt64(&item.index, idx)
}

func (item *pqItem[E]) SetPriority(pri int64) {
	if item == nil {
		return
	}
	atomic.StoreInt64(&item.priority, pri)
}

func NewPriorityQueueItem[E comparable](val E, pri int64) PQItem[E] {
	return &pqItem[E]{
		priority: pri,
		value:    val,
		index:    0,
	}
}

// The smaller priority is served first.
func minPriorityComparator[E comparable](i, j ReadOnlyPQItem[E]) CmpEnum {
	res := i.Priority() - j.Priority()
	if res > 0 {
		return iGTj
	} else if res < 0 {
		return iLTj
	}
	return iEQj
}

/*
Leftist heap properties:
1. Heap order. Every node is served no later than its children.
2. Leftist. npl(left) >= npl(right) for every node, where npl (null
path length) is the distance to the nearest nil slot. The npl of nil
is -1 and the npl of a leaf is 0.

So the right spine of a heap with n nodes holds at most log2(n+1)
nodes, and the merge only walks along the right spines.
*/

type leftistNode[E comparable] struct {
	item  PQItem[E]
	npl   int64
	left  *leftistNode[E]
	right *leftistNode[E]
}

func (node *leftistNode[E]) nullPathLen() int64 {
	if node == nil {
		return -1
	}
	return node.npl
}

func (node *leftistNode[E]) clone() *leftistNode[E] {
	if node == nil {
		return nil
	}
	item := NewPriorityQueueItem[E](node.item.Value(), node.item.Priority())
	item.SetIndex(node.item.Index())
	return &leftistNode[E]{
		item:  item,
		npl:   node.npl,
		left:  node.left.clone(),
		right: node.right.clone(),
	}
}

type LeftistPriorityQueue[E comparable] struct {
	root       *leftistNode[E]
	count      int64
	seq        int64
	comparator PQItemLessThenComparator[E]
	lock       *sync.Mutex
}

var _ MeldablePriorityQueue[int] = (*LeftistPriorityQueue[int])(nil)

/*
m1: One of the heaps is empty, the other one is the result.

m2: Keep the root served first as the new root, merge the other heap
into its right subtree recursively.

m3: Swap the children if the right one has the longer null path.
*/
func (pq *LeftistPriorityQueue[E]) merge(h1, h2 *leftistNode[E]) *leftistNode[E] {
	if /* m1 */ h1 == nil {
		return h2
	} else if h2 == nil {
		return h1
	}

	/* m2 */
	if pq.comparator(h2.item, h1.item) == iLTj {
		h1, h2 = h2, h1
	}
	h1.right = pq.merge(h1.right, h2)

	if /* m3 */ h1.left.nullPathLen() < h1.right.nullPathLen() {
		h1.left, h1.right = h1.right, h1.left
	}
	h1.npl = h1.right.nullPathLen() + 1
	return h1
}

func (pq *LeftistPriorityQueue[E]) Len() int64 {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	return pq.count
}

func (pq *LeftistPriorityQueue[E]) Push(item PQItem[E]) {
	if item == nil {
		return
	}
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	item.SetIndex(pq.seq)
	pq.seq++
	pq.root = pq.merge(pq.root, &leftistNode[E]{item: item})
	pq.count++
}

func (pq *LeftistPriorityQueue[E]) Pop() ReadOnlyPQItem[E] {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	if pq.root == nil {
		return nil
	}
	top := pq.root
	pq.root = pq.merge(top.left, top.right)
	pq.count--
	top.left, top.right = nil, nil
	top.item.SetIndex(-1)
	return top.item
}

func (pq *LeftistPriorityQueue[E]) Peek() ReadOnlyPQItem[E] {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	if pq.root == nil {
		return nil
	}
	return pq.root.item
}

// Merge only accepts another leftist queue with the same element type.
// The other queue is empty after merged.
func (pq *LeftistPriorityQueue[E]) Merge(other MeldablePriorityQueue[E]) error {
	o, ok := other.(*LeftistPriorityQueue[E])
	if !ok || o == nil {
		return infra.WrapErrorStackWithMessage(ErrPQInvalidMerge, "merge with unknown queue")
	}
	if o == pq {
		return infra.WrapErrorStackWithMessage(ErrPQInvalidMerge, "merge with itself")
	}

	// Detach first, the two locks are never held at the same time.
	if o.lock != nil {
		o.lock.Lock()
	}
	root, count := o.root, o.count
	o.root, o.count = nil, 0
	if o.lock != nil {
		o.lock.Unlock()
	}

	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	pq.root = pq.merge(pq.root, root)
	pq.count += count
	return nil
}

// Clone copies the nodes and the items. The comparator and the thread
// safe setting are shared.
func (pq *LeftistPriorityQueue[E]) Clone() MeldablePriorityQueue[E] {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	cloned := &LeftistPriorityQueue[E]{
		root:       pq.root.clone(),
		count:      pq.count,
		seq:        pq.seq,
		comparator: pq.comparator,
	}
	if pq.lock != nil {
		cloned.lock = &sync.Mutex{}
	}
	return cloned
}

func (pq *LeftistPriorityQueue[E]) Clear() {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	pq.root, pq.count = nil, 0
}

type LeftistPriorityQueueOption[E comparable] func(*LeftistPriorityQueue[E])

func NewLeftistPriorityQueue[E comparable](opts ...LeftistPriorityQueueOption[E]) MeldablePriorityQueue[E] {
	pq := &LeftistPriorityQueue[E]{}
	for _, o := range opts {
		if o != nil {
			o(pq)
		}
	}
	if pq.comparator == nil {
		pq.comparator = minPriorityComparator[E]
	}
	return pq
}

func WithLeftistPriorityQueueComparator[E comparable](fn PQItemLessThenComparator[E]) LeftistPriorityQueueOption[E] {
	return func(pq *LeftistPriorityQueue[E]) {
		if fn == nil {
			fn = minPriorityComparator[E]
		}
		pq.comparator = fn
	}
}

func WithLeftistPriorityQueueEnableThreadSafe[E comparable]() LeftistPriorityQueueOption[E] {
	return func(pq *LeftistPriorityQueue[E]) {
		pq.lock = &sync.Mutex{}
	}
}
