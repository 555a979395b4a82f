package queue

import "errors"

var ErrPQInvalidMerge = errors.New("[leftist-pq] invalid merge")

type PriorityQueue[E comparable] interface {
	Len() int64
	Push(item PQItem[E])
	Pop() ReadOnlyPQItem[E]
	Peek() ReadOnlyPQItem[E]
}

// MeldablePriorityQueue merges two queues in O(log n).
type MeldablePriorityQueue[E comparable] interface {
	PriorityQueue[E]
	// Merge drains all of the items of other into the current queue.
	Merge(other MeldablePriorityQueue[E]) error
	Clone() MeldablePriorityQueue[E]
	Clear()
}

type ReadOnlyPQItem[E comparable] interface {
	Index() int64
	Value() E
	Priority() int64
}

type CmpEnum int64

const (
	iLTj CmpEnum = -1 + iota
	iEQj
	iGTj
)

// PQItemLessThenComparator
// Priority queue item comparator
// if return 1, i > j
// if return 0, i == j
// if return -1, i < j
// The item i is served before j iff it returns -1.
type PQItemLessThenComparator[E comparable] func(i, j ReadOnlyPQItem[E]) CmpEnum

type PQItem[E comparable] interface {
	ReadOnlyPQItem[E]
	SetIndex(idx int64)
	SetPriority(pri int64)
}
