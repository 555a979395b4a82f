package tree

import (
	"iter"

	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
)

// avlMap is not thread safe. All of the mutations (insert, erase, clear
// and copy) must be serialized by the caller.
type avlMap[K any, V any] struct {
	root   *avlNode[K, V]
	count  int64
	less   infra.LessFunc[K]
	logger xlog.XLogger
	stats  AVLMapStats
}

var _ AVLMap[int, int] = (*avlMap[int, int])(nil)

func (m *avlMap[K, V]) Len() int64 {
	return m.count
}

func (m *avlMap[K, V]) IsEmpty() bool {
	return m.count == 0
}

func (m *avlMap[K, V]) Height() int64 {
	return m.root.Height()
}

func (m *avlMap[K, V]) Root() AVLNode[K, V] {
	if m.root == nil {
		return nil
	}
	return m.root
}

func (m *avlMap[K, V]) KeyComp() infra.LessFunc[K] {
	return m.less
}

func (m *avlMap[K, V]) search(key K) *avlNode[K, V] {
	for aux := m.root; aux != nil; {
		if m.less(key, aux.key) {
			aux = aux.left
		} else if m.less(aux.key, key) {
			aux = aux.right
		} else {
			return aux
		}
	}
	return nil
}

func (m *avlMap[K, V]) Find(key K) AVLIterator[K, V] {
	if x := m.search(key); x != nil {
		return m.iterator(x)
	}
	return m.endIterator()
}

func (m *avlMap[K, V]) Count(key K) int64 {
	if m.search(key) != nil {
		return 1
	}
	return 0
}

func (m *avlMap[K, V]) At(key K) (*V, error) {
	x := m.search(key)
	if x == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrAVLOutOfRange, "at")
	}
	return &x.val, nil
}

func (m *avlMap[K, V]) Index(key K) *V {
	if x := m.search(key); x != nil {
		return &x.val
	}
	var zero V
	x, _ := m.insertNode(key, zero)
	return &x.val
}

func (m *avlMap[K, V]) Begin() AVLIterator[K, V] {
	if m.root == nil {
		return m.endIterator()
	}
	return m.iterator(m.root.minimum())
}

func (m *avlMap[K, V]) End() AVLIterator[K, V] {
	return m.endIterator()
}

func (m *avlMap[K, V]) Insert(key K, val V) (AVLIterator[K, V], bool) {
	x, inserted := m.insertNode(key, val)
	return m.iterator(x), inserted
}

func (m *avlMap[K, V]) insertNode(key K, val V) (*avlNode[K, V], bool) {
	root, target, inserted, _ := m.insert(m.root, nil, key, val)
	m.root = root
	if inserted {
		m.count++
		if m.stats != nil {
			m.stats.RecordLen(1)
		}
	}
	return target, inserted
}

/*
i1: Reach a nil slot, create the new leaf node with height 1.

i2: The key exists, return the existing node without any modification.

i3: Insert into the left or right subtree recursively. If the subtree
did not grow, no ancestor height changes, stop rebalancing.
Otherwise, rebalance X and report whether the whole subtree grew.
*/
func (m *avlMap[K, V]) insert(
	x, parent *avlNode[K, V],
	key K, val V,
) (root, target *avlNode[K, V], inserted, grown bool) {
	if /* i1 */ x == nil {
		node := &avlNode[K, V]{
			parent: parent,
			key:    key,
			val:    val,
			height: 1,
		}
		return node, node, true, true
	}

	if /* i3 */ m.less(key, x.key) {
		x.left, target, inserted, grown = m.insert(x.left, x, key, val)
	} else if m.less(x.key, key) {
		x.right, target, inserted, grown = m.insert(x.right, x, key, val)
	} else /* i2 */ {
		return x, x, false, false
	}

	if !grown {
		return x, target, inserted, false
	}
	prevHeight := x.height
	root = m.rebalance(x)
	return root, target, inserted, root.height > prevHeight
}

func (m *avlMap[K, V]) Erase(it AVLIterator[K, V]) error {
	x, ok := it.(*avlIterator[K, V])
	var err error
	if !ok || x == nil {
		err = infra.WrapErrorStackWithMessage(ErrAVLInvalidIterator, "erase by unknown iterator")
	} else if x.owner != m {
		err = infra.WrapErrorStackWithMessage(ErrAVLInvalidIterator, "erase by iterator of another map")
	} else if x.isEnd {
		err = infra.WrapErrorStackWithMessage(ErrAVLInvalidIterator, "erase by end iterator")
	} else if x.node == nil || x.node.dead || !m.reachable(x.node) {
		err = infra.WrapErrorStackWithMessage(ErrAVLInvalidIterator, "erase by unreachable node")
	}
	if err != nil {
		if m.logger != nil {
			m.logger.ErrorStack(err, "[avl-map] erase rejected", zap.Int64("len", m.count))
		}
		return err
	}

	m.eraseNode(x.node)
	return nil
}

func (m *avlMap[K, V]) EraseKey(key K) int64 {
	x := m.search(key)
	if x == nil {
		return 0
	}
	m.eraseNode(x)
	return 1
}

func (m *avlMap[K, V]) eraseNode(x *avlNode[K, V]) {
	m.root, _ = m.erase(m.root, x)
	m.count--
	if m.stats != nil {
		m.stats.RecordLen(-1)
	}
}

// reachable climbs the parent links, the node belongs to the map
// iff the top is the current root.
func (m *avlMap[K, V]) reachable(x *avlNode[K, V]) bool {
	aux := x
	for ; aux != nil && aux.parent != nil; aux = aux.parent {
	}
	return aux != nil && aux == m.root
}

/*
r1: Target T has at most one child. Link the child (maybe nil) into
T's slot and release T. The subtree shrinks.

r2: Target T has two children. Relocate the successor node S (the
leftmost node of T's right subtree) into T's position, T moves to the
former position of S. The payloads are not copied, so an iterator to S
stays valid. T has no left child now, remove it from the right subtree
of S by r1.

S is T's right child:

	  T                 S
	 / \               / \
	L   S    ====>    L   T
	     \                 \
	      Sr                Sr

S is deeper:

	  T                 S
	 / \               / \
	L   R    ====>    L   R
	   /                 /
	 ..                ..
	 /                 /
	S                 T
	 \                 \
	  Sr                Sr

r3: Erase from the left or right subtree recursively. If the subtree
did not shrink, stop rebalancing. Otherwise, rebalance X and report
whether the whole subtree shrank.
*/
func (m *avlMap[K, V]) erase(x, target *avlNode[K, V]) (root *avlNode[K, V], shrunk bool) {
	if x == nil {
		// impossible run to here
		panic( /* debug assertion */ "[avl-map] erase target is not reachable")
	}

	if x == target {
		if /* r1 */ x.left == nil || x.right == nil {
			child := x.left
			if child == nil {
				child = x.right
			}
			if child != nil {
				child.parent = x.parent
			}
			x.release()
			return child, true
		}

		/* r2 */
		prevHeight := x.height
		s := relocateSuccessor[K, V](x)
		if s.right, shrunk = m.erase(s.right, x); !shrunk {
			return s, false
		}
		root = m.rebalance(s)
		return root, root.height < prevHeight
	}

	/* r3 */
	if m.less(target.key, x.key) {
		x.left, shrunk = m.erase(x.left, target)
	} else {
		x.right, shrunk = m.erase(x.right, target)
	}
	if !shrunk {
		return x, false
	}
	prevHeight := x.height
	root = m.rebalance(x)
	return root, root.height < prevHeight
}

// relocateSuccessor swaps the structural positions of x and its
// successor, and returns the successor. The slot of x in its parent
// is left to the caller.
func relocateSuccessor[K any, V any](x *avlNode[K, V]) *avlNode[K, V] {
	s := x.right.minimum()
	sParent, sRight, sHeight := s.parent, s.right, s.height

	s.parent = x.parent
	s.left = x.left
	s.left.parent = s
	s.height = x.height
	if sParent == x {
		s.right = x
		x.parent = s
	} else {
		s.right = x.right
		s.right.parent = s
		sParent.left = x
		x.parent = sParent
	}

	x.left = nil
	x.right = sRight
	if sRight != nil {
		sRight.parent = x
	}
	x.height = sHeight
	return s
}

// Clear releases all nodes. Iterators into the map become invalid.
func (m *avlMap[K, V]) Clear() {
	released := m.release()
	if released > 0 && m.stats != nil {
		m.stats.RecordLen(-released)
	}
	if m.logger != nil {
		m.logger.Debug("[avl-map] clear", zap.Int64("released", released))
	}
}

// Post-order release with an explicit stack to avoid deep recursion.
func (m *avlMap[K, V]) release() int64 {
	aux := m.root
	m.root = nil
	m.count = 0
	if aux == nil {
		return 0
	}

	released := int64(0)
	stack := make([]*avlNode[K, V], 0, aux.height<<1)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		if aux.left != nil {
			stack = append(stack, aux.left)
		}
		if aux.right != nil {
			stack = append(stack, aux.right)
		}
		aux.release()
		released++
	}
	return released
}

// Clone shares the stats with m, the cloned entries are recorded
// as its own length.
func (m *avlMap[K, V]) Clone() AVLMap[K, V] {
	cloned := &avlMap[K, V]{
		root:   cloneSubtree[K, V](m.root, nil),
		count:  m.count,
		less:   m.less,
		logger: m.logger,
		stats:  m.stats,
	}
	if cloned.stats != nil && cloned.count > 0 {
		cloned.stats.RecordLen(cloned.count)
	}
	return cloned
}

func (m *avlMap[K, V]) CopyFrom(src ReadOnlyAVLMap[K, V]) {
	if src == nil {
		return
	}
	if view, ok := src.(*avlMapView[K, V]); ok {
		if /* self assignment */ view.m == m {
			return
		}
		released := m.release()
		m.root = cloneSubtree[K, V](view.m.root, nil)
		m.count = view.m.count
		m.less = view.m.less
		if m.stats != nil {
			m.stats.RecordLen(m.count - released)
		}
		if m.logger != nil {
			m.logger.Debug("[avl-map] copy from avl map",
				zap.Int64("released", released),
				zap.Int64("len", m.count),
			)
		}
		return
	}

	// Unknown implementation, rebuild by ordered insertion.
	released := m.release()
	m.less = src.KeyComp()
	src.Foreach(func(idx int64, key K, val V) bool {
		root, _, _, _ := m.insert(m.root, nil, key, val)
		m.root = root
		m.count++
		return true
	})
	if m.stats != nil {
		m.stats.RecordLen(m.count - released)
	}
	if m.logger != nil {
		m.logger.Debug("[avl-map] copy from ordered map",
			zap.Int64("released", released),
			zap.Int64("len", m.count),
		)
	}
}

func (m *avlMap[K, V]) ReadOnly() ReadOnlyAVLMap[K, V] {
	return &avlMapView[K, V]{m: m}
}

// Inorder traversal to implement the DFS.
func (m *avlMap[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	aux := m.root
	if aux == nil {
		return
	}

	stack := make([]*avlNode[K, V], 0, aux.height)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; !action(idx, aux.key, aux.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

func (m *avlMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for aux := m.root.minimum(); aux != nil; aux = aux.succ() {
			if !yield(aux.key, aux.val) {
				return
			}
		}
	}
}

func (m *avlMap[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for aux := m.root.maximum(); aux != nil; aux = aux.pred() {
			if !yield(aux.key, aux.val) {
				return
			}
		}
	}
}

type AVLMapOption[K any, V any] func(*avlMap[K, V])

// WithAVLMapLogger logs the rejected erasures with error stack and
// the bulk operations.
func WithAVLMapLogger[K any, V any](logger xlog.XLogger) AVLMapOption[K, V] {
	return func(m *avlMap[K, V]) {
		m.logger = logger
	}
}

func WithAVLMapStats[K any, V any](stats AVLMapStats) AVLMapOption[K, V] {
	return func(m *avlMap[K, V]) {
		m.stats = stats
	}
}

// NewAVLMap orders the keys by the natural ascending order.
func NewAVLMap[K infra.OrderedKey, V any](opts ...AVLMapOption[K, V]) AVLMap[K, V] {
	return NewAVLMapFunc[K, V](infra.OrderedKeyLess[K], opts...)
}

// NewAVLMapFunc orders the keys by less, which must be a strict weak order.
func NewAVLMapFunc[K any, V any](less infra.LessFunc[K], opts ...AVLMapOption[K, V]) AVLMap[K, V] {
	if less == nil {
		panic( /* debug assertion */ "[avl-map] nil key comparator")
	}
	m := &avlMap[K, V]{
		less: less,
	}
	for _, o := range opts {
		if o != nil {
			o(m)
		}
	}
	return m
}
