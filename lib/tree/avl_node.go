package tree

type avlNode[K any, V any] struct {
	parent *avlNode[K, V]
	left   *avlNode[K, V]
	right  *avlNode[K, V]
	key    K
	val    V
	height int64
	// Set once the node has been erased or cleared.
	dead bool
}

func (node *avlNode[K, V]) Key() K {
	return node.key
}

func (node *avlNode[K, V]) Val() V {
	return node.val
}

// Height of a nil node is 0.
func (node *avlNode[K, V]) Height() int64 {
	if node == nil {
		return 0
	}
	return node.height
}

func (node *avlNode[K, V]) Left() AVLNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *avlNode[K, V]) Right() AVLNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *avlNode[K, V]) Parent() AVLNode[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *avlNode[K, V]) updateHeight() {
	node.height = 1 + max(node.left.Height(), node.right.Height())
}

// Positive means left heavy.
func (node *avlNode[K, V]) balanceFactor() int64 {
	return node.left.Height() - node.right.Height()
}

func (node *avlNode[K, V]) minimum() *avlNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *avlNode[K, V]) maximum() *avlNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
// Returns nil if the node is the minimum.
func (node *avlNode[K, V]) pred() *avlNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.left != nil {
		return x.left.maximum()
	}

	aux := x.parent
	// Backtrack until the first right turn.
	for aux != nil && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
// Returns nil if the node is the maximum.
func (node *avlNode[K, V]) succ() *avlNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.right != nil {
		return x.right.minimum()
	}

	aux := x.parent
	// Backtrack until the first left turn.
	for aux != nil && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}

// release unlinks the node and marks it dead. The neighbours must
// have been relinked before.
func (node *avlNode[K, V]) release() {
	var (
		k K
		v V
	)
	node.parent, node.left, node.right = nil, nil, nil
	node.key, node.val = k, v
	node.height = 0
	node.dead = true
}

// cloneSubtree copies the subtree with the exact same shape and heights.
func cloneSubtree[K any, V any](src, parent *avlNode[K, V]) *avlNode[K, V] {
	if src == nil {
		return nil
	}
	node := &avlNode[K, V]{
		parent: parent,
		key:    src.key,
		val:    src.val,
		height: src.height,
	}
	node.left = cloneSubtree[K, V](src.left, node)
	node.right = cloneSubtree[K, V](src.right, node)
	return node
}
