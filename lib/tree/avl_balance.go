package tree

// References:
// https://en.wikipedia.org/wiki/AVL_tree#Rebalancing
// avl properties:
// p1. Every node's height is 1 + max(height(left), height(right)),
//   a nil child's height is 0.
// p2. For every node |height(left) - height(right)| <= 1.
// So the height of a tree with n nodes is less than 1.44 * log2(n + 2).

/*
	  |                         |
	  X                         Y
	 / \     rotateLeft(X)     / \
	L   Y    ============>    X   Yr
	   / \                   / \
	 Yl   Yr                L   Yl
*/
func rotateLeft[K any, V any](x *avlNode[K, V]) *avlNode[K, V] {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[avl-map] left rotate node x is nil or x.right is nil")
	}

	y := x.right
	x.right, y.left = y.left, x
	if x.right != nil {
		x.right.parent = x
	}
	y.parent, x.parent = x.parent, y

	x.updateHeight()
	y.updateHeight()
	return y
}

/*
	     |                         |
	     X                         Y
	    / \     rotateRight(X)    / \
	   Y   R    ============>    Yl  X
	  / \                           / \
	Yl   Yr                       Yr   R
*/
func rotateRight[K any, V any](x *avlNode[K, V]) *avlNode[K, V] {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[avl-map] right rotate node x is nil or x.left is nil")
	}

	y := x.left
	x.left, y.right = y.right, x
	if x.left != nil {
		x.left.parent = x
	}
	y.parent, x.parent = x.parent, y

	x.updateHeight()
	y.updateHeight()
	return y
}

/*
b1: The left subtree is taller by 2 and the left child is not right heavy.
Single right rotation.

	     X                  L
	    / \                / \
	   L   R    ====>    Ll   X
	  / \                    / \
	Ll   Lr                Lr   R

b2: The left subtree is taller by 2 and the left child is right heavy.
Rotate the left child left, then rotate X right.

	     X                X                 Lr
	    / \              / \               /  \
	   L   R   ====>   Lr   R   ====>     L    X
	  / \             /                  /    / \
	Ll   Lr          L                 Ll   ..   R
	                /
	              Ll

b3, b4: Mirror of b1 and b2.

rebalance recomputes the height of X and returns the new root of the
subtree. The caller links the returned root into the parent slot.
The parent back-reference of the returned root is always X's parent.
*/
func (m *avlMap[K, V]) rebalance(x *avlNode[K, V]) *avlNode[K, V] {
	x.updateHeight()

	var kind AVLRotation
	switch bf := x.balanceFactor(); {
	case bf > 1:
		if /* b1 */ x.left.left.Height() >= x.left.right.Height() {
			kind = RightRotation
		} else /* b2 */ {
			x.left = rotateLeft[K, V](x.left)
			kind = LeftRightRotation
		}
		x = rotateRight[K, V](x)
	case bf < -1:
		if /* b3 */ x.right.right.Height() >= x.right.left.Height() {
			kind = LeftRotation
		} else /* b4 */ {
			x.right = rotateRight[K, V](x.right)
			kind = RightLeftRotation
		}
		x = rotateLeft[K, V](x)
	default:
		return x
	}

	if m.stats != nil {
		m.stats.RecordRotation(kind)
	}
	return x
}
