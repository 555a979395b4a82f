package tree

import (
	"fmt"

	"go.uber.org/multierr"
)

// avl rule validation utilities.

func isNilNode[K any, V any](node AVLNode[K, V]) bool {
	if node == nil {
		return true
	}
	if x, ok := node.(*avlNode[K, V]); ok && x == nil {
		return true
	}
	return false
}

// Preorder traversal to visit all reachable nodes.
func preorder[K any, V any](tree AVLTree[K, V], action func(node AVLNode[K, V]) error) error {
	root := tree.Root()
	if isNilNode[K, V](root) {
		return nil
	}

	stack := make([]AVLNode[K, V], 0, root.Height()<<1)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, root)

	var merr error
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		merr = multierr.Append(merr, action(aux))
		if r := aux.Right(); !isNilNode[K, V](r) {
			stack = append(stack, r)
		}
		if l := aux.Left(); !isNilNode[K, V](l) {
			stack = append(stack, l)
		}
	}
	return merr
}

// AVLBalanceViolationValidate checks the height bookkeeping and
// |height(left) - height(right)| <= 1 of every node.
func AVLBalanceViolationValidate[K any, V any](tree AVLTree[K, V]) error {
	return preorder[K, V](tree, func(node AVLNode[K, V]) error {
		var lh, rh int64
		if l := node.Left(); !isNilNode[K, V](l) {
			lh = l.Height()
		}
		if r := node.Right(); !isNilNode[K, V](r) {
			rh = r.Height()
		}
		if node.Height() != 1+max(lh, rh) {
			return fmt.Errorf("avl height violation at key %v: height %d, left %d, right %d",
				node.Key(), node.Height(), lh, rh)
		}
		if diff := lh - rh; diff > 1 || diff < -1 {
			return fmt.Errorf("avl balance violation at key %v: left %d, right %d",
				node.Key(), lh, rh)
		}
		return nil
	})
}

// AVLParentLinkViolationValidate checks that every child points back
// to its parent and the root has no parent.
func AVLParentLinkViolationValidate[K any, V any](tree AVLTree[K, V]) error {
	if root := tree.Root(); !isNilNode[K, V](root) && !isNilNode[K, V](root.Parent()) {
		return fmt.Errorf("avl parent link violation: root %v has parent", root.Key())
	}
	return preorder[K, V](tree, func(node AVLNode[K, V]) error {
		var merr error
		if l := node.Left(); !isNilNode[K, V](l) && l.Parent() != node {
			merr = multierr.Append(merr, fmt.Errorf("avl parent link violation: left child of %v", node.Key()))
		}
		if r := node.Right(); !isNilNode[K, V](r) && r.Parent() != node {
			merr = multierr.Append(merr, fmt.Errorf("avl parent link violation: right child of %v", node.Key()))
		}
		return merr
	})
}

// AVLOrderViolationValidate checks that the inorder traversal is
// strictly increasing under the map key comparator.
func AVLOrderViolationValidate[K any, V any](tree AVLTree[K, V]) error {
	less := tree.KeyComp()
	var (
		prev    K
		hasPrev bool
		err     error
	)
	tree.Foreach(func(idx int64, key K, val V) bool {
		if hasPrev && !less(prev, key) {
			err = fmt.Errorf("avl order violation at index %d: %v is not less than %v", idx, prev, key)
			return false
		}
		prev, hasPrev = key, true
		return true
	})
	return err
}

// AVLSizeViolationValidate checks that the cached length equals the
// number of reachable nodes.
func AVLSizeViolationValidate[K any, V any](tree AVLTree[K, V]) error {
	reachable := int64(0)
	_ = preorder[K, V](tree, func(node AVLNode[K, V]) error {
		reachable++
		return nil
	})
	if reachable != tree.Len() {
		return fmt.Errorf("avl size violation: len %d, reachable %d", tree.Len(), reachable)
	}
	return nil
}

// AVLViolationValidate combines all of the avl rule validations.
func AVLViolationValidate[K any, V any](tree AVLTree[K, V]) error {
	return multierr.Combine(
		AVLBalanceViolationValidate[K, V](tree),
		AVLParentLinkViolationValidate[K, V](tree),
		AVLOrderViolationValidate[K, V](tree),
		AVLSizeViolationValidate[K, V](tree),
	)
}
