package tree

import (
	"github.com/benz9527/xrbt/lib/infra"
	"github.com/benz9527/xrbt/lib/queue"
)

// Inorder traversal to implement the DFS without recursion.
// The stack depth is bounded by the tree height.
func inorderForeach[K infra.OrderedKey](root *rbNode[K], action RBForeachAction[K]) {
	stack := make([]*rbNode[K], 0, 64)
	defer func() {
		clear(stack)
	}()

	for aux := root; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		if !action(idx, aux.color, aux.key) {
			return
		}
		idx++
		for aux = aux.right; !aux.isNilLeaf(); aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

func preorderForeach[K infra.OrderedKey](node *rbNode[K], idx *int64, action RBForeachAction[K]) bool {
	if node.isNilLeaf() {
		return true
	}
	if !action(*idx, node.color, node.key) {
		return false
	}
	*idx++
	return preorderForeach(node.left, idx, action) &&
		preorderForeach(node.right, idx, action)
}

func postorderForeach[K infra.OrderedKey](node *rbNode[K], idx *int64, action RBForeachAction[K]) bool {
	if node.isNilLeaf() {
		return true
	}
	if !postorderForeach(node.left, idx, action) ||
		!postorderForeach(node.right, idx, action) {
		return false
	}
	if !action(*idx, node.color, node.key) {
		return false
	}
	*idx++
	return true
}

// BFS traversal by the level-order work queue.
func levelOrderForeach[K infra.OrderedKey](root *rbNode[K], action RBForeachAction[K]) {
	if root.isNilLeaf() {
		return
	}

	// Unbounded queue, push never fails.
	q := queue.NewArrayQueue[*rbNode[K]]()
	_ = q.PushBack(root)
	idx := int64(0)
	for aux, ok := q.PopFront(); ok; aux, ok = q.PopFront() {
		if !action(idx, aux.color, aux.key) {
			return
		}
		idx++
		if !aux.left.isNilLeaf() {
			_ = q.PushBack(aux.left)
		}
		if !aux.right.isNilLeaf() {
			_ = q.PushBack(aux.right)
		}
	}
}

func foreachByOrder[K infra.OrderedKey](root *rbNode[K], order RBTraverseOrder, action RBForeachAction[K]) {
	switch order {
	case PreOrder:
		idx := int64(0)
		preorderForeach(root, &idx, action)
	case PostOrder:
		idx := int64(0)
		postorderForeach(root, &idx, action)
	case LevelOrder:
		levelOrderForeach(root, action)
	case InOrder:
		fallthrough
	default:
		inorderForeach(root, action)
	}
}

func keysByOrder[K infra.OrderedKey](root *rbNode[K], size int64, order RBTraverseOrder) []K {
	keys := make([]K, 0, max(size, 0))
	foreachByOrder(root, order, func(idx int64, color RBColor, key K) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (tree *rbTree[K]) Foreach(action RBForeachAction[K]) {
	inorderForeach(tree.root, action)
}

func (tree *rbTree[K]) PreorderForeach(action RBForeachAction[K]) {
	foreachByOrder(tree.root, PreOrder, action)
}

func (tree *rbTree[K]) PostorderForeach(action RBForeachAction[K]) {
	foreachByOrder(tree.root, PostOrder, action)
}

func (tree *rbTree[K]) LevelOrderForeach(action RBForeachAction[K]) {
	foreachByOrder(tree.root, LevelOrder, action)
}

func (tree *rbTree[K]) Keys(order RBTraverseOrder) []K {
	return keysByOrder(tree.root, tree.count, order)
}
