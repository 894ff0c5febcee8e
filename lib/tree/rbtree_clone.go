package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xrbt/lib/infra"
	"github.com/benz9527/xrbt/lib/queue"
)

func (tree *rbTree[K]) Clone() RBTree[K] {
	return tree.clone()
}

// The clone is rebalanced by itself instead of copying the
// structure, so it is a valid red-black tree in O(nlogn).
// Stats are not inherited.
func (tree *rbTree[K]) clone() *rbTree[K] {
	opts := make([]RBTreeOpt[K], 0, 3)
	if tree.isDesc {
		opts = append(opts, WithRBTreeDesc[K]())
	}
	if tree.isRmBorrowPred {
		opts = append(opts, WithRBTreeRemoveBorrowPred[K]())
	}
	if tree.logger != nil {
		opts = append(opts, WithRBTreeLogger[K](tree.logger))
	}
	c := newRBTree[K](opts...)
	levelOrderForeach(tree.root, func(idx int64, color RBColor, key K) bool {
		if err := c.Insert(key); err != nil {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] clone with duplicate key")
		}
		return true
	})
	return c
}

func (tree *rbTree[K]) Invert() InvertedRBTree[K] {
	c := tree.clone()
	invert(c.root)
	return &invertedRBTree[K]{tree: c}
}

func invert[K infra.OrderedKey](node *rbNode[K]) {
	if node.isNilLeaf() {
		return
	}
	node.left, node.right = node.right, node.left
	invert(node.left)
	invert(node.right)
}

// Release unlinks the nodes level by level, then the sentinel.
// An empty tree is left untouched and still usable.
func (tree *rbTree[K]) Release() {
	if tree.isReleased() || tree.root.isNilLeaf() {
		return
	}

	released := int64(0)
	// Each node is queued once, so the count bounds the queue.
	q := queue.NewArrayQueue[*rbNode[K]](
		queue.WithArrayQueueCapacity[*rbNode[K]](tree.count>>1 + 1),
		queue.WithArrayQueueMaxCapacity[*rbNode[K]](tree.count),
	)
	_ = q.PushBack(tree.root)
	for aux, ok := q.PopFront(); ok; aux, ok = q.PopFront() {
		for _, child := range []*rbNode[K]{aux.left, aux.right} {
			if child.isNilLeaf() {
				continue
			}
			if err := q.PushBack(child); err != nil {
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] released nodes overflow the count")
			}
		}
		aux.parent, aux.left, aux.right = nil, nil, nil
		released++
	}
	if released != tree.count {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] released nodes mismatch the count")
	}

	tree.stats.RecordReleasedCount(released)
	if tree.logger != nil {
		tree.logger.Debug("[rbtree] released", zap.Int64("nodes", released))
	}
	tree.root = nil
	tree.sentinel.parent, tree.sentinel.left, tree.sentinel.right = nil, nil, nil
	tree.sentinel = nil
	tree.count = 0
}

var _ InvertedRBTree[int] = (*invertedRBTree[int])(nil)

type invertedRBTree[K infra.OrderedKey] struct {
	tree *rbTree[K]
}

func (inv *invertedRBTree[K]) Len() int64 {
	return inv.tree.Len()
}

func (inv *invertedRBTree[K]) Root() RBNode[K] {
	return inv.tree.Root()
}

func (inv *invertedRBTree[K]) Height() int64 {
	return inv.tree.Height()
}

func (inv *invertedRBTree[K]) Foreach(action RBForeachAction[K]) {
	inv.tree.Foreach(action)
}

func (inv *invertedRBTree[K]) PreorderForeach(action RBForeachAction[K]) {
	inv.tree.PreorderForeach(action)
}

func (inv *invertedRBTree[K]) PostorderForeach(action RBForeachAction[K]) {
	inv.tree.PostorderForeach(action)
}

func (inv *invertedRBTree[K]) LevelOrderForeach(action RBForeachAction[K]) {
	inv.tree.LevelOrderForeach(action)
}

func (inv *invertedRBTree[K]) Keys(order RBTraverseOrder) []K {
	return inv.tree.Keys(order)
}

func (inv *invertedRBTree[K]) Release() {
	inv.tree.Release()
}
