package tree

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xrbt/lib/infra"
	"github.com/benz9527/xrbt/lib/queue"
)

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

func asRBTree[K infra.OrderedKey](tree rbTraversable[K]) (*rbTree[K], error) {
	if t, ok := tree.(*rbTree[K]); ok {
		return t, nil
	}
	return nil, infra.NewErrorStack(fmt.Sprintf("[rbtree] unsupported tree type %T", tree))
}

func blackDepthTo[K infra.OrderedKey](target, to *rbNode[K]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.parent {
		if aux.isBlack() {
			depth++
		}
	}
	return depth
}

// RootColorValidate checks the root is black and its parent is the sentinel.
func RootColorValidate[K infra.OrderedKey](tree RBTree[K]) error {
	t, err := asRBTree[K](tree)
	if err != nil {
		return err
	}
	if t.isReleased() || t.root == t.sentinel {
		return nil
	}
	if t.root.color != Black {
		return infra.NewErrorStack("[rbtree] root violation, root is red")
	}
	if t.root.parent != t.sentinel {
		return infra.NewErrorStack("[rbtree] root violation, root's parent is not the sentinel")
	}
	return nil
}

// SentinelValidate checks the sentinel is black and detached.
func SentinelValidate[K infra.OrderedKey](tree RBTree[K]) error {
	t, err := asRBTree[K](tree)
	if err != nil {
		return err
	}
	if t.isReleased() {
		return nil
	}
	s := t.sentinel
	if s.color != Black || !s.sentinel {
		return infra.NewErrorStack("[rbtree] sentinel violation, sentinel is not black")
	}
	if s.parent != nil || s.left != nil || s.right != nil {
		return infra.NewErrorStack("[rbtree] sentinel violation, sentinel has links")
	}
	return nil
}

// RedViolationValidate inorder traversal to validate no red node has a red child.
func RedViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	t, err := asRBTree[K](tree)
	if err != nil {
		return err
	}

	stack := make([]*rbNode[K], 0, 64)
	defer func() {
		clear(stack)
	}()

	for aux := t.root; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		if aux.isRed() && (aux.left.isRed() || aux.right.isRed() || aux.parent.isRed()) {
			return infra.NewErrorStack(fmt.Sprintf("[rbtree] red violation at key %v", aux.key))
		}
		for aux = aux.right; !aux.isNilLeaf(); aux = aux.left {
			stack = append(stack, aux)
		}
	}
	return nil
}

// BFS traversal to load all nodes which hold the sentinel as a child.
func bfsLeaves[K infra.OrderedKey](t *rbTree[K]) []*rbNode[K] {
	if t.root.isNilLeaf() {
		return nil
	}

	leaves := make([]*rbNode[K], 0, t.count>>1+1)
	q := queue.NewArrayQueue[*rbNode[K]]()
	_ = q.PushBack(t.root)
	for aux, ok := q.PopFront(); ok; aux, ok = q.PopFront() {
		l, r := aux.left, aux.right
		if /* nil leaves, keep one */ l.isNilLeaf() || r.isNilLeaf() {
			leaves = append(leaves, aux)
		}
		if !l.isNilLeaf() {
			_ = q.PushBack(l)
		}
		if !r.isNilLeaf() {
			_ = q.PushBack(r)
		}
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [50]
	        /  \
	     <20>   [75]
	     /  \    /  \
	  [10] [35] <62> <98>
	  /
	<1>

Each path from root to the sentinel passes the same number of black nodes.
*/
func BlackViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	t, err := asRBTree[K](tree)
	if err != nil {
		return err
	}
	leaves := bfsLeaves[K](t)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[K](leaves[0], t.sentinel)
	for i := 1; i < len(leaves); i++ {
		if depth := blackDepthTo[K](leaves[i], t.sentinel); depth != blackDepth {
			return infra.NewErrorStack(fmt.Sprintf(
				"[rbtree] black violation at key %v, black depth %d, expected %d",
				leaves[i].key, depth, blackDepth,
			))
		}
	}
	return nil
}

// OrderViolationValidate checks the keys are strictly ordered by the
// comparator in inorder and each child links back to its parent.
func OrderViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	t, err := asRBTree[K](tree)
	if err != nil {
		return err
	}

	var (
		prev     *rbNode[K]
		orderErr error
	)
	stack := make([]*rbNode[K], 0, 64)
	for aux := t.root; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0 && orderErr == nil; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		if prev != nil && t.cmp(prev.key, aux.key) >= 0 {
			orderErr = infra.NewErrorStack(fmt.Sprintf(
				"[rbtree] order violation, key %v is not before key %v", prev.key, aux.key,
			))
		}
		if (!aux.left.isNilLeaf() && aux.left.parent != aux) ||
			(!aux.right.isNilLeaf() && aux.right.parent != aux) {
			orderErr = infra.NewErrorStack(fmt.Sprintf(
				"[rbtree] link violation, the child of key %v links to another parent", aux.key,
			))
		}
		prev = aux
		for aux = aux.right; !aux.isNilLeaf(); aux = aux.left {
			stack = append(stack, aux)
		}
	}
	clear(stack)
	return orderErr
}

// SizeViolationValidate checks the count equals to the inorder visited nodes.
func SizeViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	t, err := asRBTree[K](tree)
	if err != nil {
		return err
	}
	visited := int64(0)
	inorderForeach(t.root, func(idx int64, color RBColor, key K) bool {
		visited++
		return true
	})
	if visited != t.count {
		return infra.NewErrorStack(fmt.Sprintf(
			"[rbtree] size violation, count %d, visited %d", t.count, visited,
		))
	}
	return nil
}

// Validate runs all validators and combines the violations.
func Validate[K infra.OrderedKey](tree RBTree[K]) error {
	return multierr.Combine(
		SentinelValidate[K](tree),
		RootColorValidate[K](tree),
		RedViolationValidate[K](tree),
		BlackViolationValidate[K](tree),
		OrderViolationValidate[K](tree),
		SizeViolationValidate[K](tree),
	)
}
