package tree

import (
	"errors"

	"github.com/benz9527/xrbt/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

//go:generate stringer -type=RBTraverseOrder
type RBTraverseOrder uint8

const (
	InOrder RBTraverseOrder = iota
	PreOrder
	PostOrder
	LevelOrder
)

var (
	ErrRBTreeKeyExists   = errors.New("[rbtree] key exists")
	ErrRBTreeKeyNotFound = errors.New("[rbtree] key not found")
	ErrRBTreeEmpty       = errors.New("[rbtree] empty element to remove")
	ErrRBTreeReleased    = errors.New("[rbtree] tree released")
)

// RBNode is the read-only view of a tree node.
// Left, Right and Parent return nil instead of the sentinel.
type RBNode[K infra.OrderedKey] interface {
	Key() K
	Color() RBColor
	Left() RBNode[K]
	Right() RBNode[K]
	Parent() RBNode[K]
}

// RBForeachAction returns false to stop the traversal.
type RBForeachAction[K infra.OrderedKey] func(idx int64, color RBColor, key K) bool

type rbTraversable[K infra.OrderedKey] interface {
	Len() int64
	Root() RBNode[K]
	Height() int64
	// Foreach is the inorder traversal.
	Foreach(action RBForeachAction[K])
	PreorderForeach(action RBForeachAction[K])
	PostorderForeach(action RBForeachAction[K])
	LevelOrderForeach(action RBForeachAction[K])
	Keys(order RBTraverseOrder) []K
	// Release unlinks all nodes and the sentinel. The tree is
	// unable to be used anymore, unless it was empty.
	Release()
}

// RBTree is not thread safe. Callers have to serialize
// the mutations by themselves.
type RBTree[K infra.OrderedKey] interface {
	rbTraversable[K]
	// Insert returns ErrRBTreeKeyExists if the key is present
	// and leaves the tree untouched.
	Insert(key K) error
	// Remove returns the removed key. ErrRBTreeKeyNotFound or
	// ErrRBTreeEmpty is returned and the tree is left untouched
	// if the key is absent.
	Remove(key K) (K, error)
	RemoveMin() (K, error)
	RemoveMax() (K, error)
	// Search returns the node of the key. The node is only valid
	// until the next mutation, because removing a node with two
	// children moves its successor's key into it.
	Search(key K) (RBNode[K], bool)
	Contains(key K) bool
	Min() (K, bool)
	Max() (K, bool)
	// Clone builds an independent tree by re-inserting the keys
	// in level order.
	Clone() RBTree[K]
	// Invert returns the mirror of a clone. The receiver is left
	// untouched.
	Invert() InvertedRBTree[K]
}

// InvertedRBTree is the mirror of a red-black tree. It breaks the
// ordering and is only able to be traversed, so it provides no
// insert, remove or search.
type InvertedRBTree[K infra.OrderedKey] interface {
	rbTraversable[K]
}
