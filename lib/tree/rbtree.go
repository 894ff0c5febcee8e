package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xrbt/lib/infra"
	"github.com/benz9527/xrbt/xlog"
)

type rbNode[K infra.OrderedKey] struct {
	parent   *rbNode[K]
	left     *rbNode[K]
	right    *rbNode[K]
	key      K
	color    RBColor
	sentinel bool
}

func (node *rbNode[K]) Key() K {
	return node.key
}

func (node *rbNode[K]) Color() RBColor {
	return node.color
}

// Avoid to return a nil pointer wrapped by a non-nil interface.
func (node *rbNode[K]) view(link *rbNode[K]) RBNode[K] {
	if link.isNilLeaf() {
		return nil
	}
	return link
}

func (node *rbNode[K]) Left() RBNode[K] {
	if node.isNilLeaf() {
		return nil
	}
	return node.view(node.left)
}

func (node *rbNode[K]) Right() RBNode[K] {
	if node.isNilLeaf() {
		return nil
	}
	return node.view(node.right)
}

func (node *rbNode[K]) Parent() RBNode[K] {
	if node.isNilLeaf() {
		return nil
	}
	return node.view(node.parent)
}

func (node *rbNode[K]) isNilLeaf() bool {
	return node == nil || node.sentinel
}

func (node *rbNode[K]) isRed() bool {
	return !node.isNilLeaf() && node.color == Red
}

// The sentinel is always black.
func (node *rbNode[K]) isBlack() bool {
	return node.isNilLeaf() || node.color == Black
}

func (node *rbNode[K]) direction() RBDirection {
	if node.parent.isNilLeaf() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[K]) minimum() *rbNode[K] {
	aux := node
	for !aux.left.isNilLeaf() {
		aux = aux.left
	}
	return aux
}

func (node *rbNode[K]) maximum() *rbNode[K] {
	aux := node
	for !aux.right.isNilLeaf() {
		aux = aux.right
	}
	return aux
}

type rbTree[K infra.OrderedKey] struct {
	root           *rbNode[K]
	sentinel       *rbNode[K] // TNIL, shared by all leaves and the root's parent
	cmp            infra.OrderedKeyComparator[K]
	stats          *rbTreeStats
	logger         xlog.XLogger
	statsName      string
	count          int64
	isDesc         bool
	isRmBorrowPred bool
}

func (tree *rbTree[K]) isReleased() bool {
	return tree.sentinel == nil
}

func (tree *rbTree[K]) newNode(key K) *rbNode[K] {
	return &rbNode[K]{
		key:    key,
		color:  Red,
		parent: tree.sentinel,
		left:   tree.sentinel,
		right:  tree.sentinel,
	}
}

func (tree *rbTree[K]) Len() int64 {
	return tree.count
}

func (tree *rbTree[K]) Root() RBNode[K] {
	if tree.root.isNilLeaf() {
		return nil
	}
	return tree.root
}

// References:
// Introduction to Algorithms (CLRS), chapter 13.
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes (sentinel) are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.

/*
		 |                         |
		 X                         Y
		/ \     leftRotate(X)     / \
	   a   Y    ============>    X   c
		  / \                   / \
		 b   c                 a   b
*/
func (tree *rbTree[K]) leftRotate(x *rbNode[K]) {
	if x.isNilLeaf() || x.right.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	y := x.right
	x.right = y.left
	if !y.left.isNilLeaf() {
		y.left.parent = x
	}
	tree.replaceChild(x, y)
	y.left = x
	x.parent = y
	tree.stats.IncreaseRotationCount(Left)
}

/*
		   |                         |
		   X                         Y
		  / \     rightRotate(X)    / \
		 Y   c    =============>   a   X
		/ \                           / \
	   a   b                         b   c
*/
func (tree *rbTree[K]) rightRotate(x *rbNode[K]) {
	if x.isNilLeaf() || x.left.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	y := x.left
	x.left = y.right
	if !y.right.isNilLeaf() {
		y.right.parent = x
	}
	tree.replaceChild(x, y)
	y.right = x
	x.parent = y
	tree.stats.IncreaseRotationCount(Right)
}

// rotateToward moves x down to dir side.
func (tree *rbTree[K]) rotateToward(x *rbNode[K], dir RBDirection) {
	switch dir {
	case Left:
		tree.leftRotate(x)
	case Right:
		tree.rightRotate(x)
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown direction to rotate")
	}
}

// replaceChild links v to u's parent at u's position.
// v may be the sentinel, its parent is still assigned,
// because the remove rebalance starts from it.
func (tree *rbTree[K]) replaceChild(u, v *rbNode[K]) {
	switch u.direction() {
	case Root:
		tree.root = v
	case Left:
		u.parent.left = v
	case Right:
		u.parent.right = v
	}
	v.parent = u.parent
}

func (tree *rbTree[K]) Insert(key K) error {
	if tree.isReleased() {
		return ErrRBTreeReleased
	}

	var x, y = tree.root, tree.sentinel
	for !x.isNilLeaf() {
		y = x
		res := tree.cmp(key, x.key)
		if /* equal */ res == 0 {
			return ErrRBTreeKeyExists
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	z := tree.newNode(key)
	z.parent = y
	if y.isNilLeaf() {
		tree.root = z
	} else if tree.cmp(key, y.key) < 0 {
		y.left = z
	} else {
		y.right = z
	}

	tree.insertRebalance(z)
	tree.count++
	tree.stats.IncreaseInsertCount()
	return nil
}

//go:generate stringer -type=insertCase -linecomment
type insertCase uint8

const (
	insertBalanced insertCase = iota // balanced
	insertUncleRed                   // uncle-red
	insertLL                         // LL
	insertLR                         // LR
	insertRR                         // RR
	insertRL                         // RL
)

/*
New node Z is red by default. Only the red parent is able to
cause the red-violation.

<X> is a RED node.
[X] is a BLACK node (or NIL).

uncle-red: Both the parent P and the uncle U are red, so grandpa G
is black. Repaint and move the violation up to G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<Z>             <Z>

LR (RL mirror): The uncle U is black and Z is the inner child.
Rotate P toward the outer side, then it is the LL (RR) case.

	  [G]                    [G]
	  / \    leftRotate(P)   / \
	<P> [U]  ===========>  <Z> [U]
	  \                    /
	  <Z>                <P>

LL (RR mirror): The uncle U is black and Z is the outer child.

	    [G]                      [P]
	    / \    rightRotate(G)    / \
	  <P> [U]  ============>   <Z> <G>
	  /                              \
	<Z>                              [U]
*/
func (tree *rbTree[K]) classifyInsert(z *rbNode[K]) insertCase {
	p := z.parent
	if p.isBlack() {
		return insertBalanced
	}

	// A red parent is never the root, so grandpa is a real node.
	g := p.parent
	pDir := p.direction()
	uncle := g.left
	if pDir == Left {
		uncle = g.right
	}
	if uncle.isRed() {
		return insertUncleRed
	}

	switch zDir := z.direction(); {
	case pDir == Left && zDir == Left:
		return insertLL
	case pDir == Left && zDir == Right:
		return insertLR
	case pDir == Right && zDir == Right:
		return insertRR
	default:
		return insertRL
	}
}

func (tree *rbTree[K]) insertRebalance(z *rbNode[K]) {
	for fixed := false; !fixed; {
		c := tree.classifyInsert(z)
		if c == insertBalanced {
			break
		}
		tree.stats.IncreaseFixupCount(c.String())
		if tree.logger != nil {
			tree.logger.Debug("[rbtree] insert fixup",
				zap.String("case", c.String()),
				zap.Any("key", z.key),
			)
		}

		switch c {
		case insertUncleRed:
			g := z.parent.parent
			g.left.color, g.right.color = Black, Black
			g.color = Red
			z = g
		case insertLR:
			z = z.parent
			tree.leftRotate(z)
			fallthrough
		case insertLL:
			p, g := z.parent, z.parent.parent
			tree.rightRotate(g)
			p.color, g.color = Black, Red
			fixed = true
		case insertRL:
			z = z.parent
			tree.rightRotate(z)
			fallthrough
		case insertRR:
			p, g := z.parent, z.parent.parent
			tree.leftRotate(g)
			p.color, g.color = Black, Red
			fixed = true
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] unknown insert fixup case")
		}
	}
	tree.root.color = Black
}

func (tree *rbTree[K]) searchNode(key K) *rbNode[K] {
	if tree.isReleased() {
		return nil
	}
	for aux := tree.root; !aux.isNilLeaf(); {
		res := tree.cmp(key, aux.key)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return nil
}

func (tree *rbTree[K]) Search(key K) (RBNode[K], bool) {
	if node := tree.searchNode(key); node != nil {
		return node, true
	}
	return nil, false
}

func (tree *rbTree[K]) Contains(key K) bool {
	return tree.searchNode(key) != nil
}

func (tree *rbTree[K]) Min() (key K, ok bool) {
	if tree.isReleased() || tree.root.isNilLeaf() {
		return key, false
	}
	return tree.root.minimum().key, true
}

func (tree *rbTree[K]) Max() (key K, ok bool) {
	if tree.isReleased() || tree.root.isNilLeaf() {
		return key, false
	}
	return tree.root.maximum().key, true
}

func (tree *rbTree[K]) Remove(key K) (removed K, err error) {
	if tree.isReleased() {
		return removed, ErrRBTreeReleased
	}
	if tree.count <= 0 {
		return removed, ErrRBTreeEmpty
	}
	z := tree.searchNode(key)
	if z == nil {
		return removed, ErrRBTreeKeyNotFound
	}
	return tree.removeNode(z), nil
}

func (tree *rbTree[K]) RemoveMin() (key K, err error) {
	if tree.isReleased() {
		return key, ErrRBTreeReleased
	}
	if tree.root.isNilLeaf() {
		return key, ErrRBTreeEmpty
	}
	return tree.removeNode(tree.root.minimum()), nil
}

func (tree *rbTree[K]) RemoveMax() (key K, err error) {
	if tree.isReleased() {
		return key, ErrRBTreeReleased
	}
	if tree.root.isNilLeaf() {
		return key, ErrRBTreeEmpty
	}
	return tree.removeNode(tree.root.maximum()), nil
}

/*
Z has two children: Y is Z's succ (or pred), it has one child
at most. Move Y's key into Z and splice Y out instead.

	  |                    |
	  Z                    Y
	 / \                  / \
	L  ..   copy(Y, Z)   L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  Y  ..                X  ..
	   \
	    X

Z has one child at most: Y is Z itself.

X (Y's only child or the sentinel) takes Y's position. If Y was
black, the path through X lost one black node.
*/
func (tree *rbTree[K]) removeNode(z *rbNode[K]) K {
	removed := z.key
	y := z
	if !z.left.isNilLeaf() && !z.right.isNilLeaf() {
		if tree.isRmBorrowPred {
			y = z.left.maximum()
		} else {
			y = z.right.minimum()
		}
		z.key = y.key
	}

	x := y.right
	if !y.left.isNilLeaf() {
		x = y.left
	}
	yColor := y.color
	tree.replaceChild(y, x)

	// Unlink node
	y.parent, y.left, y.right = nil, nil, nil

	if yColor == Black {
		tree.removeRebalance(x)
	}
	// The sentinel's parent is only meaningful during the rebalance.
	tree.sentinel.parent = nil
	tree.count--
	tree.stats.IncreaseRemoveCount()
	return removed
}

//go:generate stringer -type=removeCase -linecomment
type removeCase uint8

const (
	removeSiblingRed    removeCase = iota // sibling-red
	removeNephewsBlack                    // nephews-black
	removeNearNephewRed                   // near-nephew-red
	removeFarNephewRed                    // far-nephew-red
)

/*
X carries an extra black (double-black). Sn is the sibling's child
near to X, Sf is the far one.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

sibling-red: P, Sn and Sf must be black. Repaint and rotate P
toward X, the new sibling is black.

	  [P]                     <S>                [S]
	  / \   leftRotate(P)     / \    repaint     / \
	[X] <S>  ==========>    [P] [Sf]  =====>   <P> [Sf]
	    / \                 / \                / \
	 [Sn] [Sf]            [X] [Sn]           [X] [Sn]

nephews-black: Repaint S into red, the extra black moves up to P.

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sn] [Sf]       [Sn] [Sf]

near-nephew-red: Rotate S away from X, then it is the far-nephew-red case.

	  {P}                      {P}
	  / \    rightRotate(S)    / \
	[X] [S]  ============>   [X] [Sn]
	    / \                        \
	  <Sn> [Sf]                    <S>
	                                 \
	                                 [Sf]

far-nephew-red: S takes P's color, P and Sf are repainted into black.
Rotate P toward X. The extra black is absorbed.

	  {P}                    {S}
	  / \   leftRotate(P)    / \
	[X] [S]  ==========>   [P] [Sf]
	    / \                / \
	 {Sn} <Sf>           [X] {Sn}
*/
func (tree *rbTree[K]) removeRebalance(x *rbNode[K]) {
	for x != tree.root && x.isBlack() {
		// X may be the sentinel, its position is held by the parent link.
		p := x.parent
		dir, sibling := Left, p.right
		if x != p.left {
			dir, sibling = Right, p.left
		}
		near, far := sibling.left, sibling.right
		if dir == Right {
			near, far = sibling.right, sibling.left
		}

		var c removeCase
		switch {
		case sibling.isRed():
			c = removeSiblingRed
		case near.isBlack() && far.isBlack():
			c = removeNephewsBlack
		case far.isBlack():
			c = removeNearNephewRed
		default:
			c = removeFarNephewRed
		}
		tree.stats.IncreaseFixupCount(c.String())
		if tree.logger != nil {
			tree.logger.Debug("[rbtree] remove fixup",
				zap.String("case", c.String()),
				zap.String("direction", dir.String()),
				zap.Any("parent", p.key),
			)
		}

		switch c {
		case removeSiblingRed:
			sibling.color, p.color = Black, Red
			tree.rotateToward(p, dir)
		case removeNephewsBlack:
			sibling.color = Red
			x = p
		case removeNearNephewRed:
			near.color, sibling.color = Black, Red
			tree.rotateToward(sibling, -dir) // opposite to X
		case removeFarNephewRed:
			sibling.color, p.color, far.color = p.color, Black, Black
			tree.rotateToward(p, dir)
			x = tree.root
		}
	}
	x.color = Black
}

func (tree *rbTree[K]) Height() int64 {
	if tree.isReleased() {
		return 0
	}
	return height(tree.root)
}

func height[K infra.OrderedKey](node *rbNode[K]) int64 {
	if node.isNilLeaf() {
		return 0
	}
	return max(height(node.left), height(node.right)) + 1
}

type RBTreeOpt[K infra.OrderedKey] func(*rbTree[K])

func WithRBTreeDesc[K infra.OrderedKey]() RBTreeOpt[K] {
	return func(tree *rbTree[K]) {
		tree.isDesc = true
	}
}

// WithRBTreeRemoveBorrowPred removes the node with two children by its
// predecessor. The successor is borrowed by default.
func WithRBTreeRemoveBorrowPred[K infra.OrderedKey]() RBTreeOpt[K] {
	return func(tree *rbTree[K]) {
		tree.isRmBorrowPred = true
	}
}

func WithRBTreeStats[K infra.OrderedKey](name string) RBTreeOpt[K] {
	return func(tree *rbTree[K]) {
		if len(name) == 0 {
			name = "default"
		}
		tree.statsName = name
	}
}

// WithRBTreeLogger prints the fixup cases in debug level.
func WithRBTreeLogger[K infra.OrderedKey](logger xlog.XLogger) RBTreeOpt[K] {
	return func(tree *rbTree[K]) {
		tree.logger = logger
	}
}

func NewRBTree[K infra.OrderedKey](opts ...RBTreeOpt[K]) RBTree[K] {
	return newRBTree[K](opts...)
}

func newRBTree[K infra.OrderedKey](opts ...RBTreeOpt[K]) *rbTree[K] {
	sentinel := &rbNode[K]{
		color:    Black,
		sentinel: true,
	}
	tree := &rbTree[K]{
		root:     sentinel,
		sentinel: sentinel,
	}
	for _, o := range opts {
		if o != nil {
			o(tree)
		}
	}
	if tree.isDesc {
		tree.cmp = infra.DescendingComparator[K]
	} else {
		tree.cmp = infra.AscendingComparator[K]
	}
	if len(tree.statsName) > 0 {
		tree.stats = newRBTreeStats(tree.statsName)
	}
	return tree
}
