package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/benz9527/xrbt/lib/infra"
)

// [50] -> <20>, <75>
func testSmallTree(t *testing.T) *rbTree[int] {
	tree := newRBTree[int]()
	for _, key := range []int{50, 20, 75} {
		require.NoError(t, tree.Insert(key))
	}
	require.NoError(t, Validate[int](tree))
	return tree
}

func TestRBTreeValidators_DetectViolations(t *testing.T) {
	testcases := []struct {
		name      string
		corrupt   func(tree *rbTree[int])
		validator func(tree RBTree[int]) error
		errs      int
	}{
		{
			name: "red root",
			corrupt: func(tree *rbTree[int]) {
				tree.root.color = Red
			},
			validator: RootColorValidate[int],
			errs:      2, // root and red
		},
		{
			name: "root with parent",
			corrupt: func(tree *rbTree[int]) {
				tree.root.parent = tree.newNode(0)
			},
			validator: RootColorValidate[int],
			errs:      1,
		},
		{
			name: "red child of red",
			corrupt: func(tree *rbTree[int]) {
				z := tree.newNode(10)
				z.parent, tree.root.left.left = tree.root.left, z
				tree.count++
			},
			validator: RedViolationValidate[int],
			errs:      1,
		},
		{
			name: "unbalanced black",
			corrupt: func(tree *rbTree[int]) {
				tree.root.left.color = Black
			},
			validator: BlackViolationValidate[int],
			errs:      1,
		},
		{
			name: "keys out of order",
			corrupt: func(tree *rbTree[int]) {
				tree.root.left.key, tree.root.right.key = tree.root.right.key, tree.root.left.key
			},
			validator: OrderViolationValidate[int],
			errs:      1,
		},
		{
			name: "broken parent link",
			corrupt: func(tree *rbTree[int]) {
				tree.root.left.parent = tree.root.right
			},
			validator: OrderViolationValidate[int],
			errs:      2, // link and red
		},
		{
			name: "count mismatch",
			corrupt: func(tree *rbTree[int]) {
				tree.count++
			},
			validator: SizeViolationValidate[int],
			errs:      1,
		},
		{
			name: "sentinel linked",
			corrupt: func(tree *rbTree[int]) {
				tree.sentinel.parent = tree.root
			},
			validator: SentinelValidate[int],
			errs:      1,
		},
		{
			name: "red sentinel",
			corrupt: func(tree *rbTree[int]) {
				tree.sentinel.color = Red
			},
			validator: SentinelValidate[int],
			errs:      1,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			tree := testSmallTree(t)
			tc.corrupt(tree)
			err := tc.validator(tree)
			require.Error(t, err)
			var es infra.ErrorStack
			require.True(t, errors.As(err, &es))
			require.NotEmpty(t, es.Stack())
			require.Contains(t, err.Error(), "[rbtree]")

			err = Validate[int](tree)
			require.Error(t, err)
			require.Len(t, multierr.Errors(err), tc.errs)
		})
	}
}

func TestRBTreeValidators_Released(t *testing.T) {
	tree := testSmallTree(t)
	tree.Release()
	require.NoError(t, RootColorValidate[int](tree))
	require.NoError(t, SentinelValidate[int](tree))
	require.NoError(t, Validate[int](tree))
}

func TestAsRBTree(t *testing.T) {
	tree := testSmallTree(t)
	got, err := asRBTree[int](tree)
	require.NoError(t, err)
	require.True(t, got == tree)

	inv := tree.Invert()
	_, err = asRBTree[int](inv)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported tree type")
}

func TestBlackDepthTo(t *testing.T) {
	tree := newRBTree[int]()
	for _, key := range []int{50, 20, 35, 75, 62, 98, 10, 66, 1} {
		require.NoError(t, tree.Insert(key))
	}
	leaves := bfsLeaves[int](tree)
	keys := make([]int, 0, len(leaves))
	for _, leaf := range leaves {
		keys = append(keys, leaf.key)
		require.Equal(t, 2, blackDepthTo[int](leaf, tree.sentinel))
	}
	require.Equal(t, []int{1, 20, 50, 66, 98}, keys)
	require.Nil(t, bfsLeaves[int](newRBTree[int]()))
}
