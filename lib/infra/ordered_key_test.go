package infra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedKeyComparator(t *testing.T) {
	testcases := []struct {
		name string
		cmp  OrderedKeyComparator[int]
		i, j int
		want int64
	}{
		{"asc lt", AscendingComparator[int], 1, 2, -1},
		{"asc eq", AscendingComparator[int], 2, 2, 0},
		{"asc gt", AscendingComparator[int], 3, 2, 1},
		{"desc lt", DescendingComparator[int], 1, 2, 1},
		{"desc eq", DescendingComparator[int], 2, 2, 0},
		{"desc gt", DescendingComparator[int], 3, 2, -1},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.want, tc.cmp(tc.i, tc.j))
		})
	}

	require.Equal(t, int64(-1), AscendingComparator[string]("abc", "abd"))
	require.Equal(t, int64(1), AscendingComparator[float64](1.5, -1.5))
}
