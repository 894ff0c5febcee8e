package tree

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xrbt/xlog"
)

type testRBTreeSums map[string]map[string]int64

func testCollectRBTreeStats(t *testing.T, reader sdkmetric.Reader, scope string) testRBTreeSums {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := make(testRBTreeSums, 8)
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != scope {
			continue
		}
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.Truef(t, ok, "metric %s is not an int64 sum", m.Name)
			points := make(map[string]int64, len(sum.DataPoints))
			for _, dp := range sum.DataPoints {
				label := ""
				for iter := dp.Attributes.Iter(); iter.Next(); {
					label = iter.Attribute().Value.AsString()
				}
				points[label] += dp.Value
			}
			sums[m.Name] = points
		}
	}
	return sums
}

func TestRBTreeStats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	tree := testScenarioTree(t, WithRBTreeStats[int]("scenario"))
	scope := RBTreeStatsName + "/scenario"
	sums := testCollectRBTreeStats(t, reader, scope)
	require.Equal(t, int64(9), sums["rbtree.insert.count"][""])
	require.Equal(t, int64(9), sums["rbtree.node.count"][""])
	require.Equal(t, map[string]int64{
		Left.String():  2,
		Right.String(): 3,
	}, sums["rbtree.rotation.count"])
	require.Equal(t, map[string]int64{
		insertLR.String():       1,
		insertUncleRed.String(): 2,
		insertRL.String():       1,
		insertLL.String():       1,
	}, sums["rbtree.fixup.count"])

	// Failures are not recorded.
	require.ErrorIs(t, tree.Insert(35), ErrRBTreeKeyExists)
	_, err := tree.Remove(36)
	require.ErrorIs(t, err, ErrRBTreeKeyNotFound)

	for _, key := range []int{66, 50, 62} {
		_, err := tree.Remove(key)
		require.NoError(t, err)
	}
	sums = testCollectRBTreeStats(t, reader, scope)
	require.Equal(t, int64(9), sums["rbtree.insert.count"][""])
	require.Equal(t, int64(3), sums["rbtree.remove.count"][""])
	require.Equal(t, int64(6), sums["rbtree.node.count"][""])
	require.Equal(t, map[string]int64{
		Left.String():  3,
		Right.String(): 3,
	}, sums["rbtree.rotation.count"])
	require.Equal(t, int64(1), sums["rbtree.fixup.count"][removeFarNephewRed.String()])
	require.Equal(t, int64(1), sums["rbtree.fixup.count"][removeNephewsBlack.String()])

	// The clone does not inherit the stats.
	c := tree.Clone()
	require.NoError(t, c.Insert(100))
	sums = testCollectRBTreeStats(t, reader, scope)
	require.Equal(t, int64(9), sums["rbtree.insert.count"][""])

	tree.Release()
	sums = testCollectRBTreeStats(t, reader, scope)
	require.Equal(t, int64(0), sums["rbtree.node.count"][""])
}

func TestRBTreeStats_NilSafe(t *testing.T) {
	var stats *rbTreeStats
	require.NotPanics(t, func() {
		stats.IncreaseInsertCount()
		stats.IncreaseRemoveCount()
		stats.RecordReleasedCount(1)
		stats.IncreaseRotationCount(Left)
		stats.IncreaseFixupCount(insertLL.String())
	})

	tree := newRBTree[int](WithRBTreeStats[int](""))
	require.Equal(t, "default", tree.statsName)
	require.NotNil(t, tree.stats)
}

func TestRBTreeStats_Attributes(t *testing.T) {
	as := attribute.NewSet(attribute.String("rbtree.rotation.direction", Right.String()))
	v, ok := as.Value("rbtree.rotation.direction")
	require.True(t, ok)
	require.Equal(t, "Right", v.AsString())
}

func TestRBTree_Logger(t *testing.T) {
	w := &bytes.Buffer{}
	logger := xlog.NewXLogger(
		xlog.WithXLoggerWriter(w),
		xlog.WithXLoggerStrLevel(xlog.LogLevelDebug.String()),
		xlog.WithXLoggerEncoder(xlog.JSON),
	)
	tree := testScenarioTree(t, WithRBTreeLogger[int](logger))
	for _, key := range []int{66, 50, 62} {
		_, err := tree.Remove(key)
		require.NoError(t, err)
	}
	tree.Release()
	require.NoError(t, logger.Sync())

	out := w.String()
	require.Contains(t, out, `"msg":"[rbtree] insert fixup"`)
	require.Contains(t, out, `"case":"LR"`)
	require.Contains(t, out, `"case":"uncle-red"`)
	require.Contains(t, out, `"msg":"[rbtree] remove fixup"`)
	require.Contains(t, out, `"case":"far-nephew-red"`)
	require.Contains(t, out, `"case":"nephews-black"`)
	require.Contains(t, out, `"msg":"[rbtree] released"`)
	require.Contains(t, out, `"nodes":6`)

	w.Reset()
	logger.IncreaseLogLevel(zapcore.InfoLevel)
	_ = testScenarioTree(t, WithRBTreeLogger[int](logger))
	require.NoError(t, logger.Sync())
	require.Empty(t, w.String())
}
