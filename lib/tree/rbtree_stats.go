package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	RBTreeStatsName = "xrbt/rbtree"
)

type rbTreeStats struct {
	nodeCount     metric.Int64UpDownCounter
	insertCount   metric.Int64Counter
	removeCount   metric.Int64Counter
	rotationCount metric.Int64Counter
	fixupCount    metric.Int64Counter
}

func (stats *rbTreeStats) IncreaseInsertCount() {
	if stats == nil {
		return
	}
	stats.insertCount.Add(context.Background(), 1)
	stats.nodeCount.Add(context.Background(), 1)
}

func (stats *rbTreeStats) IncreaseRemoveCount() {
	if stats == nil {
		return
	}
	stats.removeCount.Add(context.Background(), 1)
	stats.nodeCount.Add(context.Background(), -1)
}

func (stats *rbTreeStats) RecordReleasedCount(count int64) {
	if stats == nil || count == 0 {
		return
	}
	stats.nodeCount.Add(context.Background(), -count)
}

func (stats *rbTreeStats) IncreaseRotationCount(dir RBDirection) {
	if stats == nil {
		return
	}
	as := attribute.NewSet(
		attribute.String("rbtree.rotation.direction", dir.String()),
	)
	stats.rotationCount.Add(context.Background(), 1, metric.WithAttributeSet(as))
}

func (stats *rbTreeStats) IncreaseFixupCount(fixupCase string) {
	if stats == nil {
		return
	}
	as := attribute.NewSet(
		attribute.String("rbtree.fixup.case", fixupCase),
	)
	stats.fixupCount.Add(context.Background(), 1, metric.WithAttributeSet(as))
}

func newRBTreeStats(name string) *rbTreeStats {
	meter := otel.Meter(fmt.Sprintf("%s/%s", RBTreeStatsName, name))
	return &rbTreeStats{
		nodeCount: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"rbtree.node.count",
			metric.WithDescription("The number of nodes in the red-black tree."),
		)),
		insertCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.insert.count",
			metric.WithDescription("The number of keys inserted into the red-black tree."),
		)),
		removeCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.remove.count",
			metric.WithDescription("The number of keys removed from the red-black tree."),
		)),
		rotationCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.rotation.count",
			metric.WithDescription("The number of rotations, grouped by direction."),
		)),
		fixupCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.fixup.count",
			metric.WithDescription("The number of rebalance steps, grouped by case."),
		)),
	}
}
