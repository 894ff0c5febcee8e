package observability

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestAppStatsName(t *testing.T) {
	testcases := []struct {
		name     string
		expected string
	}{
		{"", AppStatsName + "/default"},
		{"  ", AppStatsName + "/default"},
		{" cli ", AppStatsName + "/cli"},
	}
	for _, tc := range testcases {
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, appStatsName(tc.name))
		})
	}
}

func testCollectAppGauges(t *testing.T, reader sdkmetric.Reader, name string) map[string]int64 {
	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.TODO(), &rm))
	gauges := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != appStatsName(name) {
			continue
		}
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)
			gauges[m.Name] = sum.DataPoints[0].Value
		}
	}
	return gauges
}

func TestNewAppStats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	defer func() {
		require.NoError(t, mp.Shutdown(context.TODO()))
	}()

	ctx, cancel := context.WithCancel(context.TODO())
	shutdown := make(chan struct{})
	stats := newAppStats(ctx, mp, "test", func(ctx context.Context) error {
		close(shutdown)
		return nil
	})
	stats.waitForShutdown()

	gauges := testCollectAppGauges(t, reader, "test")
	require.Len(t, gauges, 2)
	require.Greater(t, gauges["app.core.goroutines"], int64(0))
	require.Equal(t, int64(runtime.GOMAXPROCS(0)), gauges["app.core.processes"])

	cancel()
	<-shutdown
}

func TestAppStats_NilShutdown(t *testing.T) {
	var stats *appStats
	stats.waitForShutdown()
	(&appStats{ctx: context.TODO()}).waitForShutdown()
}

func TestInitAppStats_PerMeterProvider(t *testing.T) {
	ctx, cancel := context.WithCancel(context.TODO())
	defer cancel()

	readers := make([]*sdkmetric.ManualReader, 0, 2)
	for i := 0; i < 2; i++ {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		otel.SetMeterProvider(mp)
		InitAppStats(ctx, "replaced", mp.Shutdown)
		InitAppStats(ctx, "replaced", mp.Shutdown)
		readers = append(readers, reader)
	}

	// Both the replaced and the current provider observe the gauges.
	for _, reader := range readers {
		gauges := testCollectAppGauges(t, reader, "replaced")
		require.Len(t, gauges, 2)
		require.Greater(t, gauges["app.core.goroutines"], int64(0))
	}

	registeredLock.Lock()
	defer registeredLock.Unlock()
	_, ok := registered[otel.GetMeterProvider()]
	require.True(t, ok)
}
