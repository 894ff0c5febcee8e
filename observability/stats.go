package observability

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	AppStatsName = "xrbt/app"
)

var (
	registeredLock sync.Mutex
	registered     = map[metric.MeterProvider]struct{}{}
)

type appStats struct {
	ctx              context.Context
	shutdownCallback func(ctx context.Context) error
	goroutines       metric.Int64ObservableUpDownCounter
	processes        metric.Int64ObservableUpDownCounter
}

func (stats *appStats) waitForShutdown() {
	if stats == nil || stats.shutdownCallback == nil {
		return
	}
	go func() {
		<-stats.ctx.Done()
		_ = stats.shutdownCallback(context.Background())
	}()
}

func appStatsName(name string) string {
	builder := &strings.Builder{}
	builder.WriteString(AppStatsName)
	builder.WriteString("/")
	if len(strings.TrimSpace(name)) > 0 {
		builder.WriteString(strings.TrimSpace(name))
	} else {
		builder.WriteString("default")
	}
	return builder.String()
}

func newAppStats(
	ctx context.Context,
	mp metric.MeterProvider,
	name string,
	shutdown func(ctx context.Context) error,
) *appStats {
	meter := mp.Meter(
		appStatsName(name),
		metric.WithInstrumentationVersion(otelruntime.Version()),
	)
	return &appStats{
		ctx:              ctx,
		shutdownCallback: shutdown,
		goroutines: lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
			"app.core.goroutines",
			metric.WithDescription(`The application goroutines' info.`),
			metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
				ob.Observe(int64(runtime.NumGoroutine()))
				return nil
			}),
		)),
		processes: lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
			"app.core.processes",
			metric.WithDescription(`The application processes' info.`),
			metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
				ob.Observe(int64(runtime.GOMAXPROCS(0)))
				return nil
			}),
		)),
	}
}

// InitAppStats registers the process level metrics and the go runtime
// instrumentation into the current global meter provider. Each provider
// is registered once, so a replaced provider gets its own gauges. The
// shutdown callback, normally the exporter's, runs after ctx is done.
func InitAppStats(ctx context.Context, name string, shutdown func(ctx context.Context) error) {
	mp := otel.GetMeterProvider()
	registeredLock.Lock()
	defer registeredLock.Unlock()
	if _, ok := registered[mp]; ok {
		return
	}
	registered[mp] = struct{}{}

	stats := newAppStats(ctx, mp, name, shutdown)
	_ = otelruntime.Start(
		otelruntime.WithMeterProvider(mp),
		otelruntime.WithMinimumReadMemStatsInterval(time.Second),
	)
	stats.waitForShutdown()
}
