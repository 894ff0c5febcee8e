package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type MetricsExporterType string

const (
	NoneExporter       MetricsExporterType = ""
	ConsoleExporter    MetricsExporterType = "console"
	PrometheusExporter MetricsExporterType = "prometheus"
)

func (typ MetricsExporterType) Valid() bool {
	switch typ {
	case NoneExporter, ConsoleExporter, PrometheusExporter:
		return true
	default:
	}
	return false
}

// NewConsoleMetricsExporter serves for test/dev environment.
// The metrics are encoded as JSON into w by each interval, and once
// more by the returned shutdown callback.
func NewConsoleMetricsExporter(w io.Writer, interval, timeout time.Duration, opts ...stdoutmetric.Option) (func(ctx context.Context) error, error) {
	if w != nil {
		opts = append([]stdoutmetric.Option{stdoutmetric.WithWriter(w)}, opts...)
	}
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	)))
	callback := mp.Shutdown
	otel.SetMeterProvider(mp)
	return callback, nil
}

// NewPrometheusMetricsExporter serves for the product environment.
// The metrics are registered into reg, fetched by HTTP or dumped by
// WritePrometheusText. Nil reg means the prometheus default registerer.
func NewPrometheusMetricsExporter(reg promclient.Registerer) (func(ctx context.Context) error, error) {
	opts := make([]prometheus.Option, 0, 1)
	if reg != nil {
		opts = append(opts, prometheus.WithRegisterer(reg))
	}
	exporter, err := prometheus.New(opts...)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	callback := mp.Shutdown
	otel.SetMeterProvider(mp)
	return callback, nil
}

// WritePrometheusText writes the gathered metrics in the text exposition format.
func WritePrometheusText(w io.Writer, g promclient.Gatherer) error {
	if g == nil {
		g = promclient.DefaultGatherer
	}
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
