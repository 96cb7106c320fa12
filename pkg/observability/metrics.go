package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const (
	meterName = "testidgen"

	metricFilesTotal   = "testidgen.files"
	metricIDsTotal     = "testidgen.testids"
	metricFileDuration = "testidgen.file.duration"

	attrStatus   = "status"
	attrCategory = "category"

	// StatusOK and StatusFailed label processed files.
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// durationBucketBoundaries covers 1ms to 10s per file.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// RunMetrics holds the OTel instruments for one run. Instruments are
// collected through a Prometheus exporter into a private registry so the run
// can be dumped as a node-exporter textfile.
type RunMetrics struct {
	registry     *prometheus.Registry
	provider     *sdkmetric.MeterProvider
	filesTotal   metric.Int64Counter
	idsTotal     metric.Int64Counter
	fileDuration metric.Float64Histogram
}

// NewRunMetrics creates the run instruments.
func NewRunMetrics() (*RunMetrics, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	mt := provider.Meter(meterName)

	files, err := mt.Int64Counter(metricFilesTotal,
		metric.WithDescription("Source files processed by status"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesTotal, err)
	}

	ids, err := mt.Int64Counter(metricIDsTotal,
		metric.WithDescription("Test identifiers added by element category"),
		metric.WithUnit("{id}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricIDsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricFileDuration,
		metric.WithDescription("Per-file processing duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFileDuration, err)
	}

	return &RunMetrics{
		registry:     registry,
		provider:     provider,
		filesTotal:   files,
		idsTotal:     ids,
		fileDuration: duration,
	}, nil
}

// RecordFile records one processed file. Safe to call on a nil receiver.
func (rm *RunMetrics) RecordFile(ctx context.Context, status string, duration time.Duration, idsByCategory map[string]int) {
	if rm == nil {
		return
	}

	rm.filesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStatus, status)))
	rm.fileDuration.Record(ctx, duration.Seconds())

	for category, n := range idsByCategory {
		rm.idsTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String(attrCategory, category)))
	}
}

// Gatherer exposes the underlying registry.
func (rm *RunMetrics) Gatherer() prometheus.Gatherer {
	return rm.registry
}

// WriteTextfile writes the current metric values to path in the Prometheus
// text exposition format.
func (rm *RunMetrics) WriteTextfile(path string) error {
	err := prometheus.WriteToTextfile(path, rm.registry)
	if err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}

// Shutdown releases the meter provider.
func (rm *RunMetrics) Shutdown(ctx context.Context) error {
	err := rm.provider.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutdown meter provider: %w", err)
	}

	return nil
}
