package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/fnkit/logger"
)

// InitMeter installs a global meter provider exporting over OTLP HTTP.
// The provider must be shut down on exit to flush metrics.
func InitMeter(ctx context.Context, cfg Config, res Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	r, err := newResource(res)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(r),
	)

	otel.SetMeterProvider(mp)

	logger.WithComponent("observability").Debug("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.MetricInterval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the pipeline run instruments. A nil *Metrics records nothing.
type Metrics struct {
	runTotal    metric.Int64Counter
	runDuration metric.Float64Histogram
	inputSize   metric.Int64Histogram
	errorTotal  metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runTotal, err := meter.Int64Counter("pipeline.run.total",
		metric.WithDescription("Total number of pipeline runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.run.total counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("pipeline.run.duration",
		metric.WithDescription("Duration of pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.run.duration histogram: %w", err)
	}

	inputSize, err := meter.Int64Histogram("pipeline.run.input_size",
		metric.WithDescription("Number of input elements per run"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.run.input_size histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("pipeline.run.errors",
		metric.WithDescription("Total failed pipeline runs by error type"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.run.errors counter: %w", err)
	}

	return &Metrics{
		runTotal:    runTotal,
		runDuration: runDuration,
		inputSize:   inputSize,
		errorTotal:  errorTotal,
	}, nil
}

// RecordRun records one completed run.
func (m *Metrics) RecordRun(ctx context.Context, pipelineName, status string, inputSize int, duration time.Duration) {
	if m == nil {
		return
	}
	name := attribute.String(AttrPipelineName, pipelineName)
	m.runTotal.Add(ctx, 1, metric.WithAttributes(name, attribute.String(AttrStatus, status)))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(name))
	m.inputSize.Record(ctx, int64(inputSize), metric.WithAttributes(name))
}

// RecordError records a failed run by error type.
func (m *Metrics) RecordError(ctx context.Context, pipelineName, errType string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipelineName, pipelineName),
		attribute.String(AttrErrorType, errType),
	))
}
