// Package observability provides OpenTelemetry tracing and metrics for
// pipeline runs.
//
// Setup installs OTLP HTTP exporters when telemetry is enabled:
//
//	metrics, shutdown, err := observability.Setup(ctx, cfg, observability.Resource{ServiceName: "fnpipe"})
//	defer shutdown(ctx)
//
// Instrument wraps a pipeline so every run gets a run id, a span, metric
// recordings and a debug log line:
//
//	run := observability.Instrument[float64]("avg", p, observability.WithMetrics(metrics))
//	res, err := run.Run(values)
package observability
