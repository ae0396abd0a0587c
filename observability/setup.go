package observability

import (
	"context"
	stderrors "errors"

	"go.opentelemetry.io/otel/metric/noop"
)

// ShutdownFunc flushes and stops telemetry providers.
type ShutdownFunc func(context.Context) error

// Setup initializes tracing and metrics when cfg.Enabled is set. It
// returns the metrics to pass to Instrument and a shutdown function that
// is always safe to call. When telemetry is disabled the metrics record
// into a no-op meter.
func Setup(ctx context.Context, cfg Config, res Resource) (*Metrics, ShutdownFunc, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if !cfg.Enabled {
		m, err := NewMetrics(noop.NewMeterProvider().Meter(instrumentationName))
		return m, func(context.Context) error { return nil }, err
	}

	tp, err := InitTracer(ctx, cfg, res)
	if err != nil {
		return nil, nil, err
	}
	mp, err := InitMeter(ctx, cfg, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}

	m, err := NewMetrics(mp.Meter(instrumentationName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}

	shutdown := func(ctx context.Context) error {
		return stderrors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}
	return m, shutdown, nil
}
