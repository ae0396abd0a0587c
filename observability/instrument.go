package observability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/logger"
	"github.com/kbukum/fnkit/pipeline"
)

// Runner is anything that runs a pipeline over a sequence.
type Runner[T any] interface {
	Run(input []T) (pipeline.Result[T], error)
}

type options struct {
	tracer  trace.Tracer
	metrics *Metrics
	log     *logger.Logger
}

// Option configures Instrument.
type Option func(*options)

// WithTracer sets the tracer. The global tracer is used otherwise.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithMetrics sets the metric instruments. Without it no metrics are recorded.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger sets the logger for per-run debug lines.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// Instrumented wraps a Runner with tracing, metrics and logging.
// It is safe for concurrent use when the wrapped Runner is.
type Instrumented[T any] struct {
	name   string
	runner Runner[T]
	opts   options
}

// Instrument wraps runner. name labels spans, metrics and log lines.
func Instrument[T any](name string, runner Runner[T], opts ...Option) *Instrumented[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = Tracer(instrumentationName)
	}
	if o.log == nil {
		o.log = logger.Get("observability")
	}
	return &Instrumented[T]{name: name, runner: runner, opts: o}
}

// Run runs the wrapped pipeline without a parent span.
func (i *Instrumented[T]) Run(input []T) (pipeline.Result[T], error) {
	return i.RunContext(context.Background(), input)
}

// RunContext runs the wrapped pipeline inside a span that is a child of
// any span in ctx. The runner's result and error are returned unchanged.
func (i *Instrumented[T]) RunContext(ctx context.Context, input []T) (pipeline.Result[T], error) {
	runID := uuid.NewString()
	stages := stageCount(i.runner)

	ctx, span := i.opts.tracer.Start(ctx, SpanPipelineRun, trace.WithAttributes(
		attribute.String(AttrPipelineName, i.name),
		attribute.String(AttrRunID, runID),
		attribute.Int(AttrStages, stages),
		attribute.Int(AttrInputSize, len(input)),
	))
	defer span.End()

	start := time.Now()
	res, err := i.runner.Run(input)
	elapsed := time.Since(start)

	status := "ok"
	fields := logger.Fields(
		logger.FieldPipeline, i.name,
		logger.FieldRunID, runID,
		logger.FieldStages, stages,
		logger.FieldInputSize, len(input),
		logger.FieldDuration, elapsed.Milliseconds(),
	)
	if err != nil {
		status = "error"
		errType := ErrorType(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorType, errType))
		i.opts.metrics.RecordError(ctx, i.name, errType)
		fields[logger.FieldError] = err.Error()
	} else {
		span.SetAttributes(attribute.Bool(AttrReduced, res.Reduced()))
		span.SetStatus(codes.Ok, "")
	}
	span.SetAttributes(attribute.String(AttrStatus, status))
	i.opts.metrics.RecordRun(ctx, i.name, status, len(input), elapsed)

	fields[logger.FieldStatus] = status
	i.opts.log.Debug("pipeline run", fields)

	return res, err
}

// ErrorType classifies err for metrics: the AppError code, or "stage" for
// errors returned by stage functions.
func ErrorType(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return "stage"
}

func stageCount(r any) int {
	if l, ok := r.(interface{ Len() int }); ok {
		return l.Len()
	}
	return 0
}
