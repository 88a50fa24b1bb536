package scanner

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"sitecheck/pkg/metrics"
	"sitecheck/pkg/serrors"
)

const instrumentationName = "sitecheck/internal/scanner"

const (
	stageQuota     = "quota"
	stageNormalize = "normalize"
	stageFetch     = "fetch"
	stageAnalyze   = "analyze"
	stagePersist   = "persist"
)

type instruments struct {
	tracer        trace.Tracer
	stageDuration metric.Float64Histogram
	outcomes      metric.Int64Counter
}

func newInstruments(mp metric.MeterProvider, tp trace.TracerProvider) (*instruments, error) {
	meter := mp.Meter(instrumentationName)

	stageDuration, err := meter.Float64Histogram("scan.stage.duration",
		metric.WithDescription("Duration of each scan pipeline stage."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, err
	}

	outcomes, err := meter.Int64Counter("scan.outcomes",
		metric.WithDescription("Finished scan requests by result."))
	if err != nil {
		return nil, err
	}

	return &instruments{
		tracer:        tp.Tracer(instrumentationName),
		stageDuration: stageDuration,
		outcomes:      outcomes,
	}, nil
}

// stage runs fn inside a span and records its duration.
func (i *instruments) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := i.tracer.Start(ctx, "scan."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	i.stageDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("stage", name),
		attribute.String("result", resultOf(err)),
	))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, resultOf(err))
	}

	return err
}

func (i *instruments) outcome(ctx context.Context, result string) {
	i.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// resultOf maps err to a low cardinality label.
func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}

	if k := serrors.KindOf(err); k != nil {
		return strings.ToLower(k.Error())
	}

	return "internal"
}
