// Package metrics builds the OpenTelemetry providers shared by the HTTP layer
// and the scan pipeline. Instruments are exported through the Prometheus
// registry served on the metrics endpoint.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// DefaultBuckets are latency buckets in seconds. They extend to a minute so
// that slow analysis calls still land in a finite bucket.
var DefaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30, 60} //nolint: gochecknoglobals

// NewMeterProvider returns a meter provider whose instruments are collected
// by reg.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel prometheus exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// NewTracerProvider returns a sampling tracer provider without exporters.
// Span contexts are still propagated so trace IDs show up in logs.
func NewTracerProvider() *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
}
