package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument describes a metric before it is bound to a meter. Buckets is
// only read by Histogram.
type Instrument struct {
	Name        string
	Description string
	Unit        string
	Buckets     []float64
}

// Counter is a monotonic int64 sum.
type Counter struct{ inst metric.Int64Counter }

// Counter registers i as a counter on meter.
func (i Instrument) Counter(meter metric.Meter) (*Counter, error) {
	c, err := meter.Int64Counter(i.Name, metric.WithDescription(i.Description), metric.WithUnit(i.Unit))
	if err != nil {
		return nil, fmt.Errorf("counter %s: %w", i.Name, err)
	}
	return &Counter{inst: c}, nil
}

func (c *Counter) Add(ctx context.Context, n int64, attrs ...attribute.KeyValue) {
	c.inst.Add(ctx, n, metric.WithAttributes(attrs...))
}

func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.Add(ctx, 1, attrs...)
}

// Gauge is an int64 sum that goes both ways, e.g. in-flight requests.
type Gauge struct{ inst metric.Int64UpDownCounter }

// Gauge registers i as an up-down counter on meter.
func (i Instrument) Gauge(meter metric.Meter) (*Gauge, error) {
	g, err := meter.Int64UpDownCounter(i.Name, metric.WithDescription(i.Description), metric.WithUnit(i.Unit))
	if err != nil {
		return nil, fmt.Errorf("up-down counter %s: %w", i.Name, err)
	}
	return &Gauge{inst: g}, nil
}

func (g *Gauge) Add(ctx context.Context, delta int64, attrs ...attribute.KeyValue) {
	g.inst.Add(ctx, delta, metric.WithAttributes(attrs...))
}

// Track increments the gauge and returns the matching decrement.
func (g *Gauge) Track(ctx context.Context, attrs ...attribute.KeyValue) func() {
	g.Add(ctx, 1, attrs...)
	return func() { g.Add(ctx, -1, attrs...) }
}

// Histogram is a float64 distribution.
type Histogram struct{ inst metric.Float64Histogram }

// Histogram registers i as a histogram on meter.
func (i Instrument) Histogram(meter metric.Meter) (*Histogram, error) {
	opts := []metric.Float64HistogramOption{metric.WithDescription(i.Description), metric.WithUnit(i.Unit)}
	if len(i.Buckets) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(i.Buckets...))
	}
	h, err := meter.Float64Histogram(i.Name, opts...)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", i.Name, err)
	}
	return &Histogram{inst: h}, nil
}

func (h *Histogram) Record(ctx context.Context, v float64, attrs ...attribute.KeyValue) {
	h.inst.Record(ctx, v, metric.WithAttributes(attrs...))
}

// Since records the seconds elapsed from start.
func (h *Histogram) Since(ctx context.Context, start time.Time, attrs ...attribute.KeyValue) {
	h.Record(ctx, time.Since(start).Seconds(), attrs...)
}

// Attribute keys shared by the storefront and HTTP instruments.
var (
	AttrHTTPMethod      = attribute.Key("http.method")
	AttrHTTPStatusCode  = attribute.Key("http.status_code")
	AttrHTTPStatusClass = attribute.Key("http.status_class")
	AttrHTTPRoute       = attribute.Key("http.route")

	AttrProductID  = attribute.Key("product_id")
	AttrCategory   = attribute.Key("category")
	AttrCartAction = attribute.Key("cart_action")
	AttrReason     = attribute.Key("reason")
	AttrSortKey    = attribute.Key("sort")
)

var (
	// HTTPDurationBuckets are request latencies in seconds.
	HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

	// CartValueBuckets are cart totals in rupees; 2999 is the default
	// free-shipping threshold.
	CartValueBuckets = []float64{500, 1000, 2999, 5000, 10000, 25000, 50000, 100000}
)
