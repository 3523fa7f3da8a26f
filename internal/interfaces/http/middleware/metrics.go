package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/satyaprakrati/cozico/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// HTTPMetricsConfig configures HTTPMetrics.
type HTTPMetricsConfig struct {
	MeterProvider *telemetry.MeterProvider
	Enabled       bool
	Logger        *zap.Logger
}

var (
	requestTotalMetric = telemetry.Instrument{
		Name:        "http_server_request_total",
		Description: "HTTP requests by route and status",
		Unit:        "{request}",
	}
	requestDurationMetric = telemetry.Instrument{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency",
		Unit:        "s",
		Buckets:     telemetry.HTTPDurationBuckets,
	}
	// cart bodies are a few hundred bytes; listings are the large responses
	requestSizeMetric = telemetry.Instrument{
		Name:        "http_server_request_size_bytes",
		Description: "HTTP request body size",
		Unit:        "By",
		Buckets:     []float64{50, 100, 250, 500, 1000, 5000, 10000, 65536},
	}
	responseSizeMetric = telemetry.Instrument{
		Name:        "http_server_response_size_bytes",
		Description: "HTTP response body size",
		Unit:        "By",
		Buckets:     []float64{100, 500, 1000, 5000, 10000, 25000, 50000, 100000, 500000},
	}
	activeRequestsMetric = telemetry.Instrument{
		Name:        "http_server_active_requests",
		Description: "HTTP requests in flight",
		Unit:        "{request}",
	}
)

type httpInstruments struct {
	total    *telemetry.Counter
	duration *telemetry.Histogram
	reqSize  *telemetry.Histogram
	respSize *telemetry.Histogram
	inFlight *telemetry.Gauge
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	var (
		in  httpInstruments
		err error
	)
	if in.total, err = requestTotalMetric.Counter(meter); err != nil {
		return nil, err
	}
	if in.duration, err = requestDurationMetric.Histogram(meter); err != nil {
		return nil, err
	}
	if in.reqSize, err = requestSizeMetric.Histogram(meter); err != nil {
		return nil, err
	}
	if in.respSize, err = responseSizeMetric.Histogram(meter); err != nil {
		return nil, err
	}
	if in.inFlight, err = activeRequestsMetric.Gauge(meter); err != nil {
		return nil, err
	}
	return &in, nil
}

// HTTPMetrics records request count, latency, body sizes and in-flight
// requests per matched route. It passes through when the provider does not
// export.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.MeterProvider == nil || !cfg.MeterProvider.IsEnabled() {
		return passThrough
	}
	in, err := newHTTPInstruments(cfg.MeterProvider.Meter("http.server"))
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("HTTP metrics disabled", zap.Error(err))
		}
		return passThrough
	}
	return in.middleware
}

// HTTPMetricsWithMeter is HTTPMetrics on a caller-supplied meter.
func HTTPMetricsWithMeter(meter metric.Meter, enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}
	in, err := newHTTPInstruments(meter)
	if err != nil {
		return passThrough
	}
	return in.middleware
}

func passThrough(c *gin.Context) {
	c.Next()
}

func (in *httpInstruments) middleware(c *gin.Context) {
	ctx := c.Request.Context()
	start := time.Now()

	done := in.inFlight.Track(ctx)
	c.Next()
	done()

	// Route pattern rather than path keeps product IDs out of the labels.
	route := c.FullPath()
	if route == "" {
		route = "unknown"
	}
	status := c.Writer.Status()
	attrs := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(c.Request.Method),
		telemetry.AttrHTTPRoute.String(route),
	}

	in.total.Inc(ctx, append(attrs,
		telemetry.AttrHTTPStatusCode.Int(status),
		telemetry.AttrHTTPStatusClass.String(HTTPMetricsStatusGroup(status)),
	)...)
	in.duration.Since(ctx, start, attrs...)
	if n := c.Request.ContentLength; n > 0 {
		in.reqSize.Record(ctx, float64(n), attrs...)
	}
	if n := c.Writer.Size(); n > 0 {
		in.respSize.Record(ctx, float64(n), attrs...)
	}
}

// HTTPMetricsStatusGroup buckets a status code into its class.
func HTTPMetricsStatusGroup(code int) string {
	if code < 200 || code > 599 {
		return "other"
	}
	return string(rune('0'+code/100)) + "xx"
}
