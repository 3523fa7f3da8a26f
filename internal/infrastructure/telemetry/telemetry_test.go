package telemetry

import (
	"context"
	"errors"
	"runtime/pprof"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDisabledProviders(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	tp, err := NewTracerProvider(ctx, TracesConfig{}, logger)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NoError(t, tp.EnableSpanProfiles())
	assert.False(t, tp.SpanProfilesEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := NewMeterProvider(ctx, MetricsConfig{}, logger)
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := NewLoggerProvider(ctx, LogsConfig{}, logger)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.False(t, lp.ZapCore(zapcore.InfoLevel).Enabled(zapcore.ErrorLevel))
	assert.NoError(t, lp.Shutdown(ctx))

	p, err := NewProfiler(ProfilerConfig{Enabled: false}, logger)
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestSetup(t *testing.T) {
	ctx := context.Background()

	t.Run("everything off", func(t *testing.T) {
		p, err := Setup(ctx, Options{SpanProfiles: true}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, p.Tracer.IsEnabled())
		assert.False(t, p.Meter.IsEnabled())
		assert.False(t, p.Logs.IsEnabled())
		assert.False(t, p.Profiler.IsEnabled())
		assert.False(t, p.Tracer.SpanProfilesEnabled())
		assert.NoError(t, p.Shutdown(ctx))
	})

	t.Run("missing endpoint", func(t *testing.T) {
		_, err := Setup(ctx, Options{
			Metrics: MetricsConfig{Signal: Signal{Enabled: true, ServiceName: "cozico"}},
		}, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics endpoint")
	})

	t.Run("shutdown of a partial stack", func(t *testing.T) {
		assert.NoError(t, (&Providers{}).Shutdown(ctx))
	})
}

func TestSignalResource(t *testing.T) {
	res, err := Signal{ServiceName: "cozico-storefront", Environment: "test"}.resource(context.Background())
	require.NoError(t, err)

	attrs := map[string]string{}
	for _, kv := range res.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "cozico-storefront", attrs["service.name"])
	assert.Equal(t, "dev", attrs["service.version"])
	assert.Equal(t, "test", attrs["deployment.environment.name"])
}

func TestSignalValidate(t *testing.T) {
	assert.NoError(t, Signal{}.validate("traces"))
	assert.Error(t, Signal{Enabled: true, ServiceName: "cozico"}.validate("traces"))
	assert.Error(t, Signal{Enabled: true, Endpoint: "localhost:4317"}.validate("traces"))
	assert.NoError(t, Signal{Enabled: true, Endpoint: "localhost:4317", ServiceName: "cozico"}.validate("traces"))
}

func TestInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	ctx := context.Background()

	gauge, err := Instrument{Name: "in_flight"}.Gauge(meter)
	require.NoError(t, err)
	done := gauge.Track(ctx)
	hist, err := Instrument{Name: "latency", Unit: "s", Buckets: HTTPDurationBuckets}.Histogram(meter)
	require.NoError(t, err)
	hist.Since(ctx, time.Now())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	for _, md := range rm.ScopeMetrics[0].Metrics {
		switch md.Name {
		case "in_flight":
			assert.Equal(t, int64(1), md.Data.(metricdata.Sum[int64]).DataPoints[0].Value)
		case "latency":
			dp := md.Data.(metricdata.Histogram[float64]).DataPoints[0]
			assert.Equal(t, uint64(1), dp.Count)
			assert.Equal(t, HTTPDurationBuckets, dp.Bounds)
		}
	}

	done()
	rm = metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(ctx, &rm))
	for _, md := range rm.ScopeMetrics[0].Metrics {
		if md.Name == "in_flight" {
			assert.Zero(t, md.Data.(metricdata.Sum[int64]).DataPoints[0].Value)
		}
	}
}

func TestNewProfiler_Validation(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "cozico"}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewSampler(t *testing.T) {
	assert.Contains(t, newSampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, newSampler(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, newSampler(0.25).Description(), "TraceIDRatioBased")
}

func TestStartServiceSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	ctx, span := StartServiceSpan(context.Background(), "cart", "add",
		SpanAttrProductID.String("classic-oxford-shirt"),
		SpanAttrQuantity.Int(2),
	)
	assert.NotEmpty(t, GetTraceID(ctx))
	span.SetAttributes(SpanAttrSessionID.String("abc"))
	span.AddEvent("selection_validated", trace.WithAttributes(SpanAttrAction.String("add_to_cart")))
	RecordError(span, nil)
	RecordError(span, errors.New("out of stock"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "cart.add", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Contains(t, got.Attributes(), SpanAttrProductID.String("classic-oxford-shirt"))
	assert.Contains(t, got.Attributes(), SpanAttrQuantity.Int(2))
	assert.Contains(t, got.Attributes(), SpanAttrSessionID.String("abc"))
	require.Len(t, got.Events(), 2) // custom event plus the recorded error
	assert.Equal(t, "selection_validated", got.Events()[0].Name)

	assert.Empty(t, GetTraceID(context.Background()))
}

type fixedSessions int

func (f fixedSessions) ActiveSessions() int { return int(f) }

func TestStorefrontMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	ctx := context.Background()

	_, err := NewStorefrontMetrics(StorefrontMetricsConfig{})
	assert.ErrorIs(t, err, ErrMeterNil)

	m, err := NewStorefrontMetrics(StorefrontMetricsConfig{
		Meter:    provider.Meter("test"),
		Sessions: fixedSessions(3),
	})
	require.NoError(t, err)
	defer m.Stop()

	m.RecordUnitsAdded(ctx, "classic-oxford-shirt", "clothing", 2)
	m.RecordUnitsAdded(ctx, "classic-oxford-shirt", "clothing", 1)
	m.RecordUnitsRemoved(ctx, "remove_from_cart", 3)
	m.RecordUnitsRemoved(ctx, "update_quantity", 0)
	m.RecordCartCleared(ctx)
	m.RecordWishlistChange(ctx, "add_to_wishlist")
	m.RecordAddRejected(ctx, "selection_required")
	m.RecordCatalogQuery(ctx, "price-asc")
	m.RecordCartValue(ctx, 5697)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	values := map[string]int64{}
	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			names[md.Name] = true
			switch data := md.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					values[md.Name] += dp.Value
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					values[md.Name] = dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(3), values["cozico_cart_units_added_total"])
	assert.Equal(t, int64(3), values["cozico_cart_units_removed_total"])
	assert.Equal(t, int64(1), values["cozico_cart_cleared_total"])
	assert.Equal(t, int64(1), values["cozico_wishlist_changes_total"])
	assert.Equal(t, int64(1), values["cozico_cart_add_rejected_total"])
	assert.Equal(t, int64(1), values["cozico_catalog_queries_total"])
	assert.Equal(t, int64(3), values["cozico_active_sessions"])
	assert.True(t, names["cozico_cart_value_rupees"])
}

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		"Route":        "/api/v1/cart/items",
		"session_id":   "abc",
		"empty":        "",
		"Handler-Name": strings.Repeat("x", MaxLabelValueLength+10),
	})

	require.Len(t, pairs, 4)
	assert.Equal(t, "handler_name", pairs[0])
	assert.Len(t, pairs[1], MaxLabelValueLength)
	assert.Equal(t, []string{"route", "/api/v1/cart/items"}, pairs[2:])

	assert.Nil(t, sanitizeLabels(nil))
}

func TestWithProfilingLabels(t *testing.T) {
	var route string
	WithProfilingLabels(context.Background(), HTTPRequestLabels("CartHandler", "/api/v1/cart", "GET"), func(ctx context.Context) {
		route, _ = pprof.Label(ctx, ProfilingLabelRoute)
	})
	assert.Equal(t, "/api/v1/cart", route)

	called := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)

	labels := OperationLabels("catalog.list", map[string]string{ProfilingLabelMethod: "GET"})
	assert.Equal(t, "catalog.list", labels[ProfilingLabelOperation])
	assert.Equal(t, "GET", labels[ProfilingLabelMethod])
}
