package telemetry

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Options selects what Setup starts.
type Options struct {
	Traces   TracesConfig
	Metrics  MetricsConfig
	Logs     LogsConfig
	Profiler ProfilerConfig

	// SpanProfiles links CPU samples to spans; needs traces and the profiler.
	SpanProfiles bool
}

// Providers is the started telemetry stack. Every field is non-nil after
// Setup, disabled signals included.
type Providers struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup starts each provider in turn. If one fails, the ones already
// started are shut down.
func Setup(ctx context.Context, opts Options, logger *zap.Logger) (*Providers, error) {
	p := &Providers{}
	fail := func(err error) (*Providers, error) {
		return nil, errors.Join(err, p.Shutdown(context.WithoutCancel(ctx)))
	}

	var err error
	if p.Tracer, err = NewTracerProvider(ctx, opts.Traces, logger); err != nil {
		return fail(err)
	}
	if p.Meter, err = NewMeterProvider(ctx, opts.Metrics, logger); err != nil {
		return fail(err)
	}
	if p.Logs, err = NewLoggerProvider(ctx, opts.Logs, logger); err != nil {
		return fail(err)
	}
	if p.Profiler, err = NewProfiler(opts.Profiler, logger); err != nil {
		return fail(err)
	}

	if opts.SpanProfiles && p.Profiler.IsEnabled() {
		if err := p.Tracer.EnableSpanProfiles(); err != nil {
			logger.Warn("span profiles unavailable", zap.Error(err))
		}
	}
	return p, nil
}

// Shutdown stops the profiler and flushes every exporter. Logs go last so
// the others' shutdown errors still reach the collector.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Profiler != nil {
		errs = append(errs, p.Profiler.Stop())
	}
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	if p.Logs != nil {
		errs = append(errs, p.Logs.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
