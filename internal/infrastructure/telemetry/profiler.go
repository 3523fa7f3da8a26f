package telemetry

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// ProfilerConfig configures continuous profiling with Pyroscope.
type ProfilerConfig struct {
	Enabled           bool
	ServerAddress     string // e.g. "http://pyroscope:4040"
	ApplicationName   string
	Environment       string
	BasicAuthUser     string
	BasicAuthPassword string

	// Sampling rates for the mutex and block profiles; zero means 5.
	MutexProfileFraction int
	BlockProfileRate     int
}

func (c ProfilerConfig) validate() error {
	switch {
	case !c.Enabled:
		return nil
	case c.ServerAddress == "":
		return errors.New("telemetry: profiler server address is required")
	case c.ApplicationName == "":
		return errors.New("telemetry: profiler application name is required")
	}
	return nil
}

func (c ProfilerConfig) tags() map[string]string {
	tags := make(map[string]string, 2)
	if c.Environment != "" {
		tags["env"] = c.Environment
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		tags["hostname"] = host
	}
	return tags
}

// The session stores sit behind mutexes, so contention profiles are on.
var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
}

// Profiler owns a running Pyroscope session. The zero value is a stopped,
// disabled profiler.
type Profiler struct {
	session *pyroscope.Profiler
	logger  *zap.Logger
	once    sync.Once
	stopErr error
}

// NewProfiler starts profiling, or returns a disabled profiler.
func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger}
	if !cfg.Enabled {
		logger.Info("profiling disabled")
		return p, nil
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	runtime.SetMutexProfileFraction(orDefault(cfg.MutexProfileFraction, 5))
	runtime.SetBlockProfileRate(orDefault(cfg.BlockProfileRate, 5))

	session, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.ApplicationName,
		ServerAddress:     cfg.ServerAddress,
		BasicAuthUser:     cfg.BasicAuthUser,
		BasicAuthPassword: cfg.BasicAuthPassword,
		Logger:            logger.Named("pyroscope").Sugar(),
		Tags:              cfg.tags(),
		ProfileTypes:      profileTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("start profiler: %w", err)
	}
	p.session = session

	logger.Info("profiling enabled",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application", cfg.ApplicationName),
	)
	return p, nil
}

// Stop uploads the last profiles. Later calls return the first result.
func (p *Profiler) Stop() error {
	p.once.Do(func() {
		if p.session == nil {
			return
		}
		if err := p.session.Stop(); err != nil {
			p.stopErr = fmt.Errorf("stop profiler: %w", err)
			return
		}
		p.logger.Info("profiler stopped")
	})
	return p.stopErr
}

// IsEnabled reports whether a profiling session is running.
func (p *Profiler) IsEnabled() bool {
	return p.session != nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
