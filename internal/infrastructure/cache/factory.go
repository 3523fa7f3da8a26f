package cache

import (
	"fmt"
	"time"

	"github.com/satyaprakrati/cozico/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SnapshotStoreFactory picks a snapshot store based on configuration
type SnapshotStoreFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SnapshotStoreFactoryOption is a functional option for the factory
type SnapshotStoreFactoryOption func(*SnapshotStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SnapshotStoreFactoryOption {
	return func(f *SnapshotStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory store. Default is true.
func WithInMemoryFallback(allow bool) SnapshotStoreFactoryOption {
	return func(f *SnapshotStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSnapshotStoreFactory creates a new factory
func NewSnapshotStoreFactory(cfg config.RedisConfig, ttl time.Duration, opts ...SnapshotStoreFactoryOption) *SnapshotStoreFactory {
	f := &SnapshotStoreFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns a Redis store when Redis is enabled and reachable,
// otherwise an in-memory store (unless fallback is disabled).
func (f *SnapshotStoreFactory) CreateStore() (SnapshotStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-memory cart snapshot store")
		return NewInMemorySnapshotStore(f.ttl), nil
	}

	store, err := NewRedisSnapshotStore(f.redisConfig, f.ttl)
	if err == nil {
		f.logger.Info("using Redis cart snapshot store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for cart snapshots but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cart snapshots. "+
		"Carts will not survive a restart.",
		zap.Error(err),
	)
	return NewInMemorySnapshotStore(f.ttl), nil
}
