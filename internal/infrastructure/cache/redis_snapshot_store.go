package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/satyaprakrati/cozico/internal/domain/cart"
	"github.com/satyaprakrati/cozico/internal/domain/shared"
	"github.com/satyaprakrati/cozico/internal/infrastructure/config"
)

const defaultKeyPrefix = "cozico:cart:"

// RedisSnapshotStore keeps cart snapshots in Redis so a session survives
// restarts and can move between instances.
type RedisSnapshotStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisSnapshotStore connects to Redis and verifies the connection
func NewRedisSnapshotStore(cfg config.RedisConfig, ttl time.Duration) (*RedisSnapshotStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	store := NewRedisSnapshotStoreWithClient(client, cfg.KeyPrefix, ttl)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return store, nil
}

// NewRedisSnapshotStoreWithClient wraps an existing client.
// A zero ttl keeps snapshots until they are deleted.
func NewRedisSnapshotStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSnapshotStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisSnapshotStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *RedisSnapshotStore) key(sessionID uuid.UUID) string {
	return s.keyPrefix + sessionID.String()
}

// Load returns the saved state, or shared.ErrNotFound
func (s *RedisSnapshotStore) Load(ctx context.Context, sessionID uuid.UUID) (cart.State, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.State{}, shared.ErrNotFound
	}
	if err != nil {
		return cart.State{}, fmt.Errorf("failed to load cart snapshot: %w", err)
	}
	return decodeSnapshot(data)
}

// Save replaces the saved state and refreshes its expiry
func (s *RedisSnapshotStore) Save(ctx context.Context, sessionID uuid.UUID, state cart.State) error {
	data, err := encodeSnapshot(state)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// Delete removes the saved state
func (s *RedisSnapshotStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}

// Ping checks the connection
func (s *RedisSnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (s *RedisSnapshotStore) Close() error {
	return s.client.Close()
}

var _ SnapshotStore = (*RedisSnapshotStore)(nil)
