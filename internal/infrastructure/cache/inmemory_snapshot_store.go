package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/satyaprakrati/cozico/internal/domain/cart"
	"github.com/satyaprakrati/cozico/internal/domain/shared"
)

type entry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// InMemorySnapshotStore keeps encoded snapshots in a map.
// Suitable for single-instance deployments and tests.
type InMemorySnapshotStore struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]entry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySnapshotStore creates a store and starts its cleanup goroutine
func NewInMemorySnapshotStore(ttl time.Duration) *InMemorySnapshotStore {
	s := &InMemorySnapshotStore{
		entries:  make(map[uuid.UUID]entry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop(5 * time.Minute)

	return s
}

// Load returns the saved state, or shared.ErrNotFound
func (s *InMemorySnapshotStore) Load(_ context.Context, sessionID uuid.UUID) (cart.State, error) {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		return cart.State{}, shared.ErrNotFound
	}
	// snapshots are stored encoded so callers never share memory with the store
	return decodeSnapshot(e.data)
}

// Save replaces the saved state
func (s *InMemorySnapshotStore) Save(_ context.Context, sessionID uuid.UUID, state cart.State) error {
	data, err := encodeSnapshot(state)
	if err != nil {
		return err
	}

	e := entry{data: data}
	if s.ttl > 0 {
		e.expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[sessionID] = e
	s.mu.Unlock()
	return nil
}

// Delete removes the saved state
func (s *InMemorySnapshotStore) Delete(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

// Ping always succeeds
func (s *InMemorySnapshotStore) Ping(context.Context) error {
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemorySnapshotStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of stored snapshots, expired ones included
func (s *InMemorySnapshotStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *InMemorySnapshotStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemorySnapshotStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, id)
		}
	}
}

var _ SnapshotStore = (*InMemorySnapshotStore)(nil)
