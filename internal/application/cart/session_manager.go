package cart

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/satyaprakrati/cozico/internal/domain/cart"
	"github.com/satyaprakrati/cozico/internal/domain/shared"
	"github.com/satyaprakrati/cozico/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SessionOptions configures store lifetimes
type SessionOptions struct {
	IdleTTL         time.Duration
	JanitorInterval time.Duration
}

// session is one shopper's store plus its persistence bookkeeping
type session struct {
	id    uuid.UUID
	store *cart.Store

	// persistMu orders dispatch with snapshot writes so the saved state
	// is always the latest one.
	persistMu sync.Mutex
	lastSeen  atomic.Int64
}

func (s *session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// SessionManager owns one cart store per shopper session.
// Stores are created on first use, hydrated from the snapshot repository
// when one is configured, and evicted after IdleTTL without access.
type SessionManager struct {
	snapshots cart.SnapshotRepository
	logger    *zap.Logger
	opts      SessionOptions
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	loads    singleflight.Group
}

// NewSessionManager creates a SessionManager. snapshots may be nil, in which
// case stores live in memory only.
func NewSessionManager(snapshots cart.SnapshotRepository, logger *zap.Logger, opts SessionOptions) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 2 * time.Hour
	}
	if opts.JanitorInterval <= 0 {
		opts.JanitorInterval = time.Minute
	}
	return &SessionManager{
		snapshots: snapshots,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*session),
	}
}

// Store returns the store of a session, creating it if needed
func (m *SessionManager) Store(ctx context.Context, id uuid.UUID) (*cart.Store, error) {
	s, err := m.session(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store, nil
}

// Snapshot returns the current state of a session
func (m *SessionManager) Snapshot(ctx context.Context, id uuid.UUID) (cart.State, error) {
	s, err := m.session(ctx, id)
	if err != nil {
		return cart.State{}, err
	}
	return s.store.Snapshot(), nil
}

// Dispatch applies an action to the session's store and persists the result.
// A failed snapshot write is logged and does not undo the transition.
func (m *SessionManager) Dispatch(ctx context.Context, id uuid.UUID, action cart.Action) (cart.Transition, error) {
	return m.DispatchWith(ctx, id, func(cart.State) (cart.Action, error) {
		return action, nil
	})
}

// DispatchWith picks an action from the session's current state and applies
// it like Dispatch. No other dispatch to the session runs between decide and
// the transition. An error from decide is returned and nothing is applied.
func (m *SessionManager) DispatchWith(ctx context.Context, id uuid.UUID, decide func(cart.State) (cart.Action, error)) (cart.Transition, error) {
	s, err := m.session(ctx, id)
	if err != nil {
		return cart.Transition{}, err
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	action, err := decide(s.store.Snapshot())
	if err != nil {
		return cart.Transition{}, err
	}

	t := s.store.Dispatch(action)
	if m.snapshots != nil {
		if err := m.snapshots.Save(ctx, id, t.Next); err != nil {
			m.logger.Warn("failed to persist cart snapshot",
				zap.String("session_id", id.String()),
				zap.String("action", action.Name()),
				zap.Error(err),
			)
		}
	}
	return t, nil
}

// ActiveSessions returns the number of stores held in memory
func (m *SessionManager) ActiveSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

var janitorLabels = telemetry.OperationLabels("session.evict", nil)

// Run evicts idle stores every JanitorInterval until ctx is canceled
func (m *SessionManager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.opts.JanitorInterval)
	defer ticker.Stop()

	m.logger.Info("session janitor started",
		zap.Duration("idle_ttl", m.opts.IdleTTL),
		zap.Duration("interval", m.opts.JanitorInterval),
	)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("session janitor stopped")
			return nil
		case <-ticker.C:
			telemetry.WithProfilingLabels(ctx, janitorLabels, func(context.Context) {
				if n := m.EvictIdle(); n > 0 {
					m.logger.Debug("evicted idle sessions", zap.Int("count", n))
				}
			})
		}
	}
}

// EvictIdle drops stores not accessed within IdleTTL and returns how many
// were dropped. Stores with live subscribers are kept.
func (m *SessionManager) EvictIdle() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if s.idleSince(now) < m.opts.IdleTTL || s.store.Subscribers() > 0 {
			continue
		}
		delete(m.sessions, id)
		evicted++
	}
	return evicted
}

func (m *SessionManager) session(ctx context.Context, id uuid.UUID) (*session, error) {
	if id == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithMessage("Session id is required")
	}

	// sessions are touched under mu so EvictIdle never drops one that is
	// being handed out
	m.mu.RLock()
	s, ok := m.sessions[id]
	if ok {
		s.touch(m.now())
	}
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	// the load is shared by every waiter and must outlive any one of them
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := m.loads.Do(id.String(), func() (any, error) {
		m.mu.RLock()
		existing, ok := m.sessions[id]
		if ok {
			existing.touch(m.now())
		}
		m.mu.RUnlock()
		if ok {
			return existing, nil
		}

		state, err := m.hydrate(loadCtx, id)
		if err != nil {
			return nil, err
		}
		created := &session{id: id, store: cart.NewStore(state)}

		m.mu.Lock()
		defer m.mu.Unlock()
		if existing, ok := m.sessions[id]; ok {
			existing.touch(m.now())
			return existing, nil
		}
		created.touch(m.now())
		m.sessions[id] = created
		return created, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*session), nil
}

// hydrate loads the saved state of a session. A missing or corrupt snapshot
// starts the shopper with an empty cart. Any other load failure is returned
// as shared.ErrUnavailable and no store is created, so the saved cart is
// never replaced by an empty one.
func (m *SessionManager) hydrate(ctx context.Context, id uuid.UUID) (cart.State, error) {
	if m.snapshots == nil {
		return cart.State{}, nil
	}
	state, err := m.snapshots.Load(ctx, id)
	switch {
	case err == nil:
		return state, nil
	case errors.Is(err, shared.ErrNotFound):
		return cart.State{}, nil
	case errors.Is(err, cart.ErrCorruptSnapshot):
		m.logger.Warn("discarding corrupt cart snapshot",
			zap.String("session_id", id.String()),
			zap.Error(err),
		)
		return cart.State{}, nil
	default:
		m.logger.Error("failed to load cart snapshot",
			zap.String("session_id", id.String()),
			zap.Error(err),
		)
		return cart.State{}, shared.ErrUnavailable.WithMessage("Your cart could not be loaded, please try again")
	}
}
