// Package event is the in-process bus cart activity flows through.
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/satyaprakrati/cozico/internal/domain/shared"
	"go.uber.org/zap"
)

type BusOption func(*Bus)

// WithAsyncDelivery gives a started bus a queue of queueSize events drained
// by workers goroutines. Outside Start..Stop delivery stays synchronous.
func WithAsyncDelivery(queueSize, workers int) BusOption {
	return func(b *Bus) {
		b.queueSize = max(queueSize, 1)
		b.workers = max(workers, 1)
	}
}

type queued struct {
	ctx   context.Context
	event shared.Event
}

// Bus delivers events to subscribers in process. A failing or panicking
// handler is logged and skipped.
type Bus struct {
	subs   *Subscriptions
	logger *zap.Logger

	queueSize int
	workers   int

	mu      sync.RWMutex
	started bool
	queue   chan queued // nil while delivery is synchronous
	wg      sync.WaitGroup
}

func NewBus(logger *zap.Logger, opts ...BusOption) *Bus {
	b := &Bus{subs: NewSubscriptions(), logger: logger}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish returns an error only when ctx ends while waiting for queue space.
func (b *Bus) Publish(ctx context.Context, events ...shared.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ev := range events {
		if b.queue == nil {
			b.deliver(ctx, ev)
			continue
		}
		// queued delivery outlives the request that published
		select {
		case b.queue <- queued{ctx: context.WithoutCancel(ctx), event: ev}:
		case <-ctx.Done():
			return fmt.Errorf("publish %s: %w", ev.EventType(), ctx.Err())
		}
	}
	return nil
}

// Subscribe uses handler.EventTypes unless eventTypes are given.
func (b *Bus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.subs.Add(handler, eventTypes...)
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

func (b *Bus) Unsubscribe(handler shared.EventHandler) {
	b.subs.Remove(handler)
}

func (b *Bus) Start(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return nil
	}
	b.started = true

	if b.workers > 0 {
		b.queue = make(chan queued, b.queueSize)
		for range b.workers {
			b.wg.Go(func() {
				for q := range b.queue {
					b.deliver(q.ctx, q.event)
				}
			})
		}
	}
	b.logger.Info("event bus started", zap.Int("workers", b.workers))
	return nil
}

// Stop closes the queue and waits for workers to drain it until ctx ends.
func (b *Bus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return nil
	}
	b.started = false
	if b.queue != nil {
		close(b.queue)
		b.queue = nil
	}
	b.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop event bus: %w", ctx.Err())
	}
}

func (b *Bus) deliver(ctx context.Context, ev shared.Event) {
	for _, h := range b.subs.Match(ev.EventType()) {
		if err := safeHandle(ctx, h, ev); err != nil {
			b.logger.Error("handler failed to process event",
				zap.String("event_type", ev.EventType()),
				zap.Stringer("event_id", ev.EventID()),
				zap.Stringer("session_id", ev.ShopperSession()),
				zap.Error(err),
			)
		}
	}
}

func safeHandle(ctx context.Context, h shared.EventHandler, ev shared.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, ev)
}

var _ shared.EventBus = (*Bus)(nil)
