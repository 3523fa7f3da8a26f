package event

import (
	"slices"
	"sync"

	"github.com/satyaprakrati/cozico/internal/domain/shared"
)

type subscription struct {
	handler shared.EventHandler
	types   map[string]struct{} // nil matches every type
}

func (s *subscription) matches(eventType string) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// Subscriptions keeps handlers in the order they first subscribed. Handlers
// are compared by identity, so they need pointer receivers.
type Subscriptions struct {
	mu   sync.RWMutex
	subs []*subscription
}

func NewSubscriptions() *Subscriptions {
	return &Subscriptions{}
}

// Add subscribes handler to eventTypes, merging with an earlier
// subscription of the same handler. No types subscribes it to everything.
func (s *Subscriptions) Add(handler shared.EventHandler, eventTypes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(handler)
	if i < 0 {
		s.subs = append(s.subs, &subscription{handler: handler, types: map[string]struct{}{}})
		i = len(s.subs) - 1
	}
	sub := s.subs[i]

	switch {
	case len(eventTypes) == 0:
		sub.types = nil
	case sub.types != nil:
		for _, t := range eventTypes {
			sub.types[t] = struct{}{}
		}
	}
}

func (s *Subscriptions) Remove(handler shared.EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(handler); i >= 0 {
		s.subs = slices.Delete(s.subs, i, i+1)
	}
}

// Match returns the handlers subscribed to eventType.
func (s *Subscriptions) Match(eventType string) []shared.EventHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []shared.EventHandler
	for _, sub := range s.subs {
		if sub.matches(eventType) {
			out = append(out, sub.handler)
		}
	}
	return out
}

func (s *Subscriptions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Subscriptions) indexOf(handler shared.EventHandler) int {
	return slices.IndexFunc(s.subs, func(sub *subscription) bool { return sub.handler == handler })
}
