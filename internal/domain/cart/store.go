package cart

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Transition records one applied action
type Transition struct {
	Action Action
	Prev   State
	Next   State
}

// Listener is notified after every dispatch and sees transitions in dispatch
// order. Listeners of one store run in subscription order.
// A listener must not call Dispatch on the same store.
type Listener func(t Transition)

// Store owns the state of one shopper. Dispatch is the single write path and
// is serialized; Snapshot is lock-free and always returns a whole state.
type Store struct {
	writeMu sync.Mutex
	state   atomic.Pointer[State]

	subMu     sync.RWMutex
	listeners []subscriber
	nextSubID uint64
}

type subscriber struct {
	id uint64
	l  Listener
}

// NewStore creates a store holding initial
func NewStore(initial State) *Store {
	s := &Store{}
	s.state.Store(&initial)
	return s
}

// Snapshot returns the latest state
func (s *Store) Snapshot() State {
	return *s.state.Load()
}

// Dispatch reduces the current state with a, publishes the result and
// notifies listeners before returning.
func (s *Store) Dispatch(a Action) Transition {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prev := *s.state.Load()
	next := Reduce(prev, a)
	s.state.Store(&next)

	t := Transition{Action: a, Prev: prev, Next: next}
	s.notify(t)
	return t
}

// Replace swaps in a whole state without running the reducer, e.g. when
// hydrating from a snapshot. Listeners are not notified.
func (s *Store) Replace(state State) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.state.Store(&state)
}

// Subscribe registers l and returns a function that removes it.
// The returned function is safe to call more than once.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners = append(s.listeners, subscriber{id: id, l: l})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			s.listeners = slices.DeleteFunc(s.listeners, func(sub subscriber) bool {
				return sub.id == id
			})
			s.subMu.Unlock()
		})
	}
}

// Subscribers returns the number of registered listeners
func (s *Store) Subscribers() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.listeners)
}

func (s *Store) notify(t Transition) {
	s.subMu.RLock()
	listeners := slices.Clone(s.listeners)
	s.subMu.RUnlock()

	for _, sub := range listeners {
		sub.l(t)
	}
}
