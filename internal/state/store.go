// Package state holds small explicit state containers with typed actions and
// pure reducers. Each container is owned by whoever constructs it and is
// passed to its consumers; nothing here is global.
package state

import "sync"

// Reducer computes the next state from the current one and an action.
// Reducers must not mutate shared data or perform side effects.
type Reducer[S any, A any] func(S, A) S

// Store serializes dispatches to a reducer and notifies subscribers.
type Store[S any, A any] struct {
	mu     sync.RWMutex
	state  S
	reduce Reducer[S, A]
	subs   map[int]func(S)
	nextID int
}

// NewStore creates a Store starting at initial.
func NewStore[S any, A any](initial S, reduce Reducer[S, A]) *Store[S, A] {
	return &Store[S, A]{
		state:  initial,
		reduce: reduce,
		subs:   make(map[int]func(S)),
	}
}

// State returns the current state.
func (s *Store[S, A]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies action and returns the resulting state. Subscribers are
// called after the lock is released, in no particular order.
func (s *Store[S, A]) Dispatch(action A) S {
	s.mu.Lock()
	s.state = s.reduce(s.state, action)
	next := s.state
	subs := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers fn for state changes and returns a func removing it.
func (s *Store[S, A]) Subscribe(fn func(S)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
