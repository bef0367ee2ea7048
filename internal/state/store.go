// Package state holds immutable UI-facing snapshots and notifies
// subscribers when they change, with no rendering framework attached.
package state

import "sync"

// Store keeps the latest snapshot of T and a registry of subscriber
// channels. Publishing never blocks: a subscriber that has not drained its
// channel misses intermediate snapshots but always receives the latest one.
type Store[T any] struct {
	mu       sync.RWMutex
	snapshot T
	subs     map[chan T]bool
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{subs: make(map[chan T]bool)}
}

// Get returns the current snapshot.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Publish replaces the snapshot and notifies subscribers.
func (s *Store[T]) Publish(snapshot T) {
	s.mu.Lock()
	s.snapshot = snapshot
	for ch := range s.subs {
		select {
		case <-ch: // drop the stale snapshot the subscriber never read
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
	s.mu.Unlock()
}

// Subscribe registers a channel that receives each new snapshot. The channel
// is buffered with capacity 1; slow readers only ever see the latest value.
func (s *Store[T]) Subscribe() chan T {
	ch := make(chan T, 1)
	s.mu.Lock()
	s.subs[ch] = true
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (s *Store[T]) Unsubscribe(ch chan T) {
	s.mu.Lock()
	if s.subs[ch] {
		delete(s.subs, ch)
		close(ch)
	}
	s.mu.Unlock()
}
