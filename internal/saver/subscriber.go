package saver

import (
	"sync"

	"github.com/andysmith26/groupwheel-sub002/types"
)

// stateSubscriber is a helper for managing save state subscriptions.
type stateSubscriber struct {
	ch     chan types.SaveState
	mu     sync.Mutex
	closed bool
}

// trySend sends a state update to the subscriber's channel without blocking.
func (s *stateSubscriber) trySend(state types.SaveState, metrics types.SaverMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.ch <- state:
	default:
		// Subscriber is slow or not ready; they will get the next update.
		metrics.RecordStateChangeDropped()
	}
}

// close safely closes the subscriber's channel.
func (s *stateSubscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
