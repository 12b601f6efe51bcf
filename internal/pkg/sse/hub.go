package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to the pages of one session
type Event struct {
	SessionID string
	Event     string
	Data      any
}

// Hub manages SSE subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a session and returns the event channel and cleanup function.
// The channel is closed by cleanup or by Disconnect, whichever runs first.
func (h *Hub) Subscribe(sessionID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[sessionID] == nil {
		h.subscribers[sessionID] = make(map[chan Event]struct{})
	}
	h.subscribers[sessionID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[sessionID][ch]; !ok {
			return
		}
		delete(h.subscribers[sessionID], ch)
		close(ch)
		if len(h.subscribers[sessionID]) == 0 {
			delete(h.subscribers, sessionID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a specific session
func (h *Hub) Publish(sessionID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[sessionID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// Disconnect closes every stream of a session, e.g. on logout.
func (h *Hub) Disconnect(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers[sessionID] {
		close(ch)
	}
	delete(h.subscribers, sessionID)
}

// SubscriberCount returns the number of active subscribers for a session
func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[sessionID]; ok {
		return len(subs)
	}
	return 0
}

// TotalSubscribers returns the total number of active subscribers across all sessions
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
