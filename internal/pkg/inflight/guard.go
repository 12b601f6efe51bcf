package inflight

import (
	"errors"
	"sync"
)

// ErrInProgress is returned when the same action is already running for the key.
var ErrInProgress = errors.New("action already in progress")

// Guard allows at most one in-flight action per key. A second attempt while
// the first is pending is rejected instead of queued.
type Guard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{busy: make(map[string]struct{})}
}

// TryAcquire marks key busy. The returned release must be called exactly
// once when the action resolves, whether it succeeded or failed.
func (g *Guard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, taken := g.busy[key]; taken {
		return nil, false
	}
	g.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, true
}

// Busy reports whether an action is in flight for key.
func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, taken := g.busy[key]
	return taken
}

// Do runs fn under key, or returns ErrInProgress without calling fn.
func (g *Guard) Do(key string, fn func() error) error {
	release, ok := g.TryAcquire(key)
	if !ok {
		return ErrInProgress
	}
	defer release()
	return fn()
}

// Key joins an owner, such as a session or user id, and an action name.
func Key(owner, action string) string {
	return owner + ":" + action
}
