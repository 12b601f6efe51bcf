package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore keeps tokens in process memory. Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryStore) GetToken(ctx context.Context, sessionID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.sessions[sessionID]
	if !ok || !m.now().Before(entry.expiresAt) {
		return "", ErrSessionNotFound
	}
	return entry.token, nil
}

func (m *MemoryStore) SetToken(ctx context.Context, sessionID string, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = memoryEntry{token: token, expiresAt: expiresAt}
	return nil
}

func (m *MemoryStore) ClearToken(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStore) PurgeExpired(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var removed int64
	for id, entry := range m.sessions {
		if !now.Before(entry.expiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}
