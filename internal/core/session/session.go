// Package session keeps live login sessions. The cookie token only names a
// session; deleting it here logs the user out even if the token is unexpired.
package session

import (
	"context"
	"sync"
	"time"
)

type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
}

// Store is selected at startup: MemoryStore for single-process use and
// tests, RedisStore when several API processes share sessions.
type Store interface {
	Save(ctx context.Context, s Session) error
	// Get returns (nil, nil) for unknown or expired sessions.
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

type MemoryStore struct {
	mu   sync.Mutex
	now  func() time.Time
	data map[string]Session
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now, data: map[string]Session{}}
}

func (m *MemoryStore) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	if !m.now().Before(s.ExpiresAt) {
		delete(m.data, id)
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
