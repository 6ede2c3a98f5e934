package db

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// MockRedisClient is an in-memory RedisClient. It honours TTLs against the
// given clock, so it also serves as the cache when Redis is disabled.
type MockRedisClient struct {
	data  map[string]mockEntry
	mu    sync.RWMutex
	clock clockwork.Clock
}

type mockEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// NewMockRedisClient initializes a new MockRedisClient on the real clock.
func NewMockRedisClient() *MockRedisClient {
	return NewMockRedisClientWithClock(clockwork.NewRealClock())
}

func NewMockRedisClientWithClock(clock clockwork.Clock) *MockRedisClient {
	return &MockRedisClient{
		data:  make(map[string]mockEntry),
		clock: clock,
	}
}

func (m *MockRedisClient) Set(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := mockEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.clock.Now().Add(ttl)
	}
	m.data[key] = e
	return nil
}

func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	e, exists := m.data[key]
	m.mu.RUnlock()
	if !exists || m.expired(e) {
		return "", ErrKeyNotFound
	}
	return e.value, nil
}

func (m *MockRedisClient) Ping() error {
	return nil
}

func (m *MockRedisClient) expired(e mockEntry) bool {
	return !e.expiresAt.IsZero() && !m.clock.Now().Before(e.expiresAt)
}
