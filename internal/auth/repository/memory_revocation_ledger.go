package repository

import (
	"context"
	"sync"
	"time"

	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
)

// MemoryRevocationLedger keeps revocation entries in process memory.
// Entries are lost on restart and are not shared between replicas.
type MemoryRevocationLedger struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationLedger creates a new MemoryRevocationLedger. A nil clock uses time.Now.
func NewMemoryRevocationLedger(now func() time.Time) *MemoryRevocationLedger {
	if now == nil {
		now = time.Now
	}
	return &MemoryRevocationLedger{
		entries: make(map[string]time.Time),
		now:     now,
	}
}

// IsRevoked reports whether key has an unexpired entry. Expired entries are dropped on read.
func (m *MemoryRevocationLedger) IsRevoked(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if !m.now().Before(expiresAt) {
		delete(m.entries, key)
		return false, nil
	}
	return true, nil
}

// Revoke records key until now + ttl.
func (m *MemoryRevocationLedger) Revoke(_ context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return authDomain.ErrInvalidTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = m.now().Add(ttl)
	return nil
}

// PurgeExpired drops every expired entry and returns how many were removed.
func (m *MemoryRevocationLedger) PurgeExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var purged int64
	for key, expiresAt := range m.entries {
		if !now.Before(expiresAt) {
			delete(m.entries, key)
			purged++
		}
	}
	return purged, nil
}
