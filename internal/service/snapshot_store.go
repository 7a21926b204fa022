package service

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
)

const snapshotKeyPrefix = "dashboard:snapshot:"

// SnapshotStore owns the latest snapshot of every principal. Stored values are
// treated as immutable; callers replace them wholesale.
type SnapshotStore interface {
	Load(ctx context.Context, principal string) (*dto.Snapshot, bool, error)
	Save(ctx context.Context, principal string, snap *dto.Snapshot) error
	Delete(ctx context.Context, principal string) error
}

type memoryEntry struct {
	snap      *dto.Snapshot
	expiresAt time.Time
}

// MemorySnapshotStore keeps snapshots in process memory.
type MemorySnapshotStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	metrics *MetricsService
	now     func() time.Time
}

// NewMemorySnapshotStore builds an in-memory store. A non-positive ttl keeps
// snapshots until the process exits.
func NewMemorySnapshotStore(ttl time.Duration, metrics *MetricsService) *MemorySnapshotStore {
	return &MemorySnapshotStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		metrics: metrics,
		now:     time.Now,
	}
}

// Load implements SnapshotStore.
func (s *MemorySnapshotStore) Load(_ context.Context, principal string) (*dto.Snapshot, bool, error) {
	start := time.Now()
	s.mu.RLock()
	entry, ok := s.entries[principal]
	s.mu.RUnlock()
	if ok && !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		if current, still := s.entries[principal]; still && current.expiresAt.Equal(entry.expiresAt) {
			delete(s.entries, principal)
		}
		s.mu.Unlock()
		ok = false
	}
	s.metrics.ObserveStoreOp("load", ok, time.Since(start))
	if !ok {
		return nil, false, nil
	}
	return entry.snap, true, nil
}

// Save implements SnapshotStore.
func (s *MemorySnapshotStore) Save(_ context.Context, principal string, snap *dto.Snapshot) error {
	start := time.Now()
	entry := memoryEntry{snap: snap}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.entries[principal] = entry
	s.mu.Unlock()
	s.metrics.ObserveStoreOp("save", false, time.Since(start))
	return nil
}

// Delete implements SnapshotStore.
func (s *MemorySnapshotStore) Delete(_ context.Context, principal string) error {
	s.mu.Lock()
	delete(s.entries, principal)
	s.mu.Unlock()
	return nil
}

// CacheSnapshotStore persists snapshots as JSON through the cache service,
// letting several gateway replicas share dashboard state.
type CacheSnapshotStore struct {
	cache *CacheService
	ttl   time.Duration
}

// NewCacheSnapshotStore builds a store backed by cache.
func NewCacheSnapshotStore(cache *CacheService, ttl time.Duration) *CacheSnapshotStore {
	return &CacheSnapshotStore{cache: cache, ttl: ttl}
}

// Load implements SnapshotStore.
func (s *CacheSnapshotStore) Load(ctx context.Context, principal string) (*dto.Snapshot, bool, error) {
	var snap dto.Snapshot
	hit, err := s.cache.Get(ctx, snapshotKey(principal), &snap)
	if err != nil || !hit {
		return nil, false, err
	}
	return &snap, true, nil
}

// Save implements SnapshotStore.
func (s *CacheSnapshotStore) Save(ctx context.Context, principal string, snap *dto.Snapshot) error {
	return s.cache.Set(ctx, snapshotKey(principal), snap, s.ttl)
}

// Delete implements SnapshotStore.
func (s *CacheSnapshotStore) Delete(ctx context.Context, principal string) error {
	return s.cache.Delete(ctx, snapshotKey(principal))
}

func snapshotKey(principal string) string {
	return snapshotKeyPrefix + principal
}
