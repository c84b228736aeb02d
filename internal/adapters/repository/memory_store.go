// Package repository implements the cooldown store and the summoner and
// champion lookups used by the registrar.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/spelltimer/internal/domain/cooldown"
	"github.com/okian/spelltimer/pkg/logger"
	"github.com/okian/spelltimer/pkg/metrics"
)

// Backend names used in metrics and configuration.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

var (
	_ cooldown.Store     = (*MemoryStore)(nil)
	_ cooldown.TTLReader = (*MemoryStore)(nil)
)

// entry is a stored value and the moment it stops existing.
type entry struct {
	value    string
	expireAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !now.Before(e.expireAt)
}

// MemoryStore is an in-process TTL map. Expiry is checked lazily on read;
// a background sweep only reclaims memory.
type MemoryStore struct {
	mu            sync.RWMutex
	entries       map[string]entry
	now           func() time.Time
	sweepInterval time.Duration
	logger        logger.Logger

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewMemoryStore constructs a MemoryStore and starts its sweep loop, which
// stops when ctx ends or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		entries:       make(map[string]entry),
		now:           time.Now,
		sweepInterval: 30 * time.Second,
		logger:        logger.Nop(),
		stopChan:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.startSweeper(ctx)
	return s
}

func (s *MemoryStore) startSweeper(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					s.logger.Debug(ctx, "swept expired cooldowns", logger.Int("count", n))
				}
			}
		}
	}()
}

// Set stores value under key for ttl, replacing any previous value and TTL.
func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	start := time.Now()
	select {
	case <-s.stopChan:
		metrics.RecordStoreError(BackendMemory, "set")
		return ErrClosed
	default:
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, expireAt: s.now().Add(ttl)}
	n := len(s.entries)
	s.mu.Unlock()

	metrics.UpdateStoreEntries(n)
	metrics.RecordStoreOperation(BackendMemory, "set", metrics.SinceMs(start))
	return nil
}

// Exists reports whether key holds an unexpired value.
func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	start := time.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	exists := ok && !e.expired(s.now())
	metrics.RecordStoreOperation(BackendMemory, "exists", metrics.SinceMs(start))
	return exists, nil
}

// Value returns the unexpired value stored under key.
func (s *MemoryStore) Value(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || e.expired(s.now()) {
		return "", false
	}
	return e.value, true
}

// Remaining returns the remaining lifetime of key, or false if it is gone.
func (s *MemoryStore) Remaining(_ context.Context, key string) (time.Duration, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	now := s.now()
	if !ok || e.expired(now) {
		return 0, false, nil
	}
	return e.expireAt.Sub(now), true, nil
}

// Sweep removes expired entries and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	removed := 0
	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
			removed++
		}
	}
	n := len(s.entries)
	s.mu.Unlock()

	metrics.UpdateStoreEntries(n)
	if removed > 0 {
		metrics.RecordStoreSwept(removed)
	}
	return removed
}

// Len returns the number of stored entries, including expired ones the
// sweep has not reclaimed yet.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the sweep loop.
func (s *MemoryStore) Close() error {
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}
