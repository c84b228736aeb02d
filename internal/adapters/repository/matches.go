package repository

import (
	"context"
	"sync"

	"github.com/okian/spelltimer/internal/domain/cooldown"
)

var _ cooldown.MatchProvider = (*MemoryMatches)(nil)

// MemoryMatches serves live matches from memory. The service falls back to
// it when no Riot API key is configured.
type MemoryMatches struct {
	mu      sync.RWMutex
	byPUUID map[string]*cooldown.Match
}

// NewMemoryMatches returns an empty provider.
func NewMemoryMatches() *MemoryMatches {
	return &MemoryMatches{byPUUID: make(map[string]*cooldown.Match)}
}

// Put records m as the live match of every participant in it.
func (r *MemoryMatches) Put(m *cooldown.Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range m.Participants {
		r.byPUUID[p.PUUID] = m
	}
}

// End forgets the match puuid is playing, for every participant.
func (r *MemoryMatches) End(puuid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byPUUID[puuid]
	if !ok {
		return
	}
	for _, p := range m.Participants {
		if r.byPUUID[p.PUUID] == m {
			delete(r.byPUUID, p.PUUID)
		}
	}
}

// CurrentMatch returns the match puuid is in. Region is ignored.
func (r *MemoryMatches) CurrentMatch(_ context.Context, puuid, _ string) (*cooldown.Match, error) {
	r.mu.RLock()
	m, ok := r.byPUUID[puuid]
	r.mu.RUnlock()
	if !ok {
		return nil, cooldown.ErrMatchNotFound
	}
	return m, nil
}
