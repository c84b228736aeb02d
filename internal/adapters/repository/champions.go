package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/spelltimer/internal/domain/cooldown"
	"github.com/okian/spelltimer/pkg/metrics"
)

var _ cooldown.ChampionResolver = (*Champions)(nil)

// Champions maps numeric champion ids to display names.
type Champions struct {
	mu     sync.RWMutex
	byID   map[int64]string
	source string
}

// NewChampions returns an empty directory.
func NewChampions() *Champions {
	return &Champions{byID: make(map[int64]string)}
}

// Load merges names into the directory and records where they came from.
// Later loads override earlier ones for the same id.
func (c *Champions) Load(source string, names map[int64]string) {
	c.mu.Lock()
	for id, name := range names {
		if name == "" {
			continue
		}
		c.byID[id] = name
	}
	c.source = source
	n := len(c.byID)
	c.mu.Unlock()

	metrics.UpdateChampionsLoaded(n)
}

// DisplayName returns the name players use for championID.
func (c *Champions) DisplayName(_ context.Context, championID int64) (string, error) {
	c.mu.RLock()
	name, ok := c.byID[championID]
	c.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrChampionNotFound, championID)
	}
	return name, nil
}

// Len returns the number of known champions.
func (c *Champions) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// Source names the last loader that populated the directory.
func (c *Champions) Source() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}
