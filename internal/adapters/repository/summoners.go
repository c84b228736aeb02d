package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/okian/spelltimer/internal/domain/cooldown"
	"github.com/redis/go-redis/v9"
)

var (
	_ cooldown.SummonerRepository = (*MemorySummoners)(nil)
	_ cooldown.SummonerRepository = (*RedisSummoners)(nil)
)

func validateSummoner(s cooldown.Summoner) error {
	if s.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidSummoner)
	}
	if strings.TrimSpace(s.PUUID) == "" {
		return fmt.Errorf("%w: puuid is required", ErrInvalidSummoner)
	}
	if strings.TrimSpace(s.Region) == "" {
		return fmt.Errorf("%w: region is required", ErrInvalidSummoner)
	}
	return nil
}

func summonerNotFound(id int64) error {
	return fmt.Errorf("%w: %d", cooldown.ErrSummonerNotFound, id)
}

// MemorySummoners is a map-backed summoner directory.
type MemorySummoners struct {
	mu   sync.RWMutex
	byID map[int64]cooldown.Summoner
}

// NewMemorySummoners returns a directory preloaded with seed.
func NewMemorySummoners(seed ...cooldown.Summoner) (*MemorySummoners, error) {
	r := &MemorySummoners{byID: make(map[int64]cooldown.Summoner, len(seed))}
	for _, s := range seed {
		if err := r.Save(context.Background(), s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// GetByID returns the summoner with id.
func (r *MemorySummoners) GetByID(_ context.Context, id int64) (cooldown.Summoner, error) {
	r.mu.RLock()
	s, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return cooldown.Summoner{}, summonerNotFound(id)
	}
	return s, nil
}

// Save creates or replaces a summoner.
func (r *MemorySummoners) Save(_ context.Context, s cooldown.Summoner) error {
	if err := validateSummoner(s); err != nil {
		return err
	}
	r.mu.Lock()
	r.byID[s.ID] = s
	r.mu.Unlock()
	return nil
}

// Len returns the number of known summoners.
func (r *MemorySummoners) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// SummonerData is the JSON document stored per summoner in Redis.
type SummonerData struct {
	ID     int64  `json:"id"`
	PUUID  string `json:"puuid"`
	Region string `json:"region"`
}

// RedisSummoners keeps summoners as JSON documents under
// "<prefix>summoner:<id>".
type RedisSummoners struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisSummoners wraps client.
func NewRedisSummoners(client redis.UniversalClient, opts ...RedisOption) *RedisSummoners {
	o := redisOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return &RedisSummoners{client: client, prefix: o.prefix}
}

func (r *RedisSummoners) key(id int64) string {
	return r.prefix + "summoner:" + strconv.FormatInt(id, 10)
}

// GetByID loads the summoner with id.
func (r *RedisSummoners) GetByID(ctx context.Context, id int64) (cooldown.Summoner, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cooldown.Summoner{}, summonerNotFound(id)
		}
		return cooldown.Summoner{}, fmt.Errorf("failed to get summoner from Redis: %w", err)
	}

	var data SummonerData
	if err := json.Unmarshal(raw, &data); err != nil {
		return cooldown.Summoner{}, fmt.Errorf("failed to unmarshal summoner data: %w", err)
	}
	return cooldown.Summoner{ID: data.ID, PUUID: data.PUUID, Region: data.Region}, nil
}

// Save creates or replaces a summoner. Summoner records never expire.
func (r *RedisSummoners) Save(ctx context.Context, s cooldown.Summoner) error {
	if err := validateSummoner(s); err != nil {
		return err
	}
	raw, err := json.Marshal(SummonerData{ID: s.ID, PUUID: s.PUUID, Region: s.Region})
	if err != nil {
		return fmt.Errorf("failed to marshal summoner data: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.ID), string(raw), 0).Err(); err != nil {
		return fmt.Errorf("failed to save summoner in Redis: %w", err)
	}
	return nil
}
