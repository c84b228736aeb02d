// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/spelltimer/internal/adapters/repository"
	"github.com/okian/spelltimer/internal/adapters/riot"
	"github.com/okian/spelltimer/internal/domain/cooldown"
	"github.com/okian/spelltimer/internal/domain/spell"
	"github.com/okian/spelltimer/pkg/logger"
	"github.com/okian/spelltimer/pkg/metrics"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// summonerDirectory is what both summoner repositories offer.
type summonerDirectory interface {
	cooldown.SummonerRepository
	Save(ctx context.Context, s cooldown.Summoner) error
}

// Service implements the API dependencies for the spell cooldown tracker.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     cooldown.Store
	memStore  *repository.MemoryStore
	summoners summonerDirectory
	champions *repository.Champions
	matches   cooldown.MatchProvider
	offline   *repository.MemoryMatches
	registrar *cooldown.Registrar
	waiter    *cooldown.Waiter

	// Configuration
	locale        string
	backend       string
	redisClient   redis.UniversalClient
	ownsRedis     bool
	redisAddr     string
	redisPassword string
	redisDB       int
	redisPrefix   string
	sweepInterval time.Duration
	pollInterval  time.Duration
	ceiling       time.Duration
	riotKey       string
	riotURL       string
	riotTimeout   time.Duration
	ddragonURL    string
	ddragonVer    string
	ddragonLocale string
	championNames map[int64]string
	seed          []cooldown.Summoner
	matchOverride cooldown.MatchProvider

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSpellLocale selects the spell catalog ("ko" or "en").
func WithSpellLocale(locale string) Option {
	return func(s *Service) {
		s.locale = locale
	}
}

// WithMemoryStore keeps cooldowns in process, sweeping expired entries
// every interval.
func WithMemoryStore(sweepInterval time.Duration) Option {
	return func(s *Service) {
		s.backend = repository.BackendMemory
		if sweepInterval > 0 {
			s.sweepInterval = sweepInterval
		}
	}
}

// WithRedisStore keeps cooldowns and summoners in Redis.
func WithRedisStore(addr, password string, db int, keyPrefix string) Option {
	return func(s *Service) {
		s.backend = repository.BackendRedis
		s.redisAddr = addr
		s.redisPassword = password
		s.redisDB = db
		s.redisPrefix = keyPrefix
	}
}

// WithRedisClient uses an existing client for the Redis backend. The
// service does not close it.
func WithRedisClient(client redis.UniversalClient, keyPrefix string) Option {
	return func(s *Service) {
		if client != nil {
			s.backend = repository.BackendRedis
			s.redisClient = client
			s.redisPrefix = keyPrefix
		}
	}
}

// WithWaitLimits sets the poll interval and ceiling of a single await.
func WithWaitLimits(pollInterval, ceiling time.Duration) Option {
	return func(s *Service) {
		if pollInterval > 0 {
			s.pollInterval = pollInterval
		}
		if ceiling > 0 {
			s.ceiling = ceiling
		}
	}
}

// WithRiotAPI enables live match lookups through the spectator API.
func WithRiotAPI(apiKey, urlTemplate string, timeout time.Duration) Option {
	return func(s *Service) {
		s.riotKey = apiKey
		s.riotURL = urlTemplate
		s.riotTimeout = timeout
	}
}

// WithDataDragon loads champion names from Data Dragon at start. An empty
// baseURL disables it.
func WithDataDragon(baseURL, version, locale string) Option {
	return func(s *Service) {
		s.ddragonURL = baseURL
		s.ddragonVer = version
		s.ddragonLocale = locale
	}
}

// WithChampionNames sets the static champion names used before, or instead
// of, Data Dragon.
func WithChampionNames(names map[int64]string) Option {
	return func(s *Service) {
		s.championNames = names
	}
}

// WithSummoners seeds the summoner directory at start.
func WithSummoners(seed ...cooldown.Summoner) Option {
	return func(s *Service) {
		s.seed = append(s.seed, seed...)
	}
}

// WithMatchProvider replaces the match source.
func WithMatchProvider(p cooldown.MatchProvider) Option {
	return func(s *Service) {
		s.matchOverride = p
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		locale:        spell.LocaleKorean,
		backend:       repository.BackendMemory,
		sweepInterval: 30 * time.Second,
		pollInterval:  cooldown.DefaultPollInterval,
		ceiling:       cooldown.DefaultCeiling,
		riotTimeout:   5 * time.Second,
		logger:        nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WaitCeiling returns the longest a single await may block.
func (s *Service) WaitCeiling() time.Duration {
	return s.ceiling
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting spell timer service...")

	catalog, err := spell.ForLocale(s.locale)
	if err != nil {
		return err
	}

	if err := s.startStorage(ctx); err != nil {
		return err
	}

	s.champions = repository.NewChampions()
	if len(s.championNames) > 0 {
		s.champions.Load("config", s.championNames)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.loadDataDragon(gctx)
		return nil
	})
	g.Go(func() error {
		for _, sm := range s.seed {
			if err := s.summoners.Save(gctx, sm); err != nil {
				return fmt.Errorf("failed to seed summoner %d: %w", sm.ID, err)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.stopStorage()
		return err
	}

	if err := s.startMatches(); err != nil {
		s.stopStorage()
		return err
	}

	s.registrar = cooldown.NewRegistrar(s.summoners, s.matches, s.champions, s.store,
		cooldown.WithCatalog(catalog),
		cooldown.WithRegistrarLogger(s.logger.Named("registrar")),
	)
	s.waiter = cooldown.NewWaiter(s.store,
		cooldown.WithPollInterval(s.pollInterval),
		cooldown.WithCeiling(s.ceiling),
		cooldown.WithWaiterCatalog(catalog),
		cooldown.WithWaiterLogger(s.logger.Named("waiter")),
	)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "spell timer service started",
		logger.String("backend", s.backend),
		logger.String("locale", catalog.Locale()),
		logger.Int("champions", s.champions.Len()),
		logger.Duration("pollInterval", s.pollInterval),
		logger.Duration("ceiling", s.ceiling),
	)

	return nil
}

func (s *Service) startStorage(ctx context.Context) error {
	switch s.backend {
	case repository.BackendRedis:
		if s.redisClient == nil {
			s.redisClient = redis.NewClient(&redis.Options{
				Addr:     s.redisAddr,
				Password: s.redisPassword,
				DB:       s.redisDB,
			})
			s.ownsRedis = true
		}
		rs := repository.NewRedisStore(s.redisClient, repository.WithKeyPrefix(s.redisPrefix))
		if err := rs.Ping(ctx); err != nil {
			s.stopStorage()
			return err
		}
		s.store = rs
		s.summoners = repository.NewRedisSummoners(s.redisClient, repository.WithKeyPrefix(s.redisPrefix))
		s.logger.Info(ctx, "using redis store", logger.String("prefix", s.redisPrefix))
	default:
		s.memStore = repository.NewMemoryStore(ctx,
			repository.WithSweepInterval(s.sweepInterval),
			repository.WithLogger(s.logger.Named("store")),
		)
		s.store = s.memStore
		summoners, _ := repository.NewMemorySummoners()
		s.summoners = summoners
		s.logger.Info(ctx, "using memory store")
	}
	return nil
}

func (s *Service) stopStorage() {
	if s.memStore != nil {
		_ = s.memStore.Close()
		s.memStore = nil
	}
	if s.ownsRedis && s.redisClient != nil {
		_ = s.redisClient.Close()
		s.redisClient = nil
		s.ownsRedis = false
	}
	s.store = nil
}

func (s *Service) loadDataDragon(ctx context.Context) {
	if s.ddragonURL == "" {
		return
	}
	loader := riot.NewChampionLoader(s.ddragonURL, s.ddragonVer, s.ddragonLocale,
		riot.WithLogger(s.logger.Named("ddragon")),
	)
	names, err := loader.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "champion data unavailable; using configured names",
			logger.String("url", loader.URL()),
			logger.Error(err),
		)
		return
	}
	s.champions.Load("ddragon", names)
}

func (s *Service) startMatches() error {
	switch {
	case s.matchOverride != nil:
		s.matches = s.matchOverride
	case s.riotKey != "":
		c, err := riot.NewClient(s.riotKey, s.riotURL,
			riot.WithTimeout(s.riotTimeout),
			riot.WithLogger(s.logger.Named("riot")),
		)
		if err != nil {
			return err
		}
		s.matches = c
	default:
		s.offline = repository.NewMemoryMatches()
		s.matches = s.offline
		s.logger.Warn(context.Background(), "no riot api key; live matches must be posted manually")
	}
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping spell timer service...")
	s.stopStorage()
	s.registrar = nil
	s.waiter = nil
	s.offline = nil
	s.started = false
	s.logger.Info(context.Background(), "spell timer service stopped")
}

func (s *Service) components() (*cooldown.Registrar, *cooldown.Waiter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.registrar, s.waiter, nil
}

// Register records the cooldown a spell report describes.
func (s *Service) Register(ctx context.Context, report cooldown.Report) (cooldown.Registration, error) {
	r, _, err := s.components()
	if err != nil {
		return cooldown.Registration{}, err
	}
	return r.Register(ctx, report)
}

// Await blocks until the cooldown at key has run out.
func (s *Service) Await(ctx context.Context, key cooldown.Key) (cooldown.Expiry, error) {
	_, w, err := s.components()
	if err != nil {
		return cooldown.Expiry{}, err
	}
	return w.Await(ctx, key)
}

// Remaining reports how long the cooldown at key has left without waiting.
func (s *Service) Remaining(ctx context.Context, key cooldown.Key) (time.Duration, bool, error) {
	if err := key.Validate(); err != nil {
		return 0, false, err
	}
	s.mu.RLock()
	store, started := s.store, s.started
	s.mu.RUnlock()
	if !started {
		return 0, false, ErrNotStarted
	}

	reader, ok := store.(cooldown.TTLReader)
	if !ok {
		exists, err := store.Exists(ctx, key.String())
		return 0, exists, err
	}
	return reader.Remaining(ctx, key.String())
}

// SaveSummoner creates or replaces a summoner binding.
func (s *Service) SaveSummoner(ctx context.Context, sm cooldown.Summoner) error {
	s.mu.RLock()
	dir, started := s.summoners, s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}
	return dir.Save(ctx, sm)
}

// RecordMatch publishes a live match when no Riot API key is configured.
func (s *Service) RecordMatch(_ context.Context, m cooldown.Match) error {
	s.mu.RLock()
	offline, started := s.offline, s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}
	if offline == nil {
		return fmt.Errorf("%w: %w", cooldown.ErrInvalid, ErrMatchFeedDisabled)
	}
	if len(m.Participants) == 0 {
		return fmt.Errorf("%w: %w: no participants", cooldown.ErrInvalid, ErrInvalidMatch)
	}
	for _, p := range m.Participants {
		if p.PUUID == "" || p.TeamID == 0 {
			return fmt.Errorf("%w: %w: participants need a puuid and team", cooldown.ErrInvalid, ErrInvalidMatch)
		}
	}
	// A new match ends whatever its participants were playing before.
	for _, p := range m.Participants {
		offline.End(p.PUUID)
	}
	offline.Put(&m)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"backend":        s.backend,
		"locale":         s.locale,
		"pollIntervalMs": s.pollInterval.Milliseconds(),
		"waitCeilingMs":  s.ceiling.Milliseconds(),
		"liveMatches":    s.riotKey != "" || s.matchOverride != nil,
	}

	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		stats["champions"] = s.champions.Len()
		stats["championSource"] = s.champions.Source()
		stats["spells"] = s.registrar.Catalog().Names()
		if s.memStore != nil {
			n := s.memStore.Len()
			stats["storedCooldowns"] = n
			metrics.UpdateStoreEntries(n)
		}
		if dir, ok := s.summoners.(*repository.MemorySummoners); ok {
			stats["summoners"] = dir.Len()
		}
	}

	return stats
}
