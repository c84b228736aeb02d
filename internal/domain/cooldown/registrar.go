// Package cooldown turns free-form spell reports into TTL-backed cooldown
// entries and lets callers block until an entry runs out.
package cooldown

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/spelltimer/internal/domain/matcher"
	"github.com/okian/spelltimer/internal/domain/spell"
	"github.com/okian/spelltimer/pkg/logger"
	"github.com/okian/spelltimer/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Report is a spell report as submitted by a player.
type Report struct {
	SummonerID int64
	// Region overrides the summoner's stored region when set.
	Region string
	Text   string
}

// Registration is the result of a successful report.
type Registration struct {
	SummonerID int64
	Target     string
	Spell      string
	Message    string
	Entry      Entry
}

// Registrar extracts the enemy champion and spell from a report and starts
// the matching cooldown.
type Registrar struct {
	summoners SummonerRepository
	matches   MatchProvider
	champions ChampionResolver
	store     Store
	catalog   *spell.Catalog
	logger    logger.Logger
	now       func() time.Time
}

// RegistrarOption configures a Registrar.
type RegistrarOption func(*Registrar)

// WithRegistrarLogger sets the registrar logger.
func WithRegistrarLogger(l logger.Logger) RegistrarOption {
	return func(r *Registrar) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCatalog replaces the default Korean spell catalog.
func WithCatalog(c *spell.Catalog) RegistrarOption {
	return func(r *Registrar) {
		if c != nil {
			r.catalog = c
		}
	}
}

// WithClock overrides time.Now, used to stamp entry expiry.
func WithClock(now func() time.Time) RegistrarOption {
	return func(r *Registrar) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistrar builds a Registrar.
func NewRegistrar(summoners SummonerRepository, matches MatchProvider, champions ChampionResolver, store Store, opts ...RegistrarOption) *Registrar {
	r := &Registrar{
		summoners: summoners,
		matches:   matches,
		champions: champions,
		store:     store,
		catalog:   spell.Korean,
		logger:    logger.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the spell catalog in use.
func (r *Registrar) Catalog() *spell.Catalog { return r.catalog }

// Register resolves the reporter's live match, finds the first enemy
// champion and the first catalog spell contained in the report text, and
// writes a cooldown entry whose TTL is that spell's cooldown. A repeated
// report for the same key restarts the cooldown.
func (r *Registrar) Register(ctx context.Context, report Report) (Registration, error) {
	reg, err := r.register(ctx, report)
	switch {
	case err == nil:
		metrics.RecordRegistration("registered")
	case errors.Is(err, ErrNotFound):
		metrics.RecordRegistration("not_found")
	case errors.Is(err, ErrInvalid):
		metrics.RecordRegistration("invalid")
	default:
		metrics.RecordRegistration("error")
	}
	return reg, err
}

func (r *Registrar) register(ctx context.Context, report Report) (Registration, error) {
	if report.SummonerID <= 0 || strings.TrimSpace(report.Text) == "" {
		return Registration{}, invalid(errors.New("summoner id and text are required"))
	}

	summoner, err := r.summoners.GetByID(ctx, report.SummonerID)
	if err != nil {
		if errors.Is(err, ErrSummonerNotFound) {
			return Registration{}, notFound(err)
		}
		return Registration{}, err
	}

	region := report.Region
	if region == "" {
		region = summoner.Region
	}

	match, err := r.matches.CurrentMatch(ctx, summoner.PUUID, region)
	if err != nil {
		if !errors.Is(err, ErrMatchNotFound) {
			err = fmt.Errorf("%w: %w", ErrMatchNotFound, err)
		}
		return Registration{}, notFound(err)
	}
	if match == nil || len(match.Participants) == 0 {
		return Registration{}, notFound(ErrMatchNotFound)
	}

	enemies, err := r.enemyNames(ctx, summoner.PUUID, match.Participants)
	if err != nil {
		return Registration{}, err
	}

	target, ok := matcher.Find(report.Text, enemies)
	if !ok {
		return Registration{}, notFound(ErrTargetNotMentioned)
	}
	spellName, ok := matcher.Find(report.Text, r.catalog.Names())
	if !ok {
		return Registration{}, notFound(ErrSpellNotMentioned)
	}
	ttl, _ := r.catalog.Cooldown(spellName)

	key := Key{SummonerID: summoner.ID, Target: target, Spell: spellName}
	if err := r.store.Set(ctx, key.String(), key.Value(), ttl); err != nil {
		return Registration{}, internal(fmt.Errorf("%w: %w", ErrStoreUnavailable, err))
	}

	r.logger.Info(ctx, "cooldown registered",
		logger.Int64("summonerID", summoner.ID),
		logger.String("target", target),
		logger.String("spell", spellName),
		logger.Duration("ttl", ttl),
	)

	return Registration{
		SummonerID: summoner.ID,
		Target:     target,
		Spell:      spellName,
		Message:    r.catalog.RegisteredMessage(target, spellName),
		Entry: Entry{
			Key:       key,
			Value:     key.Value(),
			TTL:       ttl,
			ExpiresAt: r.now().Add(ttl),
		},
	}, nil
}

// enemyNames returns the display names of every participant not on the
// requester's team, in participant order.
func (r *Registrar) enemyNames(ctx context.Context, puuid string, participants []Participant) ([]string, error) {
	var team int64
	for _, p := range participants {
		if p.PUUID == puuid && p.TeamID != 0 {
			team = p.TeamID
			break
		}
	}
	if team == 0 {
		return nil, notFound(ErrTeamNotFound)
	}

	var enemies []Participant
	for _, p := range participants {
		if p.TeamID != team {
			enemies = append(enemies, p)
		}
	}

	names := make([]string, len(enemies))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range enemies {
		i, p := i, p
		g.Go(func() error {
			name, err := r.champions.DisplayName(gctx, p.ChampionID)
			if err != nil {
				return err
			}
			names[i] = name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}
