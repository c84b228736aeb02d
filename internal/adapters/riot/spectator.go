// Package riot talks to the Riot Games APIs: the spectator endpoint for a
// player's live match and Data Dragon for champion names.
package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/spelltimer/internal/domain/cooldown"
	"github.com/okian/spelltimer/pkg/logger"
	"github.com/okian/spelltimer/pkg/metrics"
)

var _ cooldown.MatchProvider = (*Client)(nil)

const activeGamePath = "/lol/spectator/v5/active-games/by-summoner/"

// activeGame is the subset of the spectator v5 payload the registrar needs.
type activeGame struct {
	GameID       int64 `json:"gameId"`
	Participants []struct {
		PUUID      string `json:"puuid"`
		TeamID     int64  `json:"teamId"`
		ChampionID int64  `json:"championId"`
	} `json:"participants"`
}

// Client looks up live matches through the spectator API.
type Client struct {
	apiKey      string
	urlTemplate string
	http        *http.Client
	logger      logger.Logger
}

// NewClient builds a Client. urlTemplate receives the lower-cased region
// through a single %s, e.g. "https://%s.api.riotgames.com".
func NewClient(apiKey, urlTemplate string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		apiKey:      apiKey,
		urlTemplate: urlTemplate,
		http:        o.client(),
		logger:      o.logger,
	}, nil
}

// CurrentMatch returns the match puuid is playing in region. A player who
// is not in a game yields cooldown.ErrMatchNotFound.
func (c *Client) CurrentMatch(ctx context.Context, puuid, region string) (*cooldown.Match, error) {
	start := time.Now()
	m, err := c.currentMatch(ctx, puuid, region)
	switch {
	case err == nil:
		metrics.RecordMatchLookup("found", metrics.SinceMs(start))
	case isNotFound(err):
		metrics.RecordMatchLookup("not_found", metrics.SinceMs(start))
	default:
		metrics.RecordMatchLookup("error", metrics.SinceMs(start))
		c.logger.Warn(ctx, "match lookup failed",
			logger.String("region", region),
			logger.Error(err),
		)
	}
	return m, err
}

func (c *Client) currentMatch(ctx context.Context, puuid, region string) (*cooldown.Match, error) {
	region = strings.ToLower(strings.TrimSpace(region))
	if region == "" || strings.ContainsAny(region, "/.:") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRegion, region)
	}

	endpoint := fmt.Sprintf(c.urlTemplate, region) + activeGamePath + url.PathEscape(puuid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build spectator request: %w", err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call spectator api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, cooldown.ErrMatchNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: spectator status %d", ErrUnexpected, resp.StatusCode)
	}

	var game activeGame
	if err := json.NewDecoder(resp.Body).Decode(&game); err != nil {
		return nil, fmt.Errorf("%w: decode spectator payload: %w", ErrUnexpected, err)
	}
	if len(game.Participants) == 0 {
		return nil, cooldown.ErrMatchNotFound
	}

	match := &cooldown.Match{
		GameID:       game.GameID,
		Participants: make([]cooldown.Participant, 0, len(game.Participants)),
	}
	for _, p := range game.Participants {
		match.Participants = append(match.Participants, cooldown.Participant{
			PUUID:      p.PUUID,
			TeamID:     p.TeamID,
			ChampionID: p.ChampionID,
		})
	}
	return match, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, cooldown.ErrMatchNotFound)
}
