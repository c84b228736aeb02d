package cooldown

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mock_contracts.go -package=mocks github.com/okian/spelltimer/internal/domain/cooldown Store,SummonerRepository,MatchProvider,ChampionResolver

// Store is a TTL key-value store. Entries disappear on their own once the
// TTL elapses; Set on an existing key replaces both value and TTL.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TTLReader is implemented by stores that can report how long an entry
// has left.
type TTLReader interface {
	Remaining(ctx context.Context, key string) (time.Duration, bool, error)
}

// Summoner is a registered requester.
type Summoner struct {
	ID     int64
	PUUID  string
	Region string
}

// SummonerRepository resolves requester ids. Unknown ids return an error
// wrapping ErrSummonerNotFound.
type SummonerRepository interface {
	GetByID(ctx context.Context, id int64) (Summoner, error)
}

// Participant is one player of a live match.
type Participant struct {
	PUUID      string
	TeamID     int64
	ChampionID int64
}

// Match is the live match a summoner is playing.
type Match struct {
	GameID       int64
	Participants []Participant
}

// MatchProvider looks up the live match of a player. A player that is not
// in a game yields an error wrapping ErrMatchNotFound.
type MatchProvider interface {
	CurrentMatch(ctx context.Context, puuid, region string) (*Match, error)
}

// ChampionResolver maps champion ids to the display names players use.
type ChampionResolver interface {
	DisplayName(ctx context.Context, championID int64) (string, error)
}
