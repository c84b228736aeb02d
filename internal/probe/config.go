// Package probe drives a running spell timer over HTTP: it posts a batch of
// spell reports, optionally waits for the cooldowns to run out, and logs a
// summary. It is meant for smoke tests against a live deployment.
package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL    string        // Base URL of the service
	SummonerID int64         // Reporting summoner
	Region     string        // Optional region override sent with every report
	Texts      []string      // Report texts, posted round-robin
	Reports    int           // Number of reports to post
	Workers    int           // Concurrent requests
	Await      bool          // Wait for every registered cooldown to run out
	Timeout    time.Duration // Per-request timeout for POST /spell
	LogFile    string        // Log file for probe output
}

// SpellRequest is the body of POST /spell.
type SpellRequest struct {
	SummonerID int64  `json:"summoner_id"`
	Region     string `json:"region,omitempty"`
	Text       string `json:"text"`
}

// SpellResponse is the body returned by POST /spell.
type SpellResponse struct {
	SummonerID   int64     `json:"summoner_id"`
	ChampionName string    `json:"champion_name"`
	SpellName    string    `json:"spell_name"`
	Message      string    `json:"message"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AwaitResponse is the body returned by GET /spell/await.
type AwaitResponse struct {
	SummonerID int64  `json:"summoner_id"`
	Message    string `json:"message"`
	WaitedMs   int64  `json:"waited_ms"`
}

// Stats holds probe statistics.
type Stats struct {
	RunID            string
	ReportsSubmitted int
	ReportsAccepted  int
	ReportsRejected  int
	ReportsFailed    int
	AwaitsCompleted  int
	AwaitsFailed     int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
