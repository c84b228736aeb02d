// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/spelltimer/internal/domain/cooldown"
	"github.com/okian/spelltimer/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SpellDependencies
	SummonerDependencies
	MatchDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	spellHandler    *SpellHandler
	summonerHandler *SummonerHandler
	matchHandler    *MatchHandler
	logger          logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger handlers use for failures that cannot be
// reported to the client.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.spellHandler = NewSpellHandler(deps, s.logger)
	s.summonerHandler = NewSummonerHandler(deps)
	s.matchHandler = NewMatchHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/spell/await", MetricsMiddleware(RequestID(s.spellHandler.HandleAwait), "spell_await"))
	mux.HandleFunc("/spell/remaining", MetricsMiddleware(RequestID(s.spellHandler.HandleRemaining), "spell_remaining"))
	mux.HandleFunc("/spell", MetricsMiddleware(RequestID(s.spellHandler.HandlePostSpell), "spell"))
	mux.HandleFunc("/summoners", MetricsMiddleware(RequestID(s.summonerHandler.HandlePostSummoner), "summoners"))
	mux.HandleFunc("/matches", MetricsMiddleware(RequestID(s.matchHandler.HandlePostMatch), "matches"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps an error to its HTTP status by kind.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, cooldown.ErrInvalid):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, cooldown.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// keyFromQuery reads summoner_id, champion_name and spell_name.
func keyFromQuery(r *http.Request) (cooldown.Key, error) {
	q := r.URL.Query()
	raw := strings.TrimSpace(q.Get("summoner_id"))
	if raw == "" {
		return cooldown.Key{}, errors.New("missing summoner_id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return cooldown.Key{}, errors.New("invalid summoner_id; must be a positive integer")
	}
	key := cooldown.Key{
		SummonerID: id,
		Target:     strings.TrimSpace(q.Get("champion_name")),
		Spell:      strings.TrimSpace(q.Get("spell_name")),
	}
	switch {
	case key.Target == "":
		return cooldown.Key{}, errors.New("missing champion_name")
	case key.Spell == "":
		return cooldown.Key{}, errors.New("missing spell_name")
	}
	return key, nil
}

func millis(d time.Duration) int64 {
	return d.Milliseconds()
}
