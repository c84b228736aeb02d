package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/spelltimer/internal/domain/cooldown"
)

// MatchDependencies defines the operations behind /matches.
type MatchDependencies interface {
	RecordMatch(ctx context.Context, m cooldown.Match) error
}

type matchRequest struct {
	GameID       int64 `json:"game_id"`
	Participants []struct {
		PUUID      string `json:"puuid"`
		TeamID     int64  `json:"team_id"`
		ChampionID int64  `json:"champion_id"`
	} `json:"participants"`
}

type matchResponse struct {
	GameID       int64 `json:"game_id"`
	Participants int   `json:"participants"`
}

// MatchHandler accepts live matches when no match provider is configured.
type MatchHandler struct {
	deps MatchDependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps MatchDependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

// HandlePostMatch handles POST /matches requests.
func (h *MatchHandler) HandlePostMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Participants) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing participants")))
		return
	}

	m := cooldown.Match{GameID: req.GameID, Participants: make([]cooldown.Participant, 0, len(req.Participants))}
	for _, p := range req.Participants {
		m.Participants = append(m.Participants, cooldown.Participant{PUUID: p.PUUID, TeamID: p.TeamID, ChampionID: p.ChampionID})
	}
	if err := h.deps.RecordMatch(r.Context(), m); err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, matchResponse{GameID: m.GameID, Participants: len(m.Participants)})
}
