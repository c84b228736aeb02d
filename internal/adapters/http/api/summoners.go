package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/spelltimer/internal/domain/cooldown"
)

// SummonerDependencies defines the operations behind /summoners.
type SummonerDependencies interface {
	SaveSummoner(ctx context.Context, s cooldown.Summoner) error
}

type summonerRequest struct {
	SummonerID int64  `json:"summoner_id"`
	PUUID      string `json:"puuid"`
	Region     string `json:"region"`
}

func (s summonerRequest) validate() error {
	switch {
	case s.SummonerID <= 0:
		return errors.New("missing summoner_id")
	case strings.TrimSpace(s.PUUID) == "":
		return errors.New("missing puuid")
	case strings.TrimSpace(s.Region) == "":
		return errors.New("missing region")
	}
	return nil
}

// SummonerHandler handles summoner registration.
type SummonerHandler struct {
	deps SummonerDependencies
}

// NewSummonerHandler creates a new summoner handler.
func NewSummonerHandler(deps SummonerDependencies) *SummonerHandler {
	return &SummonerHandler{deps: deps}
}

// HandlePostSummoner handles POST /summoners requests.
func (h *SummonerHandler) HandlePostSummoner(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_summoner"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req summonerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	s := cooldown.Summoner{
		ID:     req.SummonerID,
		PUUID:  strings.TrimSpace(req.PUUID),
		Region: strings.ToLower(strings.TrimSpace(req.Region)),
	}
	if err := h.deps.SaveSummoner(r.Context(), s); err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, summonerRequest{SummonerID: s.ID, PUUID: s.PUUID, Region: s.Region})
}
