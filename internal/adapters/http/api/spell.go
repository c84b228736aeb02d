package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/spelltimer/internal/domain/cooldown"
	"github.com/okian/spelltimer/pkg/logger"
)

// SpellDependencies defines the cooldown operations behind /spell.
type SpellDependencies interface {
	Register(ctx context.Context, report cooldown.Report) (cooldown.Registration, error)
	Await(ctx context.Context, key cooldown.Key) (cooldown.Expiry, error)
	Remaining(ctx context.Context, key cooldown.Key) (time.Duration, bool, error)
}

// spellRequest mirrors the OpenAPI schema for POST /spell.
type spellRequest struct {
	SummonerID int64  `json:"summoner_id"`
	Region     string `json:"region,omitempty"`
	Text       string `json:"text"`
}

func (s spellRequest) validate() error {
	switch {
	case s.SummonerID <= 0:
		return errors.New("missing summoner_id")
	case strings.TrimSpace(s.Text) == "":
		return errors.New("missing text")
	}
	return nil
}

type spellResponse struct {
	SummonerID   int64     `json:"summoner_id"`
	ChampionName string    `json:"champion_name"`
	SpellName    string    `json:"spell_name"`
	Message      string    `json:"message"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type awaitResponse struct {
	SummonerID int64  `json:"summoner_id"`
	Message    string `json:"message"`
	WaitedMs   int64  `json:"waited_ms"`
}

type remainingResponse struct {
	SummonerID   int64  `json:"summoner_id"`
	ChampionName string `json:"champion_name"`
	SpellName    string `json:"spell_name"`
	Active       bool   `json:"active"`
	RemainingMs  int64  `json:"remaining_ms"`
}

// SpellHandler handles spell cooldown requests.
type SpellHandler struct {
	deps   SpellDependencies
	logger logger.Logger
}

// NewSpellHandler creates a new spell handler.
func NewSpellHandler(deps SpellDependencies, l logger.Logger) *SpellHandler {
	if l == nil {
		l = logger.Nop()
	}
	return &SpellHandler{deps: deps, logger: l}
}

// HandlePostSpell handles POST /spell requests.
func (h *SpellHandler) HandlePostSpell(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_spell"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req spellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	reg, err := h.deps.Register(r.Context(), cooldown.Report{
		SummonerID: req.SummonerID,
		Region:     strings.TrimSpace(req.Region),
		Text:       req.Text,
	})
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, spellResponse{
		SummonerID:   reg.SummonerID,
		ChampionName: reg.Target,
		SpellName:    reg.Spell,
		Message:      reg.Message,
		ExpiresAt:    reg.Entry.ExpiresAt,
	})
}

// HandleAwait handles GET /spell/await requests. The response is held
// until the cooldown runs out or the wait ceiling passes.
func (h *SpellHandler) HandleAwait(w http.ResponseWriter, r *http.Request) {
	const op = "api.await_spell"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key, err := keyFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	exp, err := h.deps.Await(r.Context(), key)
	if err != nil {
		if errors.Is(err, cooldown.ErrWaitCanceled) && r.Context().Err() != nil {
			h.logger.Info(r.Context(), "client left before cooldown expired",
				logger.String("key", key.String()),
				logger.String("requestID", RequestIDFrom(r.Context())),
			)
			return
		}
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, awaitResponse{
		SummonerID: exp.SummonerID,
		Message:    exp.Message,
		WaitedMs:   millis(exp.Waited),
	})
}

// HandleRemaining handles GET /spell/remaining requests.
func (h *SpellHandler) HandleRemaining(w http.ResponseWriter, r *http.Request) {
	const op = "api.spell_remaining"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key, err := keyFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	d, active, err := h.deps.Remaining(r.Context(), key)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, remainingResponse{
		SummonerID:   key.SummonerID,
		ChampionName: key.Target,
		SpellName:    key.Spell,
		Active:       active,
		RemainingMs:  millis(d),
	})
}
