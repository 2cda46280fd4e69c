package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/bossgen/internal/config"
	"github.com/cory-johannsen/bossgen/internal/game/boss"
	"github.com/cory-johannsen/bossgen/internal/game/dice"
)

// Version is reported by the status endpoint.
const Version = "v0.1.0"

// Handlers serves boss generation requests. Every request gets its own
// seeded random source, so handlers share no mutable state.
type Handlers struct {
	logger *zap.Logger
	cfg    config.GeneratorConfig
	limits config.APIConfig
}

// NewHandlers creates Handlers. Requests whose level, players or size
// exceed the limits in api are rejected before any generation work.
//
// Precondition: logger must be non-nil; api must pass validation.
func NewHandlers(cfg config.GeneratorConfig, api config.APIConfig, logger *zap.Logger) *Handlers {
	return &Handlers{logger: logger, cfg: cfg, limits: api}
}

// EncounterResponse is the body of a successful /boss request.
type EncounterResponse struct {
	Seed      int64          `json:"seed"`
	Encounter boss.Encounter `json:"encounter"`
}

// GroupResponse is the body of a successful /boss-group request.
type GroupResponse struct {
	Seed  int64      `json:"seed"`
	Group boss.Group `json:"group"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error             string `json:"error"`
	MinimumDifficulty string `json:"minimum_difficulty,omitempty"`
	Viable            *bool  `json:"viable,omitempty"`
}

// Status reports liveness, the API version and the known difficulty tiers.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"version":      Version,
		"difficulties": boss.Tiers(),
	})
}

// Boss generates a single boss encounter from the level, players, difficulty
// and seed query parameters.
func (h *Handlers) Boss(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := h.parseRequest(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f, seed, err := h.factory(q.Get("seed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	enc, err := f.CreateBoss(req)
	if err != nil {
		writeGenerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EncounterResponse{Seed: seed, Encounter: enc})
}

// BossGroup generates a multi-boss encounter; it takes the Boss parameters
// plus size.
func (h *Handlers) BossGroup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := h.parseRequest(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	size, err := requiredInt(q.Get("size"), "size")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if size > h.limits.MaxGroupSize {
		writeError(w, http.StatusBadRequest, errTooLarge("size", h.limits.MaxGroupSize))
		return
	}
	f, seed, err := h.factory(q.Get("seed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	g, err := f.CreateGroup(boss.GroupRequest{Request: req, Size: size})
	if err != nil {
		writeGenerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GroupResponse{Seed: seed, Group: g})
}

// factory builds a per-request Factory. The seed comes from the query, then
// the configured seed, then crypto/rand.
func (h *Handlers) factory(rawSeed string) (*boss.Factory, int64, error) {
	seed := h.cfg.Seed
	if rawSeed != "" {
		v, err := strconv.ParseInt(rawSeed, 10, 64)
		if err != nil {
			return nil, 0, badReq("invalid parameter: seed")
		}
		seed = v
	}
	if seed == 0 {
		var err error
		if seed, err = dice.NewSeed(); err != nil {
			return nil, 0, err
		}
	}
	f := boss.NewFactory(dice.NewSeededSource(seed), h.logger.With(zap.Int64("seed", seed)),
		boss.WithInputValidation(h.cfg.ValidateInputs))
	return f, seed, nil
}

// parseRequest reads the shared boss parameters. The generator itself does
// not bound them, so oversized values are refused here.
func (h *Handlers) parseRequest(q url.Values) (boss.Request, error) {
	level, err := requiredInt(q.Get("level"), "level")
	if err != nil {
		return boss.Request{}, err
	}
	if level > h.limits.MaxLevel || level < -h.limits.MaxLevel {
		return boss.Request{}, badReq(fmt.Sprintf("parameter level must be between -%d and %d", h.limits.MaxLevel, h.limits.MaxLevel))
	}
	players, err := requiredInt(q.Get("players"), "players")
	if err != nil {
		return boss.Request{}, err
	}
	if players > h.limits.MaxPlayers {
		return boss.Request{}, errTooLarge("players", h.limits.MaxPlayers)
	}
	return boss.Request{
		PartyLevel: level,
		Players:    players,
		Difficulty: boss.Difficulty(q.Get("difficulty")),
	}, nil
}

func requiredInt(s, name string) (int, error) {
	if s == "" {
		return 0, errMissing(name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, badReq("invalid parameter: " + name)
	}
	return v, nil
}

func writeGenerationError(w http.ResponseWriter, err error) {
	var ide *boss.InvalidDifficultyError
	switch {
	case errors.As(err, &ide):
		viable := ide.Viable
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:             err.Error(),
			MinimumDifficulty: ide.Minimum.String(),
			Viable:            &viable,
		})
	case errors.Is(err, boss.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

type badReq string

func (e badReq) Error() string { return string(e) }

func errMissing(p string) error { return badReq("missing parameter: " + p) }

func errTooLarge(p string, max int) error {
	return badReq(fmt.Sprintf("parameter %s must be at most %d", p, max))
}
