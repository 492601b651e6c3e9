package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/lootpool/internal/app"
)

// ScoreDependencies defines the interface for player score operations.
type ScoreDependencies interface {
	PlayerScore(ctx context.Context, poolType, player string) (float64, bool, error)
	PoolTypes() []string
}

// ScoreHandler handles player score requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

type poolScore struct {
	PoolType string  `json:"pool_type"`
	Score    float64 `json:"score"`
}

type scoreResponse struct {
	Player string      `json:"player"`
	Scores []poolScore `json:"scores"`
}

// HandleGetScore handles GET /score/{player} requests. An optional ?pool=
// query restricts the response to one pool; otherwise every reachable pool
// is scored. A score of exactly 0.0 means the pool is fully collected.
func (h *ScoreHandler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	player := strings.TrimPrefix(r.URL.Path, "/score/")
	if player == "" || strings.Contains(player, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	targets := h.deps.PoolTypes()
	if pool := r.URL.Query().Get("pool"); pool != "" {
		targets = []string{pool}
	}

	scores := make([]poolScore, 0, len(targets))
	var lastErr error
	for _, poolType := range targets {
		score, found, err := h.deps.PlayerScore(r.Context(), poolType, player)
		if err != nil {
			if errors.Is(err, service.ErrUnknownPoolType) {
				writeError(w, http.StatusBadRequest, "unknown_pool", err)
				return
			}
			lastErr = err
			continue
		}
		if !found {
			writeError(w, http.StatusNotFound, "player_not_tracked", ErrPlayerNotTracked)
			return
		}
		scores = append(scores, poolScore{PoolType: poolType, Score: score})
	}

	if len(scores) == 0 {
		writeError(w, http.StatusBadGateway, "upstream_unavailable", lastErr)
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{Player: player, Scores: scores})
}
