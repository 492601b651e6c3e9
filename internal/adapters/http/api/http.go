// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/lootpool/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Pool operations serve cached reward pool snapshots.
	Pool(ctx context.Context, poolType string) (model.PoolSnapshot, error)
	FetchMany(ctx context.Context, poolTypes []string) map[string]model.PoolSnapshot
	TopRarityAcrossPools(ctx context.Context, poolTypes []string, rarity model.Rarity) ([]model.PooledAspect, error)
	PoolTypes() []string

	// Gambits returns the current daily gambits.
	Gambits(ctx context.Context) ([]model.Gambit, error)

	// PlayerScore reports the completion score for a tracked player.
	PlayerScore(ctx context.Context, poolType, player string) (float64, bool, error)

	// Window returns the previous and next weekly rollover.
	Window() (lastReset, nextReset time.Time)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	poolsHandler   *PoolsHandler
	summaryHandler *SummaryHandler
	scoreHandler   *ScoreHandler
	windowHandler  *WindowHandler
	gambitsHandler *GambitsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		poolsHandler:   NewPoolsHandler(deps),
		summaryHandler: NewSummaryHandler(deps),
		scoreHandler:   NewScoreHandler(deps),
		windowHandler:  NewWindowHandler(deps),
		gambitsHandler: NewGambitsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/pools/", MetricsMiddleware(s.poolsHandler.HandleGetPool, "pool"))
	mux.HandleFunc("/pools", MetricsMiddleware(s.poolsHandler.HandleListPools, "pools"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.summaryHandler.HandleSummary, "summary"))
	mux.HandleFunc("/score/", MetricsMiddleware(s.scoreHandler.HandleGetScore, "score"))
	mux.HandleFunc("/window", MetricsMiddleware(s.windowHandler.HandleWindow, "window"))
	mux.HandleFunc("/gambits", MetricsMiddleware(s.gambitsHandler.HandleGambits, "gambits"))
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
