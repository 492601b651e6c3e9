package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/lootpool/internal/domain/model"
)

// SummaryDependencies defines the interface for the cross-pool summary.
type SummaryDependencies interface {
	TopRarityAcrossPools(ctx context.Context, poolTypes []string, rarity model.Rarity) ([]model.PooledAspect, error)
	Window() (lastReset, nextReset time.Time)
}

// SummaryHandler handles cross-pool rarity summary requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

type summaryResponse struct {
	Rarity    model.Rarity         `json:"rarity"`
	Aspects   []model.PooledAspect `json:"aspects"`
	LastReset time.Time            `json:"last_reset"`
	NextReset time.Time            `json:"next_reset"`
}

// HandleSummary handles GET /summary requests: the aspects of one rarity
// across all pools plus the current rollover window. The rarity query
// parameter narrows the tier; it defaults to Mythic.
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	rarity := model.Rarity(r.URL.Query().Get("rarity"))
	if rarity == "" {
		rarity = model.RarityMythic
	}

	aspects, err := h.deps.TopRarityAcrossPools(r.Context(), nil, rarity)
	if err != nil {
		writeError(w, http.StatusBadGateway, "upstream_unavailable", err)
		return
	}

	last, next := h.deps.Window()
	writeJSON(w, http.StatusOK, summaryResponse{
		Rarity:    rarity,
		Aspects:   aspects,
		LastReset: last,
		NextReset: next,
	})
}
