package api

import (
	"context"
	"net/http"

	"github.com/okian/lootpool/internal/domain/model"
)

// GambitsDependencies defines the interface for daily gambit queries.
type GambitsDependencies interface {
	Gambits(ctx context.Context) ([]model.Gambit, error)
}

// GambitsHandler handles daily gambit requests.
type GambitsHandler struct {
	deps GambitsDependencies
}

// NewGambitsHandler creates a new gambits handler.
func NewGambitsHandler(deps GambitsDependencies) *GambitsHandler {
	return &GambitsHandler{deps: deps}
}

type gambitsResponse struct {
	Gambits []model.Gambit `json:"gambits"`
}

// HandleGambits handles GET /gambits requests.
func (h *GambitsHandler) HandleGambits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	gambits, err := h.deps.Gambits(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "upstream_unavailable", err)
		return
	}

	writeJSON(w, http.StatusOK, gambitsResponse{Gambits: gambits})
}
