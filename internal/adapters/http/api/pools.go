// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	service "github.com/okian/lootpool/internal/app"
	"github.com/okian/lootpool/internal/domain/model"
)

// PoolDependencies defines the interface for pool read operations.
type PoolDependencies interface {
	Pool(ctx context.Context, poolType string) (model.PoolSnapshot, error)
	FetchMany(ctx context.Context, poolTypes []string) map[string]model.PoolSnapshot
	PoolTypes() []string
}

// PoolsHandler handles pool snapshot requests.
type PoolsHandler struct {
	deps PoolDependencies
}

// NewPoolsHandler creates a new pools handler.
func NewPoolsHandler(deps PoolDependencies) *PoolsHandler {
	return &PoolsHandler{deps: deps}
}

// poolResponse is the wire shape of one pool snapshot. Aspects are sorted
// mythic-first for display.
type poolResponse struct {
	PoolType  string         `json:"pool_type"`
	FetchedAt time.Time      `json:"fetched_at"`
	Aspects   []model.Aspect `json:"aspects"`
}

type poolListResponse struct {
	Pools       []poolResponse `json:"pools"`
	Unavailable []string       `json:"unavailable,omitempty"`
}

func toPoolResponse(snap model.PoolSnapshot) poolResponse {
	aspects := make([]model.Aspect, len(snap.Aspects))
	copy(aspects, snap.Aspects)
	model.SortAspectsByRarity(aspects)

	return poolResponse{
		PoolType:  snap.PoolType,
		FetchedAt: snap.FetchedAt,
		Aspects:   aspects,
	}
}

// HandleListPools handles GET /pools requests. Pools that cannot be fetched
// are listed as unavailable instead of failing the whole response.
func (h *PoolsHandler) HandleListPools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	snaps := h.deps.FetchMany(r.Context(), nil)

	resp := poolListResponse{Pools: make([]poolResponse, 0, len(snaps))}
	for _, poolType := range h.deps.PoolTypes() {
		snap, ok := snaps[poolType]
		if !ok {
			resp.Unavailable = append(resp.Unavailable, poolType)
			continue
		}
		resp.Pools = append(resp.Pools, toPoolResponse(snap))
	}

	if len(resp.Pools) == 0 {
		writeError(w, http.StatusBadGateway, "upstream_unavailable", ErrUpstreamUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGetPool handles GET /pools/{pool_type} requests.
func (h *PoolsHandler) HandleGetPool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	poolType := strings.TrimPrefix(r.URL.Path, "/pools/")
	if poolType == "" || strings.Contains(poolType, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	snap, err := h.deps.Pool(r.Context(), poolType)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPoolType) {
			writeError(w, http.StatusNotFound, "unknown_pool", err)
			return
		}
		writeError(w, http.StatusBadGateway, "upstream_unavailable", err)
		return
	}

	writeJSON(w, http.StatusOK, toPoolResponse(snap))
}
