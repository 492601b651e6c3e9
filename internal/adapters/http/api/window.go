package api

import (
	"net/http"
	"time"
)

// WindowDependencies defines the interface for rollover window queries.
type WindowDependencies interface {
	Window() (lastReset, nextReset time.Time)
}

// WindowHandler handles rollover window requests.
type WindowHandler struct {
	deps WindowDependencies
}

// NewWindowHandler creates a new window handler.
func NewWindowHandler(deps WindowDependencies) *WindowHandler {
	return &WindowHandler{deps: deps}
}

type windowResponse struct {
	LastReset time.Time `json:"last_reset"`
	NextReset time.Time `json:"next_reset"`
}

// HandleWindow handles GET /window requests.
func (h *WindowHandler) HandleWindow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	last, next := h.deps.Window()
	writeJSON(w, http.StatusOK, windowResponse{LastReset: last, NextReset: next})
}
