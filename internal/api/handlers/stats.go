package handlers

import (
	"net/http"

	"github.com/amajor13/sme-recon-mvp/internal/api/dto"
)

// StatsHandler serves aggregate statistics over all persisted runs.
type StatsHandler struct {
	*Base
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(base *Base) *StatsHandler {
	return &StatsHandler{Base: base}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.logger.Error("failed to compute stats", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError("could not compute stats"))
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
