package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amajor13/sme-recon-mvp/internal/api/dto"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(dto.HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}
