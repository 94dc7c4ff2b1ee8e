package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/amajor13/sme-recon-mvp/internal/api/dto"
	"github.com/amajor13/sme-recon-mvp/internal/infrastructure/storage"
)

// Base carries the dependencies every handler shares and the JSON
// response helpers.
type Base struct {
	repo   storage.Repository
	logger *slog.Logger
}

// NewBase creates a base handler. A nil logger falls back to the
// default slog logger.
func NewBase(repo storage.Repository, logger *slog.Logger) *Base {
	if logger == nil {
		logger = slog.Default()
	}
	return &Base{repo: repo, logger: logger}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	b.WriteJSON(w, status, err)
}

// QueryInt reads an integer query parameter, falling back to def when
// the parameter is absent or unparseable.
func QueryInt(r *http.Request, name string, def int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}

// QueryBool reads a boolean query parameter; absent means false.
func QueryBool(r *http.Request, name string) bool {
	val := r.URL.Query().Get(name)
	return val == "true" || val == "1"
}
