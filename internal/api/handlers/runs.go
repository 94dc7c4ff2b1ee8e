package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amajor13/sme-recon-mvp/internal/api/dto"
	"github.com/amajor13/sme-recon-mvp/internal/domain/recon"
	"github.com/amajor13/sme-recon-mvp/internal/infrastructure/storage"
)

// RunsHandler serves persisted reconciliation runs.
type RunsHandler struct {
	*Base
}

// NewRunsHandler creates a runs handler.
func NewRunsHandler(base *Base) *RunsHandler {
	return &RunsHandler{Base: base}
}

// List handles GET /api/runs. Supports a ?limit= query parameter.
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := QueryInt(r, "limit", 20)

	runs, err := h.repo.ListRuns(limit)
	if err != nil {
		h.logger.Error("failed to list runs", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError("could not load runs"))
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.RunListResponse{
		Runs:  runs,
		Count: len(runs),
	})
}

// Get handles GET /api/runs/{id}. The path segment may be a numeric
// row ID or a run UID. Pass ?include_result=true to inline the stored
// result document.
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")

	run, err := h.lookupRun(param)
	if err != nil {
		h.logger.Error("failed to load run", "run", param, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError("could not load run"))
		return
	}
	if run == nil {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("run"))
		return
	}

	resp := dto.RunDetailResponse{Run: run}
	if QueryBool(r, "include_result") && run.ResultJSON != "" {
		var result recon.Result
		if err := json.Unmarshal([]byte(run.ResultJSON), &result); err != nil {
			// The caller asked for the stored result; a decode failure
			// means the row is corrupt and must not pass silently.
			h.logger.Error("stored run result is corrupt", "run_uid", run.RunUID, "error", err)
			h.WriteError(w, http.StatusInternalServerError, dto.InternalError("stored run result is corrupt"))
			return
		}
		resp.Result = &result
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *RunsHandler) lookupRun(param string) (*storage.ReconciliationRun, error) {
	if id, err := strconv.ParseInt(param, 10, 64); err == nil {
		return h.repo.GetRun(id)
	}
	return h.repo.GetRunByUID(param)
}
