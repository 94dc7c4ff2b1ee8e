package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/amajor13/sme-recon-mvp/internal/api/dto"
	"github.com/amajor13/sme-recon-mvp/internal/domain/recon"
	"github.com/amajor13/sme-recon-mvp/internal/infrastructure/storage"
)

// ReconcileHandler runs reconciliations and persists the outcome.
type ReconcileHandler struct {
	*Base
	baseConfig recon.Config
}

// NewReconcileHandler creates a reconcile handler. baseConfig supplies
// the server-wide engine defaults; requests may override a subset per
// run.
func NewReconcileHandler(base *Base, baseConfig recon.Config) *ReconcileHandler {
	return &ReconcileHandler{
		Base:       base,
		baseConfig: baseConfig,
	}
}

// Reconcile handles POST /api/reconcile.
func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req dto.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid JSON body: "+err.Error()))
		return
	}

	cfg := req.Options.Apply(h.baseConfig)

	engine, err := recon.NewEngine(cfg)
	if err != nil {
		var cfgErr *recon.ConfigError
		if errors.As(err, &cfgErr) {
			h.WriteError(w, http.StatusBadRequest, dto.ValidationError(cfgErr.Error()))
			return
		}
		h.logger.Error("engine construction failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError("could not configure matching engine"))
		return
	}
	engine.SetObserver(&recon.LogObserver{Logger: h.logger})

	result, err := engine.Reconcile(req.SideA, req.SideB)
	if err != nil {
		var inputErr *recon.InvalidInputError
		if errors.As(err, &inputErr) {
			h.WriteError(w, http.StatusBadRequest, dto.ValidationError(inputErr.Error()))
			return
		}
		h.logger.Error("reconciliation failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError("reconciliation failed"))
		return
	}

	run, err := h.persistRun(req, result)
	if err != nil {
		h.logger.Error("failed to save run", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError("could not persist run"))
		return
	}

	h.logger.Info("reconciliation complete",
		"run_uid", run.RunUID,
		"matches", len(result.Matches),
		"unmatched_a", len(result.UnmatchedA),
		"unmatched_b", len(result.UnmatchedB),
	)

	h.WriteJSON(w, http.StatusOK, buildReconcileResponse(run, req, result))
}

func (h *ReconcileHandler) persistRun(req dto.ReconcileRequest, result *recon.Result) (*storage.ReconciliationRun, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	run := &storage.ReconciliationRun{
		RunUID:          uuid.NewString(),
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		Status:          storage.RunStatusCompleted,
		SideACount:      len(req.SideA),
		SideBCount:      len(req.SideB),
		MatchCount:      len(result.Matches),
		UnmatchedACount: len(result.UnmatchedA),
		UnmatchedBCount: len(result.UnmatchedB),
		MatchRate:       result.Metrics.MatchRate,
		AverageScore:    result.Metrics.AverageScore,
		SideATotal:      result.Metrics.SideATotal.String(),
		SideBTotal:      result.Metrics.SideBTotal.String(),
		TotalVariance:   result.Metrics.TotalVariance.String(),
		ResultJSON:      string(resultJSON),
	}

	id, err := h.repo.SaveRun(run)
	if err != nil {
		return nil, err
	}
	run.ID = id
	return run, nil
}

func buildReconcileResponse(run *storage.ReconciliationRun, req dto.ReconcileRequest, result *recon.Result) dto.ReconcileResponse {
	unmatchedA := make([]dto.UnmatchedRecord, 0, len(result.UnmatchedA))
	for _, i := range result.UnmatchedA {
		unmatchedA = append(unmatchedA, dto.UnmatchedRecord{Index: i, Record: req.SideA[i]})
	}
	unmatchedB := make([]dto.UnmatchedRecord, 0, len(result.UnmatchedB))
	for _, i := range result.UnmatchedB {
		unmatchedB = append(unmatchedB, dto.UnmatchedRecord{Index: i, Record: req.SideB[i]})
	}

	return dto.ReconcileResponse{
		RunID:       run.ID,
		RunUID:      run.RunUID,
		CreatedAt:   run.CreatedAt,
		Matches:     result.Matches,
		UnmatchedA:  unmatchedA,
		UnmatchedB:  unmatchedB,
		DuplicatesA: result.DuplicatesA,
		DuplicatesB: result.DuplicatesB,
		Metrics:     result.Metrics,
	}
}
