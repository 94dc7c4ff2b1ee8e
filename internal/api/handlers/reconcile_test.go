package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amajor13/sme-recon-mvp/internal/api/dto"
	"github.com/amajor13/sme-recon-mvp/internal/api/handlers"
	"github.com/amajor13/sme-recon-mvp/internal/domain/recon"
	"github.com/amajor13/sme-recon-mvp/internal/infrastructure/storage"
)

func newReconcileHandler(t *testing.T) (*handlers.ReconcileHandler, *storage.MockRepository) {
	t.Helper()
	repo := storage.NewMockRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := handlers.NewBase(repo, logger)
	return handlers.NewReconcileHandler(base, recon.DefaultConfig()), repo
}

func testRecord(day int, amount, vendor, reference string) recon.Record {
	return recon.Record{
		Date:      recon.NewDate(2025, time.March, day),
		Amount:    decimal.RequireFromString(amount),
		Vendor:    vendor,
		Reference: reference,
	}
}

func postReconcile(t *testing.T, h *handlers.ReconcileHandler, req dto.ReconcileRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/reconcile", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Reconcile(rec, r)
	return rec
}

func TestReconcile_Success(t *testing.T) {
	// Arrange
	h, repo := newReconcileHandler(t)
	req := dto.ReconcileRequest{
		SideA: []recon.Record{
			testRecord(10, "1180.00", "ACME SUPPLIES", "INV-2025-001"),
			testRecord(15, "350.00", "GLOBE TRADERS", "INV-2025-002"),
		},
		SideB: []recon.Record{
			testRecord(11, "1180.00", "ACME SUPPLIES", "INV-2025-001"),
		},
	}

	// Act
	rec := postReconcile(t, h, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ReconcileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.Matches, 1)
	assert.Len(t, resp.UnmatchedA, 1)
	assert.Equal(t, 1, resp.UnmatchedA[0].Index)
	assert.Equal(t, "GLOBE TRADERS", resp.UnmatchedA[0].Record.Vendor)
	assert.Empty(t, resp.UnmatchedB)
	assert.NotEmpty(t, resp.RunUID)
	assert.NotZero(t, resp.RunID)

	require.True(t, repo.SaveRunCalled)
	require.NotNil(t, repo.LastSavedRun)
	assert.Equal(t, 2, repo.LastSavedRun.SideACount)
	assert.Equal(t, 1, repo.LastSavedRun.SideBCount)
	assert.Equal(t, 1, repo.LastSavedRun.MatchCount)
	assert.Equal(t, storage.RunStatusCompleted, repo.LastSavedRun.Status)
	assert.NotEmpty(t, repo.LastSavedRun.ResultJSON)
}

func TestReconcile_OptionsOverrideDefaults(t *testing.T) {
	// Arrange: amounts differ by 15%, dates by 40 days, references
	// only loosely agree. Under the default configuration this pair
	// scores below the acceptance threshold.
	h, _ := newReconcileHandler(t)
	req := dto.ReconcileRequest{
		SideA: []recon.Record{testRecord(1, "1000.00", "ACME SUPPLIES", "INV-77")},
		SideB: []recon.Record{
			{
				Date:      recon.NewDate(2025, time.April, 10),
				Amount:    decimal.RequireFromString("1150.00"),
				Vendor:    "ACME SUPPLIES",
				Reference: "INV-99",
			},
		},
	}

	// Act: once with defaults, once loosened.
	strict := postReconcile(t, h, req)

	req.Options = &dto.MatchingOptions{
		MinMatchThreshold: 0.15,
		DateWindowDays:    60,
	}
	loose := postReconcile(t, h, req)

	// Assert
	require.Equal(t, http.StatusOK, strict.Code)
	require.Equal(t, http.StatusOK, loose.Code)

	var strictResp, looseResp dto.ReconcileResponse
	require.NoError(t, json.Unmarshal(strict.Body.Bytes(), &strictResp))
	require.NoError(t, json.Unmarshal(loose.Body.Bytes(), &looseResp))

	assert.Empty(t, strictResp.Matches)
	assert.Len(t, looseResp.Matches, 1)
}

func TestReconcile_MalformedBody(t *testing.T) {
	h, repo := newReconcileHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/api/reconcile", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Reconcile(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, repo.SaveRunCalled)

	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, dto.ErrCodeBadRequest, apiErr.Code)
}

func TestReconcile_InvalidRecordRejected(t *testing.T) {
	h, repo := newReconcileHandler(t)
	req := dto.ReconcileRequest{
		SideA: []recon.Record{
			{
				Date:   recon.NewDate(2025, time.March, 10),
				Amount: decimal.Zero,
				Vendor: "ACME SUPPLIES",
			},
		},
		SideB: []recon.Record{testRecord(10, "100.00", "ACME SUPPLIES", "")},
	}

	rec := postReconcile(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, repo.SaveRunCalled)

	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, dto.ErrCodeValidation, apiErr.Code)
	assert.Contains(t, apiErr.Message, "amount")
}

func TestReconcile_InvalidOptionsRejected(t *testing.T) {
	h, _ := newReconcileHandler(t)
	req := dto.ReconcileRequest{
		SideA:   []recon.Record{testRecord(10, "100.00", "ACME SUPPLIES", "")},
		SideB:   []recon.Record{testRecord(10, "100.00", "ACME SUPPLIES", "")},
		Options: &dto.MatchingOptions{MinMatchThreshold: 1.5},
	}

	rec := postReconcile(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, dto.ErrCodeValidation, apiErr.Code)
}

func TestReconcile_StorageFailure(t *testing.T) {
	h, repo := newReconcileHandler(t)
	repo.SaveRunErr = errors.New("disk full")

	req := dto.ReconcileRequest{
		SideA: []recon.Record{testRecord(10, "100.00", "ACME SUPPLIES", "INV-1")},
		SideB: []recon.Record{testRecord(10, "100.00", "ACME SUPPLIES", "INV-1")},
	}

	rec := postReconcile(t, h, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, dto.ErrCodeInternal, apiErr.Code)
}

func TestReconcile_EmptySides(t *testing.T) {
	h, _ := newReconcileHandler(t)

	rec := postReconcile(t, h, dto.ReconcileRequest{})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ReconcileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Matches)
	assert.Empty(t, resp.UnmatchedA)
	assert.Empty(t, resp.UnmatchedB)
	assert.Zero(t, resp.Metrics.MatchRate)
}
