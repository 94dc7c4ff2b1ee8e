package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/amajor13/sme-recon-mvp/internal/domain/recon"
	"github.com/amajor13/sme-recon-mvp/internal/infrastructure/config"
	"github.com/amajor13/sme-recon-mvp/internal/infrastructure/logging"
	"github.com/amajor13/sme-recon-mvp/internal/infrastructure/storage"
)

// RunReconcile executes a one-shot reconciliation of two record files.
func RunReconcile(cfg *config.Config, flags *ReconcileFlags) error {
	if flags.SideAPath == "" || flags.SideBPath == "" {
		return fmt.Errorf("both -side-a and -side-b are required")
	}

	sideA, err := loadRecords(flags.SideAPath)
	if err != nil {
		return fmt.Errorf("loading side A: %w", err)
	}
	sideB, err := loadRecords(flags.SideBPath)
	if err != nil {
		return fmt.Errorf("loading side B: %w", err)
	}

	engineCfg := cfg.Matching.ToEngineConfig()
	if flags.Threshold != 0 {
		engineCfg.MinMatchThreshold = flags.Threshold
	}

	engine, err := recon.NewEngine(engineCfg)
	if err != nil {
		return err
	}

	if flags.Verbose {
		loggingCfg := cfg.Observability.Logging
		loggingCfg.Level = "debug"
		logger := logging.NewLoggerWithScope(loggingCfg, "recon")
		engine.SetObserver(&recon.LogObserver{Logger: logger})
	}

	result, err := engine.Reconcile(sideA, sideB)
	if err != nil {
		return err
	}

	if flags.Save {
		if err := saveRun(cfg, sideA, sideB, result); err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
	}

	if flags.JSONOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	PrintReport(result, sideA, sideB)
	return nil
}

func loadRecords(path string) ([]recon.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []recon.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func saveRun(cfg *config.Config, sideA, sideB []recon.Record, result *recon.Result) error {
	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}

	run := &storage.ReconciliationRun{
		RunUID:          uuid.NewString(),
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		Status:          storage.RunStatusCompleted,
		SideACount:      len(sideA),
		SideBCount:      len(sideB),
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

	id, err := store.SaveRun(run)
	if err != nil {
		return err
	}
	fmt.Printf("Saved run %d (%s)\n", id, run.RunUID)
	return nil
}
