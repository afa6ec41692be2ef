package core

import (
	"context"
	"fmt"
	"time"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/internal/outwriter"
	"github.com/keymemory/KETIPreDataIntegration/internal/seriesio"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// ExecuteAlign runs one alignment request end to end: load the two series,
// align them with the configured strategy, record the run, and print the
// result. It serves as the main entry point for the 'align' command.
func ExecuteAlign(ctx context.Context, cfg *contract.Config, tr contract.Trainer, mgr contract.RunManager) error {
	start := time.Now()

	result, _, err := GetAlignmentResult(ctx, cfg, tr, mgr)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	result.Duration = duration
	return outwriter.WriteAlignment(result, cfg, duration)
}

// GetAlignmentResult performs the alignment and run bookkeeping without
// printing, so the MCP surface can reuse it.
func GetAlignmentResult(ctx context.Context, cfg *contract.Config, tr contract.Trainer, mgr contract.RunManager) (*schema.AlignmentResult, schema.RunRecord, error) {
	start := time.Now()

	x1, err := seriesio.ReadTable(cfg.Series1Path)
	if err != nil {
		return nil, schema.RunRecord{}, err
	}
	x2, err := seriesio.ReadTable(cfg.Series2Path)
	if err != nil {
		return nil, schema.RunRecord{}, err
	}

	// Run tracking is bookkeeping, not part of the alignment contract: a
	// missing or broken store degrades to a warning, never a failure.
	var store contract.RunStore
	if mgr != nil {
		store = mgr.GetRunStore()
	}
	var runID int64
	if store == nil {
		contract.LogWarn("run tracking disabled", fmt.Errorf("no run store initialized"))
	} else if runID, err = store.BeginRun(start, cfg.Params()); err != nil {
		contract.LogWarn("could not begin run tracking", err)
		runID = 0
	}

	result, err := Align(ctx, cfg, x1, x2, tr)
	if err != nil {
		return nil, schema.RunRecord{}, err
	}

	rec := schema.RunRecord{
		Strategy:       string(result.Strategy),
		InputRows1:     x1.Rows(),
		InputRows2:     x2.Rows(),
		OverlapRows:    result.OverlapRows,
		OutputRows:     result.Aligned.Rows(),
		OutputColumns:  result.Aligned.Cols(),
		FinalLoss:      result.FinalLoss(),
		CheckpointPath: result.CheckpointPath,
	}
	if runID != 0 {
		if err := store.EndRun(runID, time.Now(), rec); err != nil {
			contract.LogWarn("could not finish run tracking", err)
		}
	}

	return result, rec, nil
}
