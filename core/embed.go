package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// trainShuffleSeed fixes the order of the shuffled training view so runs are
// reproducible for a given overlap table.
const trainShuffleSeed = 42

// EmbedAlign is the learned-representation strategy. Missing cells are
// replaced with zero (a documented simplification, not an imputation
// policy), the table is cut into sliding windows, and the trainer produces
// one embedding vector per window. The output columns are named
// concat_emb1..concat_emb{emb_dim}; the output index is the overlap index
// with the first window_size timestamps dropped, since each window's
// embedding is assigned to the timestamp immediately following the window.
//
// In train mode the trained weights are written to cfg.CheckpointPath before
// inference; in eval mode the checkpoint is loaded instead of training.
// Trainer failures propagate untouched; checkpoint I/O failures surface as
// schema.ErrPersistence.
func EmbedAlign(ctx context.Context, overlap *schema.Table, cfg *contract.Config, tr contract.Trainer) (*schema.AlignmentResult, error) {
	filled := overlap.FillMissing(0)

	seq, err := NewWindowSeq(filled.Values, cfg.WindowSize)
	if err != nil {
		return nil, err
	}

	hp := contract.Hyperparams{
		Features:   overlap.Cols(),
		EmbDim:     cfg.EmbDim,
		WindowSize: cfg.WindowSize,
		BatchSize:  cfg.BatchSize,
		Epochs:     cfg.Epochs,
		Mode:       cfg.TrainMode,
	}

	var model contract.Model
	var history []float64
	switch cfg.TrainMode {
	case schema.TrainModeEval:
		model, err = loadCheckpoint(tr, cfg.CheckpointPath)
		if err != nil {
			return nil, err
		}
	default:
		model, history, err = tr.Fit(ctx, seq.Shuffled(trainShuffleSeed), hp)
		if err != nil {
			return nil, err
		}
		if err := saveCheckpoint(model, cfg.CheckpointPath); err != nil {
			return nil, err
		}
	}

	embeddings, err := model.Encode(ctx, seq)
	if err != nil {
		return nil, err
	}
	// A restored checkpoint dictates the embedding width; a request asking
	// for a different width must fail rather than emit a table whose rows
	// disagree with its column names.
	if len(embeddings) > 0 && len(embeddings[0]) != cfg.EmbDim {
		return nil, fmt.Errorf("%w: checkpoint produces %d-wide embeddings, requested emb_dim is %d",
			schema.ErrInvalidParameter, len(embeddings[0]), cfg.EmbDim)
	}

	columns := make([]string, cfg.EmbDim)
	for j := range columns {
		columns[j] = fmt.Sprintf("%s%d", schema.EmbeddingColumnPrefix, j+1)
	}
	aligned := &schema.Table{
		Index:   append([]int64(nil), overlap.Index[cfg.WindowSize:]...),
		Columns: columns,
		Values:  embeddings,
	}

	return &schema.AlignmentResult{
		Aligned:        aligned,
		Strategy:       schema.EmbeddingStrategy,
		OverlapRows:    overlap.Rows(),
		LossHistory:    history,
		CheckpointPath: cfg.CheckpointPath,
	}, nil
}

// saveCheckpoint persists trained weights, creating the checkpoint directory
// if absent. Not optional: callers depending on reproducible inference
// require the checkpoint to exist after a train-mode run.
func saveCheckpoint(model contract.Model, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", schema.ErrPersistence, dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", schema.ErrPersistence, path, err)
	}
	defer func() { _ = f.Close() }()

	if err := model.Save(f); err != nil {
		return fmt.Errorf("%w: writing %s: %v", schema.ErrPersistence, path, err)
	}
	return nil
}

// loadCheckpoint restores a model from a prior train-mode run.
func loadCheckpoint(tr contract.Trainer, path string) (contract.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", schema.ErrPersistence, path, err)
	}
	defer func() { _ = f.Close() }()

	model, err := tr.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", schema.ErrPersistence, path, err)
	}
	return model, nil
}
