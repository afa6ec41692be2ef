// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"io"
	"iter"
	"time"

	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// WindowSource yields fixed-shape windows of multivariate data in a defined
// order. Iterating twice yields identical content, so trainers may make
// multiple passes (one per epoch).
type WindowSource interface {
	// Len returns the number of windows.
	Len() int

	// WindowSize returns the number of rows per window.
	WindowSize() int

	// Features returns the number of columns per window row.
	Features() int

	// All yields each window as a [WindowSize][Features] slice. Windows may
	// share backing arrays with the source table; consumers must not mutate
	// them.
	All() iter.Seq[[][]float64]
}

// Hyperparams carries the training configuration forwarded to a Trainer.
type Hyperparams struct {
	Features   int
	EmbDim     int
	WindowSize int
	BatchSize  int
	Epochs     int
	Mode       schema.TrainMode
}

// Model is a trained window encoder.
type Model interface {
	// Encode produces one embedding vector of width EmbDim per window,
	// in source order.
	Encode(ctx context.Context, src WindowSource) ([][]float64, error)

	// Save serializes the model weights. The format is trainer-defined and
	// opaque to callers.
	Save(w io.Writer) error
}

// Trainer trains and restores window-encoding models. The embedding aligner
// only owns this contract; architecture, loss, and optimizer internals live
// behind it, so tests can substitute a deterministic stub.
type Trainer interface {
	// Fit trains a model on the given windows and returns it together with
	// the per-epoch loss history. Training failures (e.g. numerical
	// divergence) are returned as-is and are fatal for the alignment request.
	Fit(ctx context.Context, train WindowSource, hp Hyperparams) (Model, []float64, error)

	// Load restores a model from serialized weights written by Model.Save.
	Load(r io.Reader) (Model, error)
}

// RunStore records alignment runs for later inspection.
// This allows the persistence layer to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, rec schema.RunRecord) error

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStoreStatus, error)

	// Clear removes all recorded runs.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}

// RunManager hands out the process-wide RunStore.
type RunManager interface {
	GetRunStore() RunStore
}
