package schema

import "time"

// AlignmentResult holds the output of one alignment request.
type AlignmentResult struct {
	Aligned *Table `json:"aligned"`

	Strategy Strategy `json:"strategy"`

	// OverlapRows is the row count of the overlap table the strategy consumed.
	OverlapRows int `json:"overlap_rows"`

	// LossHistory is the per-epoch training loss. Empty for non-embedding
	// strategies and for embedding runs in eval mode.
	LossHistory []float64 `json:"loss_history,omitempty"`

	// CheckpointPath is where model weights were written (train mode) or
	// read from (eval mode). Empty for non-embedding strategies.
	CheckpointPath string `json:"checkpoint_path,omitempty"`

	Duration time.Duration `json:"duration"`
}

// FinalLoss returns the last recorded training loss, or 0 when no training
// happened in this run.
func (r *AlignmentResult) FinalLoss() float64 {
	if len(r.LossHistory) == 0 {
		return 0
	}
	return r.LossHistory[len(r.LossHistory)-1]
}

// RunRecord is the summary of a completed alignment run persisted by the
// run store.
type RunRecord struct {
	Strategy       string
	InputRows1     int
	InputRows2     int
	OverlapRows    int
	OutputRows     int
	OutputColumns  int
	FinalLoss      float64
	CheckpointPath string
}

// RunStoreStatus holds status information about the run store.
type RunStoreStatus struct {
	Backend   DatabaseBackend `json:"backend"`
	Location  string          `json:"location"`
	TotalRuns int             `json:"total_runs"`
	LastRun   time.Time       `json:"last_run"`
}
