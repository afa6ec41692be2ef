package core

import (
	"context"
	"fmt"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// Align resolves the overlap of two series tables and dispatches to exactly
// one alignment strategy. The strategy set is closed: an identifier outside
// it is logged and surfaced as schema.ErrUnknownStrategy rather than
// producing a partial result. The trainer is only consulted by the embedding
// strategy and may be nil otherwise.
func Align(ctx context.Context, cfg *contract.Config, x1, x2 *schema.Table, tr contract.Trainer) (*schema.AlignmentResult, error) {
	overlap, err := ResolveOverlap(x1, x2)
	if err != nil {
		return nil, err
	}
	return alignOverlap(ctx, cfg, overlap, tr)
}

// alignOverlap is the strategy selector proper: a single exhaustive dispatch
// over the configured strategy, operating on an already resolved overlap
// table.
func alignOverlap(ctx context.Context, cfg *contract.Config, overlap *schema.Table, tr contract.Trainer) (*schema.AlignmentResult, error) {
	switch cfg.Strategy {
	case schema.UpsampleStrategy:
		aligned, err := Upsample(overlap, cfg.ImputeMethod, cfg.NNeighbors)
		if err != nil {
			return nil, err
		}
		return &schema.AlignmentResult{
			Aligned:     aligned,
			Strategy:    schema.UpsampleStrategy,
			OverlapRows: overlap.Rows(),
		}, nil

	case schema.DownsampleStrategy:
		return &schema.AlignmentResult{
			Aligned:     Downsample(overlap),
			Strategy:    schema.DownsampleStrategy,
			OverlapRows: overlap.Rows(),
		}, nil

	case schema.EmbeddingStrategy:
		return EmbedAlign(ctx, overlap, cfg, tr)

	default:
		contract.LogWarn("rejecting alignment request", fmt.Errorf("strategy %q", cfg.Strategy))
		return nil, fmt.Errorf("%w: %q (expected upsample, downsample, or embedding)",
			schema.ErrUnknownStrategy, cfg.Strategy)
	}
}
