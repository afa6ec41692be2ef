package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keymemory/KETIPreDataIntegration/core"
	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
)

// alignCmd performs a two-series alignment.
var alignCmd = &cobra.Command{
	Use:   "align <series1> <series2>",
	Short: "Align two time series onto a common index.",
	Long: `Join two time series files over their shared time range and align them.

Both files may be CSV (wide, with an 'index' column) or Parquet. The two
series are joined over the interval where their time ranges overlap, then
aligned with the selected strategy:

  upsample   - keep every timestamp in the overlap and fill the gaps in the
               sparser series by imputation (mean or knn)
  downsample - keep only the timestamps where both series have observations
  embedding  - learn fixed-width window embeddings over the joined series
               and emit one embedding row per window

Examples:
  # Fill gaps in the sparser series with column means
  tsalign align fast.csv slow.csv --strategy upsample

  # Impute from the 5 nearest complete rows
  tsalign align fast.csv slow.csv --strategy upsample --method knn --n-neighbors 5

  # Keep only fully observed timestamps
  tsalign align fast.csv slow.csv --strategy downsample

  # Train window embeddings and write them to Parquet
  tsalign align fast.parquet slow.parquet --strategy embedding \
    --emb-dim 16 --window-size 5 --output parquet --output-file aligned.parquet

  # Reuse a trained checkpoint on new data
  tsalign align fast.csv slow.csv --strategy embedding --train-mode eval`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAlign(rootCtx, cfg, alignTrainer, runManager); err != nil {
			contract.LogFatal("Cannot run alignment", err)
		}
	},
}
