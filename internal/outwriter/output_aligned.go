package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/internal/seriesio"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// WriteAlignment outputs the aligned table, dispatching based on the output
// format configured.
func WriteAlignment(result *schema.AlignmentResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return seriesio.WriteCSV(result.Aligned, w)
		}, "CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := seriesio.WriteParquet(result.Aligned, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAlignedTable(result, cfg, fmtFloat, duration, w)
		}, "table")
	}
	return nil
}

// writeAlignedTable generates and writes the human-readable preview table
// plus a summary footer.
func writeAlignedTable(result *schema.AlignmentResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	aligned := result.Aligned
	maxCols := min(aligned.Cols(), getMaxTableColumns(cfg))
	truncatedCols := aligned.Cols() > maxCols

	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Index"}
	headers = append(headers, aligned.Columns[:maxCols]...)
	if truncatedCols {
		headers = append(headers, "...")
	}
	table.Header(headers)

	// 2. Configure alignment to match a minimal numeric look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate preview rows
	previewRows := min(aligned.Rows(), cfg.Limit)
	var data [][]string
	for i := range previewRows {
		row := []string{strconv.FormatInt(aligned.Index[i], 10)}
		for j := range maxCols {
			v := aligned.Values[i][j]
			if schema.IsMissing(v) {
				row = append(row, "")
			} else {
				row = append(row, fmtFloat(v))
			}
		}
		if truncatedCols {
			row = append(row, "...")
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Summary footer
	if _, err := fmt.Fprintf(writer, "Showing %d of %d aligned rows (%d columns, strategy: %s, overlap rows: %d)\n",
		previewRows, aligned.Rows(), aligned.Cols(), result.Strategy, result.OverlapRows); err != nil {
		return err
	}
	if result.Strategy == schema.EmbeddingStrategy {
		label := contract.GetPlainLossLabel(result.LossHistory)
		if cfg.UseColors {
			label = contract.GetColorLossLabel(result.LossHistory)
		}
		if _, err := fmt.Fprintf(writer, "Training: %s (final loss %s over %d epochs). Checkpoint: %s\n",
			label, fmtFloat(result.FinalLoss()), len(result.LossHistory), result.CheckpointPath); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Alignment completed in %v. Run backend: %s\n", duration, cfg.RunBackend); err != nil {
		return err
	}
	return nil
}
