package seriesio

import (
	"fmt"
	"os"
	"slices"

	"github.com/parquet-go/parquet-go"

	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// SeriesPoint is one observed cell of a series table in long form. Missing
// cells are simply absent from the file.
type SeriesPoint struct {
	// Index is the time index of the observation
	Index int64 `parquet:"index,snappy"`

	// Column is the feature name
	Column string `parquet:"column,snappy"`

	// Value is the observed value
	Value float64 `parquet:"value,snappy"`
}

// WriteParquet writes a series table to a Parquet file in long form,
// skipping missing cells.
func WriteParquet(t *schema.Table, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the SeriesPoint struct tags
	writer := parquet.NewGenericWriter[SeriesPoint](file)
	defer func() { _ = writer.Close() }()

	points := make([]SeriesPoint, 0, t.Rows()*t.Cols())
	for i, row := range t.Values {
		for j, v := range row {
			if schema.IsMissing(v) {
				continue
			}
			points = append(points, SeriesPoint{Index: t.Index[i], Column: t.Columns[j], Value: v})
		}
	}

	if _, err := writer.Write(points); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ReadParquet loads a long-form Parquet file and pivots it back into a wide
// table. Column order follows first appearance in the file; the index is
// sorted ascending. Cells absent from the file come back missing.
func ReadParquet(path string) (*schema.Table, error) {
	points, err := parquet.ReadFile[SeriesPoint](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file %s: %w", path, err)
	}
	return pivot(points)
}

// pivot converts long-form points into a wide table.
func pivot(points []SeriesPoint) (*schema.Table, error) {
	var columns []string
	colPos := make(map[string]int)
	indexSet := make(map[int64]struct{})
	for _, p := range points {
		if _, ok := colPos[p.Column]; !ok {
			colPos[p.Column] = len(columns)
			columns = append(columns, p.Column)
		}
		indexSet[p.Index] = struct{}{}
	}

	index := make([]int64, 0, len(indexSet))
	for idx := range indexSet {
		index = append(index, idx)
	}
	slices.Sort(index)
	rowPos := make(map[int64]int, len(index))
	for i, idx := range index {
		rowPos[idx] = i
	}

	values := make([][]float64, len(index))
	for i := range values {
		row := make([]float64, len(columns))
		for j := range row {
			row[j] = schema.Missing()
		}
		values[i] = row
	}
	for _, p := range points {
		values[rowPos[p.Index]][colPos[p.Column]] = p.Value
	}

	return schema.NewTable(index, columns, values)
}
