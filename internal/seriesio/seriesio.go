// Package seriesio loads and saves time-series tables. Tables travel either
// as wide CSV (one column per feature, empty cell = missing) or as Parquet
// in long form (index, column, value) using github.com/parquet-go/parquet-go.
package seriesio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// ReadTable loads a series table, picking the format from the file
// extension (.parquet or .csv).
func ReadTable(path string) (*schema.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return ReadParquet(path)
	case ".csv":
		return ReadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported series file %q: expected a .csv or .parquet extension", path)
	}
}

// WriteTable saves a series table, picking the format from the file
// extension (.parquet or .csv).
func WriteTable(t *schema.Table, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return WriteParquet(t, path)
	case ".csv":
		return WriteCSVFile(t, path)
	default:
		return fmt.Errorf("unsupported series file %q: expected a .csv or .parquet extension", path)
	}
}
