package seriesio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// indexHeader is the reserved name of the first CSV column.
const indexHeader = "index"

// WriteCSV writes a series table in wide form: an index column followed by
// one column per feature. Missing cells are written as empty fields.
func WriteCSV(t *schema.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := append([]string{indexHeader}, t.Columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(header))
	for i, row := range t.Values {
		record[0] = strconv.FormatInt(t.Index[i], 10)
		for j, v := range row {
			if schema.IsMissing(v) {
				record[j+1] = ""
			} else {
				record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	return nil
}

// WriteCSVFile writes a wide-form CSV to the given path.
func WriteCSVFile(t *schema.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return WriteCSV(t, f)
}

// ReadCSV loads a wide-form CSV written by WriteCSV. Empty fields and "NaN"
// parse as missing.
func ReadCSV(path string) (*schema.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open series file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("series file %s is empty", path)
	}

	header := records[0]
	if len(header) < 2 || header[0] != indexHeader {
		return nil, fmt.Errorf("series file %s must start with an %q column followed by at least one feature column", path, indexHeader)
	}
	columns := append([]string(nil), header[1:]...)

	index := make([]int64, 0, len(records)-1)
	values := make([][]float64, 0, len(records)-1)
	for n, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d of %s has %d fields, expected %d", n+1, path, len(record), len(header))
		}
		idx, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d of %s has a non-integer index %q", n+1, path, record[0])
		}
		row := make([]float64, len(columns))
		for j, field := range record[1:] {
			if field == "" || field == "NaN" {
				row[j] = schema.Missing()
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q of %s: %w", n+1, columns[j], path, err)
			}
			row[j] = v
		}
		index = append(index, idx)
		values = append(values, row)
	}

	return schema.NewTable(index, columns, values)
}
