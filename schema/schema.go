// Package schema has configs, models and shared types for all parts of tsalign.
package schema

import (
	"fmt"
	"math"
	"slices"
)

// Table is a wide time-series table: an ordered collection of rows keyed by
// a monotonic integer time index, with named numeric columns. The index is
// sorted ascending but not necessarily uniformly spaced. Missing cells carry
// NaN; use IsMissing to test for them. Behavior with duplicate index values
// is undefined.
type Table struct {
	Index   []int64     `json:"index"`
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"` // Row-major; len(Values) == len(Index), each row len == len(Columns)
}

// IsMissing reports whether a cell value is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Missing returns the missing-value sentinel.
func Missing() float64 {
	return math.NaN()
}

// NewTable builds a Table and validates its shape: index and values must have
// the same length, every row must match the column count, and the index must
// be sorted ascending.
func NewTable(index []int64, columns []string, values [][]float64) (*Table, error) {
	if len(index) != len(values) {
		return nil, fmt.Errorf("index length %d does not match row count %d", len(index), len(values))
	}
	for i, row := range values {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(columns))
		}
	}
	if !slices.IsSorted(index) {
		return nil, fmt.Errorf("index is not sorted ascending")
	}
	return &Table{Index: index, Columns: columns, Values: values}, nil
}

// Rows returns the number of rows in the table.
func (t *Table) Rows() int {
	return len(t.Index)
}

// Cols returns the number of columns in the table.
func (t *Table) Cols() int {
	return len(t.Columns)
}

// MinIndex returns the smallest index value. The table must be non-empty.
func (t *Table) MinIndex() int64 {
	return t.Index[0]
}

// MaxIndex returns the largest index value. The table must be non-empty.
func (t *Table) MaxIndex() int64 {
	return t.Index[len(t.Index)-1]
}

// RowAt returns the row for the given index value and whether it exists.
// The lookup relies on the ascending-index invariant.
func (t *Table) RowAt(idx int64) ([]float64, bool) {
	pos, found := slices.BinarySearch(t.Index, idx)
	if !found {
		return nil, false
	}
	return t.Values[pos], true
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	clone := &Table{
		Index:   slices.Clone(t.Index),
		Columns: slices.Clone(t.Columns),
		Values:  make([][]float64, len(t.Values)),
	}
	for i, row := range t.Values {
		clone.Values[i] = slices.Clone(row)
	}
	return clone
}

// HasMissing reports whether any cell in the table is missing.
func (t *Table) HasMissing() bool {
	for _, row := range t.Values {
		for _, v := range row {
			if IsMissing(v) {
				return true
			}
		}
	}
	return false
}

// FillMissing returns a copy of the table with every missing cell replaced
// by the given value.
func (t *Table) FillMissing(fill float64) *Table {
	out := t.Clone()
	for _, row := range out.Values {
		for j, v := range row {
			if IsMissing(v) {
				row[j] = fill
			}
		}
	}
	return out
}
