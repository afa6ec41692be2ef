// Package core has core logic for overlap resolution, alignment strategies
// and window construction.
package core

import (
	"fmt"

	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// ResolveOverlap outer-joins two series tables and restricts the result to
// their shared index range [max(min1,min2), min(max1,max2)] inclusive. The
// result holds the union of both column sets (x1 columns first, order
// preserved from the concatenation) over the union of both indices within
// the bounds; cells absent from a source stay missing.
//
// Returns schema.ErrEmptyOverlap when the resolved lower bound exceeds the
// upper bound. No side effects; the inputs are not modified.
func ResolveOverlap(x1, x2 *schema.Table) (*schema.Table, error) {
	if x1.Rows() == 0 || x2.Rows() == 0 {
		return nil, fmt.Errorf("%w: at least one series is empty", schema.ErrEmptyOverlap)
	}

	lo := max(x1.MinIndex(), x2.MinIndex())
	hi := min(x1.MaxIndex(), x2.MaxIndex())
	if lo > hi {
		return nil, fmt.Errorf("%w: [%d, %d] vs [%d, %d]",
			schema.ErrEmptyOverlap, x1.MinIndex(), x1.MaxIndex(), x2.MinIndex(), x2.MaxIndex())
	}

	columns := make([]string, 0, x1.Cols()+x2.Cols())
	columns = append(columns, x1.Columns...)
	columns = append(columns, x2.Columns...)

	index := mergeIndices(x1.Index, x2.Index, lo, hi)
	values := make([][]float64, len(index))
	for i, idx := range index {
		row := make([]float64, len(columns))
		fillFrom(row[:x1.Cols()], x1, idx)
		fillFrom(row[x1.Cols():], x2, idx)
		values[i] = row
	}

	return &schema.Table{Index: index, Columns: columns, Values: values}, nil
}

// mergeIndices merges two sorted index slices into their sorted union
// restricted to [lo, hi].
func mergeIndices(a, b []int64, lo, hi int64) []int64 {
	out := make([]int64, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var next int64
		switch {
		case i >= len(a):
			next = b[j]
			j++
		case j >= len(b):
			next = a[i]
			i++
		case a[i] < b[j]:
			next = a[i]
			i++
		case b[j] < a[i]:
			next = b[j]
			j++
		default: // equal
			next = a[i]
			i++
			j++
		}
		if next < lo || next > hi {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == next {
			continue
		}
		out = append(out, next)
	}
	return out
}

// fillFrom copies the source row at idx into dst, or fills dst with the
// missing sentinel when the source has no row at that index.
func fillFrom(dst []float64, src *schema.Table, idx int64) {
	if row, ok := src.RowAt(idx); ok {
		copy(dst, row)
		return
	}
	for k := range dst {
		dst[k] = schema.Missing()
	}
}
