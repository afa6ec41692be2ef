package core

import "github.com/keymemory/KETIPreDataIntegration/schema"

// Downsample drops every row of the overlap table that has at least one
// missing cell, keeping only indices where both sources had a value. A pure
// function of its input; never fails. Zero rows is a legitimate result when
// the sources share no exact index, so callers should check the row count
// themselves.
func Downsample(overlap *schema.Table) *schema.Table {
	index := make([]int64, 0, overlap.Rows())
	values := make([][]float64, 0, overlap.Rows())

	for i, row := range overlap.Values {
		complete := true
		for _, v := range row {
			if schema.IsMissing(v) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		index = append(index, overlap.Index[i])
		values = append(values, append([]float64(nil), row...))
	}

	return &schema.Table{
		Index:   index,
		Columns: append([]string(nil), overlap.Columns...),
		Values:  values,
	}
}
