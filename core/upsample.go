package core

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// Upsample fills missing cells of the overlap table up to the finer source's
// time resolution, so the output row count equals the overlap row count. The
// fill method is either per-column mean imputation or joint k-nearest-neighbor
// imputation with nNeighbors donors.
func Upsample(overlap *schema.Table, method schema.ImputeMethod, nNeighbors int) (*schema.Table, error) {
	switch method {
	case schema.MeanImpute:
		return imputeMean(overlap), nil
	case schema.KNNImpute:
		return imputeKNN(overlap, nNeighbors)
	default:
		return nil, fmt.Errorf("%w: imputation method %q", schema.ErrInvalidParameter, method)
	}
}

// imputeMean replaces each missing cell with its column's mean over all
// non-missing values. Columns with no observed values stay missing.
func imputeMean(t *schema.Table) *schema.Table {
	out := t.Clone()
	means := columnMeans(t)
	for _, row := range out.Values {
		for j, v := range row {
			if schema.IsMissing(v) {
				row[j] = means[j]
			}
		}
	}
	return out
}

// columnMeans computes per-column means over observed values only. A column
// with no observed value yields the missing sentinel.
func columnMeans(t *schema.Table) []float64 {
	means := make([]float64, t.Cols())
	observed := make([]float64, 0, t.Rows())
	for j := range t.Cols() {
		observed = observed[:0]
		for _, row := range t.Values {
			if !schema.IsMissing(row[j]) {
				observed = append(observed, row[j])
			}
		}
		if len(observed) == 0 {
			means[j] = schema.Missing()
			continue
		}
		means[j] = stat.Mean(observed, nil)
	}
	return means
}

// imputeKNN replaces missing cells using k-nearest-neighbor imputation across
// all columns jointly. Donor rows are the fully observed rows; a target row's
// distance to a donor is the NaN-aware Euclidean distance over the target's
// observed coordinates, scaled up by the fraction of coordinates used (the
// convention of sklearn's KNNImputer, which the imputation mirrors).
func imputeKNN(t *schema.Table, k int) (*schema.Table, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: n_neighbors must be positive, got %d", schema.ErrInvalidParameter, k)
	}

	var donors []int
	for i, row := range t.Values {
		complete := true
		for _, v := range row {
			if schema.IsMissing(v) {
				complete = false
				break
			}
		}
		if complete {
			donors = append(donors, i)
		}
	}
	if k > len(donors) {
		return nil, fmt.Errorf("%w: n_neighbors %d exceeds the %d fully observed rows",
			schema.ErrInvalidParameter, k, len(donors))
	}

	out := t.Clone()
	for i, row := range out.Values {
		if !rowHasMissing(row) {
			continue
		}
		nearest := nearestDonors(t, i, donors, k)
		for j, v := range row {
			if !schema.IsMissing(v) {
				continue
			}
			sum := 0.0
			for _, d := range nearest {
				sum += t.Values[d][j]
			}
			row[j] = sum / float64(len(nearest))
		}
	}
	return out, nil
}

func rowHasMissing(row []float64) bool {
	for _, v := range row {
		if schema.IsMissing(v) {
			return true
		}
	}
	return false
}

// nearestDonors returns the k donor row offsets closest to target row i.
func nearestDonors(t *schema.Table, i int, donors []int, k int) []int {
	type cand struct {
		row  int
		dist float64
	}
	cands := make([]cand, 0, len(donors))
	for _, d := range donors {
		if d == i {
			continue
		}
		cands = append(cands, cand{row: d, dist: nanEuclidean(t.Values[i], t.Values[d])})
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].dist != cands[b].dist {
			return cands[a].dist < cands[b].dist
		}
		return cands[a].row < cands[b].row
	})
	if k > len(cands) {
		k = len(cands)
	}
	nearest := make([]int, k)
	for n := range k {
		nearest[n] = cands[n].row
	}
	return nearest
}

// nanEuclidean computes the Euclidean distance over coordinates observed in
// both rows, scaled by sqrt(total/observed) to stay comparable across rows
// with different missingness.
func nanEuclidean(a, b []float64) float64 {
	sum := 0.0
	observed := 0
	for j := range a {
		if schema.IsMissing(a[j]) || schema.IsMissing(b[j]) {
			continue
		}
		d := a[j] - b[j]
		sum += d * d
		observed++
	}
	if observed == 0 {
		return math.Inf(1)
	}
	return math.Sqrt(sum * float64(len(a)) / float64(observed))
}
