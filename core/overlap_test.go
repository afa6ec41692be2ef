package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// mustTable builds a table for tests and fails fast on invalid shape.
func mustTable(t *testing.T, index []int64, columns []string, values [][]float64) *schema.Table {
	t.Helper()
	tbl, err := schema.NewTable(index, columns, values)
	require.NoError(t, err)
	return tbl
}

// TestResolveOverlapBasic checks the join over a partially shared range.
func TestResolveOverlapBasic(t *testing.T) {
	x1 := mustTable(t,
		[]int64{0, 1, 2, 3, 4},
		[]string{"a"},
		[][]float64{{10}, {11}, {12}, {13}, {14}},
	)
	x2 := mustTable(t,
		[]int64{2, 3, 4, 5, 6},
		[]string{"b"},
		[][]float64{{22}, {23}, {24}, {25}, {26}},
	)

	overlap, err := ResolveOverlap(x1, x2)
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3, 4}, overlap.Index)
	assert.Equal(t, []string{"a", "b"}, overlap.Columns)
	assert.Equal(t, [][]float64{{12, 22}, {13, 23}, {14, 24}}, overlap.Values)
}

// TestResolveOverlapDifferentRates checks the outer join between a dense and
// a sparse series: every timestamp inside the bounds survives, and cells the
// sparse series never observed stay missing.
func TestResolveOverlapDifferentRates(t *testing.T) {
	fast := mustTable(t,
		[]int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		[]string{"f"},
		[][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}, {10}},
	)
	slow := mustTable(t,
		[]int64{0, 5, 10},
		[]string{"s"},
		[][]float64{{100}, {105}, {110}},
	)

	overlap, err := ResolveOverlap(fast, slow)
	require.NoError(t, err)

	require.Equal(t, 11, overlap.Rows())
	assert.Equal(t, []string{"f", "s"}, overlap.Columns)

	row, ok := overlap.RowAt(5)
	require.True(t, ok)
	assert.Equal(t, []float64{5, 105}, row)

	row, ok = overlap.RowAt(3)
	require.True(t, ok)
	assert.Equal(t, 3.0, row[0])
	assert.True(t, schema.IsMissing(row[1]))
}

// TestResolveOverlapDisjoint verifies that series without a shared range are
// rejected with the typed sentinel.
func TestResolveOverlapDisjoint(t *testing.T) {
	x1 := mustTable(t, []int64{0, 1, 2}, []string{"a"}, [][]float64{{1}, {2}, {3}})
	x2 := mustTable(t, []int64{10, 11, 12}, []string{"b"}, [][]float64{{1}, {2}, {3}})

	_, err := ResolveOverlap(x1, x2)
	assert.ErrorIs(t, err, schema.ErrEmptyOverlap)

	// Order of arguments must not matter.
	_, err = ResolveOverlap(x2, x1)
	assert.ErrorIs(t, err, schema.ErrEmptyOverlap)
}

// TestResolveOverlapEmptyInput verifies that an empty series counts as no
// overlap rather than panicking on bounds.
func TestResolveOverlapEmptyInput(t *testing.T) {
	empty := mustTable(t, []int64{}, []string{"a"}, [][]float64{})
	x2 := mustTable(t, []int64{0, 1}, []string{"b"}, [][]float64{{1}, {2}})

	_, err := ResolveOverlap(empty, x2)
	assert.ErrorIs(t, err, schema.ErrEmptyOverlap)
}

// TestResolveOverlapSingleSharedIndex checks the boundary where the shared
// range collapses to one timestamp.
func TestResolveOverlapSingleSharedIndex(t *testing.T) {
	x1 := mustTable(t, []int64{0, 1, 2}, []string{"a"}, [][]float64{{1}, {2}, {3}})
	x2 := mustTable(t, []int64{2, 3, 4}, []string{"b"}, [][]float64{{20}, {30}, {40}})

	overlap, err := ResolveOverlap(x1, x2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, overlap.Index)
	assert.Equal(t, [][]float64{{3, 20}}, overlap.Values)
}

// TestResolveOverlapDoesNotMutateInputs confirms the resolver is pure.
func TestResolveOverlapDoesNotMutateInputs(t *testing.T) {
	x1 := mustTable(t, []int64{0, 1, 2}, []string{"a"}, [][]float64{{1}, {2}, {3}})
	x2 := mustTable(t, []int64{1, 2, 3}, []string{"b"}, [][]float64{{10}, {20}, {30}})
	before1 := x1.Clone()
	before2 := x2.Clone()

	_, err := ResolveOverlap(x1, x2)
	require.NoError(t, err)

	assert.Equal(t, before1, x1)
	assert.Equal(t, before2, x2)
}
