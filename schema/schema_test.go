package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTableValidation covers the shape invariants enforced at build time.
func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		index   []int64
		columns []string
		values  [][]float64
		wantErr bool
	}{
		{
			name:    "valid table",
			index:   []int64{1, 2, 3},
			columns: []string{"a", "b"},
			values:  [][]float64{{1, 2}, {3, 4}, {5, 6}},
		},
		{
			name:    "empty table",
			index:   []int64{},
			columns: []string{"a"},
			values:  [][]float64{},
		},
		{
			name:    "index row mismatch",
			index:   []int64{1, 2},
			columns: []string{"a"},
			values:  [][]float64{{1}},
			wantErr: true,
		},
		{
			name:    "ragged row",
			index:   []int64{1, 2},
			columns: []string{"a", "b"},
			values:  [][]float64{{1, 2}, {3}},
			wantErr: true,
		},
		{
			name:    "unsorted index",
			index:   []int64{3, 1, 2},
			columns: []string{"a"},
			values:  [][]float64{{1}, {2}, {3}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := NewTable(tt.index, tt.columns, tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.index), tbl.Rows())
			assert.Equal(t, len(tt.columns), tbl.Cols())
		})
	}
}

// TestMissingSentinel checks the sentinel round-trip. NaN != NaN, so the
// predicate is the only safe test.
func TestMissingSentinel(t *testing.T) {
	assert.True(t, IsMissing(Missing()))
	assert.False(t, IsMissing(0))
	assert.False(t, IsMissing(-1.5))

	// Direct comparison with the sentinel is always false.
	assert.False(t, Missing() == Missing()) //nolint:staticcheck // the point of the test
}

// TestRowAt checks index lookup on the sorted index.
func TestRowAt(t *testing.T) {
	tbl, err := NewTable(
		[]int64{10, 20, 30},
		[]string{"a"},
		[][]float64{{1}, {2}, {3}},
	)
	require.NoError(t, err)

	row, ok := tbl.RowAt(20)
	require.True(t, ok)
	assert.Equal(t, []float64{2}, row)

	_, ok = tbl.RowAt(15)
	assert.False(t, ok)
	_, ok = tbl.RowAt(40)
	assert.False(t, ok)
}

// TestCloneIndependence verifies a clone shares no backing arrays.
func TestCloneIndependence(t *testing.T) {
	tbl, err := NewTable(
		[]int64{1, 2},
		[]string{"a"},
		[][]float64{{1}, {2}},
	)
	require.NoError(t, err)

	clone := tbl.Clone()
	clone.Values[0][0] = 99
	clone.Index[0] = 99
	clone.Columns[0] = "z"

	assert.Equal(t, 1.0, tbl.Values[0][0])
	assert.Equal(t, int64(1), tbl.Index[0])
	assert.Equal(t, "a", tbl.Columns[0])
}

// TestFillMissing checks gap replacement leaves the source untouched.
func TestFillMissing(t *testing.T) {
	tbl := &Table{
		Index:   []int64{1, 2},
		Columns: []string{"a", "b"},
		Values: [][]float64{
			{1, Missing()},
			{Missing(), 4},
		},
	}
	require.True(t, tbl.HasMissing())

	filled := tbl.FillMissing(0)
	assert.False(t, filled.HasMissing())
	assert.Equal(t, [][]float64{{1, 0}, {0, 4}}, filled.Values)
	assert.True(t, tbl.HasMissing())
}

// TestMinMaxIndex checks the range accessors.
func TestMinMaxIndex(t *testing.T) {
	tbl, err := NewTable(
		[]int64{-5, 0, 17},
		[]string{"a"},
		[][]float64{{1}, {2}, {3}},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), tbl.MinIndex())
	assert.Equal(t, int64(17), tbl.MaxIndex())
}
