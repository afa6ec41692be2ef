package core

import (
	"fmt"
	"iter"
	"math/rand"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// WindowSeq is a lazy, finite, restartable sequence of equal-length
// contiguous row slices over a gap-filled table: one window per valid start
// offset, sliding by one row, for a total of rows - size windows. Windows
// share backing arrays with the source values and must not be mutated.
type WindowSeq struct {
	values [][]float64
	size   int
	order  []int // nil means temporal order
}

var _ contract.WindowSource = (*WindowSeq)(nil) // Compile-time check

// NewWindowSeq validates the window size against the available rows and
// returns the temporal-order window sequence. The source values must be
// gap-filled already; the builder does not touch missing cells.
func NewWindowSeq(values [][]float64, size int) (*WindowSeq, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: window size must be positive, got %d", schema.ErrInvalidWindowSize, size)
	}
	if size >= len(values) {
		return nil, fmt.Errorf("%w: window size %d must be smaller than the %d available rows",
			schema.ErrInvalidWindowSize, size, len(values))
	}
	return &WindowSeq{values: values, size: size}, nil
}

// Len returns the number of windows: rows - size.
func (s *WindowSeq) Len() int {
	return len(s.values) - s.size
}

// WindowSize returns the number of rows per window.
func (s *WindowSeq) WindowSize() int {
	return s.size
}

// Features returns the number of columns per window row.
func (s *WindowSeq) Features() int {
	if len(s.values) == 0 {
		return 0
	}
	return len(s.values[0])
}

// All yields each window in this sequence's order. The sequence is
// restartable: iterating twice yields identical content.
func (s *WindowSeq) All() iter.Seq[[][]float64] {
	return func(yield func([][]float64) bool) {
		for n := range s.Len() {
			start := n
			if s.order != nil {
				start = s.order[n]
			}
			if !yield(s.values[start : start+s.size]) {
				return
			}
		}
	}
}

// Shuffled returns a view over the same underlying windows presented in a
// fixed randomized order derived from seed. The view is itself restartable;
// the permutation is drawn once so repeated passes see the same order.
func (s *WindowSeq) Shuffled(seed int64) *WindowSeq {
	rng := rand.New(rand.NewSource(seed))
	return &WindowSeq{
		values: s.values,
		size:   s.size,
		order:  rng.Perm(s.Len()),
	}
}
