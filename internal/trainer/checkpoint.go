package trainer

import (
	"encoding/gob"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// checkpoint is the gob-encoded weight layout. The format is owned by this
// package; callers treat checkpoint files as opaque.
type checkpoint struct {
	Features   int
	EmbDim     int
	WindowSize int
	Mean       []float64
	Std        []float64
	Enc        []float64
	Dec        []float64
}

// Save serializes the model weights and feature statistics.
func (m *model) Save(w io.Writer) error {
	cp := checkpoint{
		Features:   m.features,
		EmbDim:     m.embDim,
		WindowSize: m.windowSize,
		Mean:       m.mean,
		Std:        m.std,
		Enc:        m.enc.RawMatrix().Data,
		Dec:        m.dec.RawMatrix().Data,
	}
	if err := gob.NewEncoder(w).Encode(cp); err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}
	return nil
}

// loadModel restores a model from a checkpoint stream.
func loadModel(r io.Reader) (*model, error) {
	var cp checkpoint
	if err := gob.NewDecoder(r).Decode(&cp); err != nil {
		return nil, fmt.Errorf("decoding checkpoint: %w", err)
	}
	flat := cp.WindowSize * cp.Features
	if flat <= 0 || cp.EmbDim <= 0 {
		return nil, fmt.Errorf("checkpoint has invalid shape (%d rows x %d features -> %d)", cp.WindowSize, cp.Features, cp.EmbDim)
	}
	if len(cp.Enc) != cp.EmbDim*flat || len(cp.Dec) != flat*cp.EmbDim {
		return nil, fmt.Errorf("checkpoint weight sizes do not match its shape")
	}
	if len(cp.Mean) != cp.Features || len(cp.Std) != cp.Features {
		return nil, fmt.Errorf("checkpoint feature statistics do not match its shape")
	}
	return &model{
		features:   cp.Features,
		embDim:     cp.EmbDim,
		windowSize: cp.WindowSize,
		mean:       cp.Mean,
		std:        cp.Std,
		enc:        mat.NewDense(cp.EmbDim, flat, cp.Enc),
		dec:        mat.NewDense(flat, cp.EmbDim, cp.Dec),
	}, nil
}
