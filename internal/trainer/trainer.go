// Package trainer holds the default window encoder: a linear autoencoder
// trained with mini-batch SGD on flattened windows. The alignment core only
// depends on the contract.Trainer interface, so this implementation is
// swappable for an external model service without touching core logic.
package trainer

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
)

const (
	defaultLearningRate = 1e-3
	weightInitSeed      = 7
)

// Autoencoder trains linear autoencoder models.
type Autoencoder struct {
	// LearningRate overrides the SGD step size when positive.
	LearningRate float64
}

var _ contract.Trainer = (*Autoencoder)(nil) // Compile-time check

// New returns an Autoencoder trainer with default settings.
func New() *Autoencoder {
	return &Autoencoder{}
}

// Fit trains encoder/decoder weight matrices minimizing reconstruction MSE
// over the window source, one pass per epoch with gradients averaged over
// each mini-batch, and returns the per-epoch loss history. Window cells are
// z-scored per feature before training, so the loss stays in standardized
// units regardless of input magnitude; the statistics travel with the model
// and its checkpoint. Non-finite loss is reported as an error: the trainer
// does not retry or recover from divergence.
func (a *Autoencoder) Fit(ctx context.Context, train contract.WindowSource, hp contract.Hyperparams) (contract.Model, []float64, error) {
	flat := hp.WindowSize * hp.Features
	if flat == 0 {
		return nil, nil, fmt.Errorf("cannot train on empty windows (%d rows x %d features)", hp.WindowSize, hp.Features)
	}
	lr := a.LearningRate
	if lr <= 0 {
		lr = defaultLearningRate
	}
	batchSize := hp.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}

	m := newModel(hp.Features, hp.EmbDim, hp.WindowSize)
	m.mean, m.std = featureStats(train, hp.Features)
	grads := newGradients(flat, hp.EmbDim)

	x := make([]float64, flat)
	history := make([]float64, 0, hp.Epochs)
	for epoch := 0; epoch < hp.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, history, err
		}
		epochLoss := 0.0
		count := 0
		inBatch := 0
		for window := range train.All() {
			m.flattenStandardized(window, x)
			epochLoss += grads.accumulate(m, x)
			count++
			inBatch++
			if inBatch == batchSize {
				grads.apply(m, lr)
				inBatch = 0
			}
		}
		if inBatch > 0 {
			grads.apply(m, lr)
		}
		if count > 0 {
			epochLoss /= float64(count)
		}
		if math.IsNaN(epochLoss) || math.IsInf(epochLoss, 0) {
			return nil, history, fmt.Errorf("training diverged at epoch %d (loss %v); adjust learning rate or batch size", epoch+1, epochLoss)
		}
		history = append(history, epochLoss)
	}
	return m, history, nil
}

// Load restores a model from serialized weights written by Model.Save.
func (a *Autoencoder) Load(r io.Reader) (contract.Model, error) {
	return loadModel(r)
}

// model is a trained linear autoencoder: enc projects a flattened window
// down to the embedding, dec projects it back for the reconstruction loss.
// mean and std hold the per-feature training statistics used to standardize
// every window before it touches the weights.
type model struct {
	features   int
	embDim     int
	windowSize int
	mean       []float64
	std        []float64
	enc        *mat.Dense // embDim x flat
	dec        *mat.Dense // flat x embDim
}

var _ contract.Model = (*model)(nil) // Compile-time check

func newModel(features, embDim, windowSize int) *model {
	flat := windowSize * features
	rng := rand.New(rand.NewSource(weightInitSeed))
	scale := 1.0 / math.Sqrt(float64(flat))
	init := func(rows, cols int) *mat.Dense {
		data := make([]float64, rows*cols)
		for i := range data {
			data[i] = rng.NormFloat64() * scale
		}
		return mat.NewDense(rows, cols, data)
	}
	std := make([]float64, features)
	for j := range std {
		std[j] = 1
	}
	return &model{
		features:   features,
		embDim:     embDim,
		windowSize: windowSize,
		mean:       make([]float64, features),
		std:        std,
		enc:        init(embDim, flat),
		dec:        init(flat, embDim),
	}
}

// featureStats computes per-feature mean and standard deviation over every
// window row. A constant feature gets a unit deviation so standardization
// never divides by zero.
func featureStats(src contract.WindowSource, features int) ([]float64, []float64) {
	samples := make([][]float64, features)
	for window := range src.All() {
		for _, row := range window {
			for j, v := range row {
				samples[j] = append(samples[j], v)
			}
		}
	}
	mean := make([]float64, features)
	std := make([]float64, features)
	for j := range samples {
		mu, sigma := stat.MeanStdDev(samples[j], nil)
		if math.IsNaN(mu) {
			mu = 0
		}
		if sigma == 0 || math.IsNaN(sigma) {
			sigma = 1
		}
		mean[j] = mu
		std[j] = sigma
	}
	return mean, std
}

// gradients accumulates weight gradients across a mini-batch.
type gradients struct {
	encGrad *mat.Dense
	decGrad *mat.Dense
	samples int
}

func newGradients(flat, embDim int) *gradients {
	return &gradients{
		encGrad: mat.NewDense(embDim, flat, nil),
		decGrad: mat.NewDense(flat, embDim, nil),
	}
}

// accumulate adds the gradient contribution of a single flattened window and
// returns its reconstruction MSE under the current weights.
func (g *gradients) accumulate(m *model, x []float64) float64 {
	flat := len(x)
	xv := mat.NewVecDense(flat, x)

	var z mat.VecDense
	z.MulVec(m.enc, xv) // embedding

	var xr mat.VecDense
	xr.MulVec(m.dec, &z) // reconstruction

	var residual mat.VecDense
	residual.SubVec(&xr, xv)
	loss := mat.Dot(&residual, &residual) / float64(flat)

	// Gradients of 0.5*||dec*enc*x - x||^2 wrt dec and enc.
	var gradDec mat.Dense
	gradDec.Outer(1, &residual, &z)
	g.decGrad.Add(g.decGrad, &gradDec)

	var backprop mat.VecDense
	backprop.MulVec(m.dec.T(), &residual)
	var gradEnc mat.Dense
	gradEnc.Outer(1, &backprop, xv)
	g.encGrad.Add(g.encGrad, &gradEnc)

	g.samples++
	return loss
}

// apply performs one averaged SGD update and resets the accumulators.
func (g *gradients) apply(m *model, lr float64) {
	if g.samples == 0 {
		return
	}
	step := lr / float64(g.samples)

	var scaled mat.Dense
	scaled.Scale(step, g.encGrad)
	m.enc.Sub(m.enc, &scaled)

	scaled.Reset()
	scaled.Scale(step, g.decGrad)
	m.dec.Sub(m.dec, &scaled)

	g.encGrad.Zero()
	g.decGrad.Zero()
	g.samples = 0
}

// Encode produces one embedding vector per window, in source order. The
// source shape must match what the model was trained on; a mismatch (e.g. a
// checkpoint restored against a request with a different window size) is an
// error, never a silently misshapen output.
func (m *model) Encode(ctx context.Context, src contract.WindowSource) ([][]float64, error) {
	if src.WindowSize() != m.windowSize || src.Features() != m.features {
		return nil, fmt.Errorf("model expects windows of %d rows x %d features, got %d x %d",
			m.windowSize, m.features, src.WindowSize(), src.Features())
	}
	flat := m.windowSize * m.features
	x := make([]float64, flat)
	out := make([][]float64, 0, src.Len())
	for window := range src.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.flattenStandardized(window, x)
		var z mat.VecDense
		z.MulVec(m.enc, mat.NewVecDense(flat, x))
		emb := make([]float64, m.embDim)
		copy(emb, z.RawVector().Data)
		out = append(out, emb)
	}
	return out, nil
}

// flattenStandardized copies a [rows][cols] window into dst row-major,
// z-scoring each cell with the model's per-feature statistics.
func (m *model) flattenStandardized(window [][]float64, dst []float64) {
	n := 0
	for _, row := range window {
		for j, v := range row {
			dst[n] = (v - m.mean[j]) / m.std[j]
			n++
		}
	}
}
