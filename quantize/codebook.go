package quantize

import (
	"errors"
	"math/rand"

	"github.com/hupe1980/splatpack/internal/kmeans"
)

// DefaultCodebookSize is the table size matching 8-bit indices.
const DefaultCodebookSize = 256

// DefaultKMeansIterations bounds the Lloyd's refinement per codebook.
const DefaultKMeansIterations = 20

// ErrNoValues is returned when a codebook is requested for an empty input.
var ErrNoValues = errors.New("quantize: no values to build codebook from")

// Codebook is a learned table of up to Size centroids plus the machinery to
// map values onto 8-bit indices.
//
// Centroids always has length Size. When the input had fewer distinct
// values than Size, the trailing entries are zero padding: no index
// produced by Assign ever selects them.
type Codebook struct {
	Centroids []float32

	// used is the count of trained (non-padding) centroids.
	used int
}

// BuildCodebook clusters values into at most size centroids. The seed fully
// determines the result; pass the same seed to reproduce a table.
func BuildCodebook(values []float32, size, maxIter int, seed int64) (*Codebook, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	if size <= 0 || size > DefaultCodebookSize {
		return nil, errors.New("quantize: codebook size must be in 1..256")
	}

	rng := rand.New(rand.NewSource(seed))
	trained := kmeans.Train(values, size, maxIter, rng)

	centroids := make([]float32, size)
	copy(centroids, trained)

	return &Codebook{Centroids: centroids, used: len(trained)}, nil
}

// Len returns the number of trained centroids (padding excluded).
func (cb *Codebook) Len() int {
	return cb.used
}

// Assign maps each value to the index of its nearest trained centroid.
// Every returned index is < Len(). The lookup runs against the shared
// table; axes quantized separately reuse the same codebook without
// re-clustering.
func (cb *Codebook) Assign(values []float32) []uint8 {
	return kmeans.Assign(values, cb.Centroids[:cb.used])
}

// Lookup returns the centroid for an index.
func (cb *Codebook) Lookup(idx uint8) float32 {
	return cb.Centroids[idx]
}

// Dequantize reconstructs values from indices.
func (cb *Codebook) Dequantize(indices []uint8) []float32 {
	out := make([]float32, len(indices))
	for i, idx := range indices {
		out[i] = cb.Centroids[idx]
	}
	return out
}
