// Package kmeans clusters scalar values with Lloyd's algorithm. It backs
// the codebook builder: per-attribute tables of at most 256 centroids.
package kmeans

import (
	"math"
	"math/rand"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// Train clusters values into at most k centroids and returns them sorted
// ascending. The RNG drives initialization and empty-cluster reseeding;
// callers pass an explicitly seeded instance so runs are reproducible.
//
// When the input has fewer than k distinct values the distinct values
// themselves are the exact clustering, so they are returned directly and
// the result is shorter than k.
func Train(values []float32, k, maxIter int, rng *rand.Rand) []float32 {
	if len(values) == 0 || k <= 0 {
		return nil
	}

	// Distinct-value census over the raw bit patterns.
	distinct := roaring.New()
	for _, v := range values {
		distinct.Add(math.Float32bits(v))
	}

	if int(distinct.GetCardinality()) <= k {
		out := make([]float32, 0, distinct.GetCardinality())
		distinct.Iterate(func(bits uint32) bool {
			out = append(out, math.Float32frombits(bits))
			return true
		})
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		return out
	}

	centroids := initCentroids(values, k, rng)
	assignments := make([]int, len(values))

	for iter := 0; iter < maxIter; iter++ {
		if !assign(values, centroids, assignments) && iter > 0 {
			break
		}
		update(values, centroids, assignments, rng)
	}

	sort.Slice(centroids, func(i, j int) bool { return centroids[i] < centroids[j] })
	return centroids
}

// initCentroids seeds the clustering from k random data points.
func initCentroids(values []float32, k int, rng *rand.Rand) []float32 {
	centroids := make([]float32, k)
	perm := rng.Perm(len(values))
	for i := 0; i < k; i++ {
		centroids[i] = values[perm[i]]
	}
	return centroids
}

// assign maps every value to its nearest centroid. Reports whether any
// assignment changed.
func assign(values, centroids []float32, assignments []int) bool {
	changed := false
	for i, v := range values {
		best := 0
		minDist := float32(math.MaxFloat32)
		for j, c := range centroids {
			d := (v - c) * (v - c)
			if d < minDist {
				minDist = d
				best = j
			}
		}
		if assignments[i] != best {
			assignments[i] = best
			changed = true
		}
	}
	return changed
}

// update recomputes each centroid as the mean of its members. Empty
// clusters are reseeded from a random data point.
func update(values, centroids []float32, assignments []int, rng *rand.Rand) {
	sums := make([]float64, len(centroids))
	counts := make([]int, len(centroids))

	for i, v := range values {
		sums[assignments[i]] += float64(v)
		counts[assignments[i]]++
	}

	for j := range centroids {
		if counts[j] > 0 {
			centroids[j] = float32(sums[j] / float64(counts[j]))
		} else {
			centroids[j] = values[rng.Intn(len(values))]
		}
	}
}

// Nearest returns the index of the centroid closest to v. Centroids must be
// sorted ascending, as returned by Train; the lookup is a binary search.
func Nearest(centroids []float32, v float32) int {
	i := sort.Search(len(centroids), func(j int) bool { return centroids[j] >= v })
	if i == 0 {
		return 0
	}
	if i == len(centroids) {
		return len(centroids) - 1
	}
	if v-centroids[i-1] <= centroids[i]-v {
		return i - 1
	}
	return i
}

// Assign maps each value to its nearest centroid index.
func Assign(values, centroids []float32) []uint8 {
	out := make([]uint8, len(values))
	for i, v := range values {
		out[i] = uint8(Nearest(centroids, v))
	}
	return out
}
