package quantize

import (
	"math"
	"math/rand"
	"testing"
)

func TestBuildCodebookBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	values := make([]float32, 10000)
	for i := range values {
		values[i] = rng.Float32()*8 - 4
	}

	cb, err := BuildCodebook(values, DefaultCodebookSize, DefaultKMeansIterations, 42)
	if err != nil {
		t.Fatalf("BuildCodebook: %v", err)
	}

	if len(cb.Centroids) != DefaultCodebookSize {
		t.Fatalf("table length %d, want %d", len(cb.Centroids), DefaultCodebookSize)
	}
	if cb.Len() > DefaultCodebookSize {
		t.Fatalf("used %d centroids, want <= %d", cb.Len(), DefaultCodebookSize)
	}

	for _, idx := range cb.Assign(values) {
		if int(idx) >= cb.Len() {
			t.Fatalf("index %d selects padding (used %d)", idx, cb.Len())
		}
	}
}

func TestBuildCodebookPadding(t *testing.T) {
	// Five distinct values: table is five exact centroids plus zero padding.
	values := []float32{1, 2, 3, 4, 5, 1, 2, 3, 4, 5}

	cb, err := BuildCodebook(values, 256, 20, 0)
	if err != nil {
		t.Fatalf("BuildCodebook: %v", err)
	}

	if cb.Len() != 5 {
		t.Fatalf("used %d centroids, want 5", cb.Len())
	}
	for i := cb.Len(); i < len(cb.Centroids); i++ {
		if cb.Centroids[i] != 0 {
			t.Fatalf("padding entry %d = %v, want 0", i, cb.Centroids[i])
		}
	}

	// Exact reconstruction with fewer distinct values than clusters.
	idx := cb.Assign(values)
	for i, v := range values {
		if got := cb.Lookup(idx[i]); got != v {
			t.Errorf("value %v reconstructed as %v", v, got)
		}
	}
}

func TestBuildCodebookDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	values := make([]float32, 4000)
	for i := range values {
		values[i] = float32(rng.NormFloat64())
	}

	a, err := BuildCodebook(values, 64, 20, 1234)
	if err != nil {
		t.Fatalf("BuildCodebook: %v", err)
	}
	b, err := BuildCodebook(values, 64, 20, 1234)
	if err != nil {
		t.Fatalf("BuildCodebook: %v", err)
	}
	for i := range a.Centroids {
		if a.Centroids[i] != b.Centroids[i] {
			t.Fatalf("centroid %d differs across runs with equal seed", i)
		}
	}
}

func TestBuildCodebookReconstruction(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	values := make([]float32, 8000)
	for i := range values {
		values[i] = rng.Float32()
	}

	cb, err := BuildCodebook(values, 256, 20, 7)
	if err != nil {
		t.Fatalf("BuildCodebook: %v", err)
	}

	idx := cb.Assign(values)
	var worst float64
	for i, v := range values {
		if d := math.Abs(float64(v - cb.Lookup(idx[i]))); d > worst {
			worst = d
		}
	}
	// 256 clusters over a unit interval; generous bound on cell width.
	if worst > 0.05 {
		t.Errorf("worst reconstruction error %v", worst)
	}
}

func TestBuildCodebookErrors(t *testing.T) {
	if _, err := BuildCodebook(nil, 256, 20, 0); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := BuildCodebook([]float32{1}, 0, 20, 0); err == nil {
		t.Error("expected error for size 0")
	}
	if _, err := BuildCodebook([]float32{1}, 300, 20, 0); err == nil {
		t.Error("expected error for size > 256")
	}
}
