package morton

import (
	"math/rand"
	"sort"
	"testing"
)

func randomPositions(rng *rand.Rand, n int) []float32 {
	p := make([]float32, 3*n)
	for i := range p {
		p[i] = rng.Float32()*10 - 5
	}
	return p
}

func TestSpreadBits3(t *testing.T) {
	cases := []struct {
		in, want uint32
	}{
		{0, 0},
		{1, 1},
		{0b11, 0b1001},
		{0x3ff, 0x9249249},
		{0xfff, 0x9249249}, // only 10 bits participate
	}
	for _, tc := range cases {
		if got := spreadBits3(tc.in); got != tc.want {
			t.Errorf("spreadBits3(%#x) = %#x, want %#x", tc.in, got, tc.want)
		}
	}
}

func TestEncodeInterleaves(t *testing.T) {
	// x occupies bits 0,3,6..., y bits 1,4,7..., z bits 2,5,8...
	if got := encode(1, 0, 0); got != 0b001 {
		t.Errorf("encode(1,0,0) = %#b", got)
	}
	if got := encode(0, 1, 0); got != 0b010 {
		t.Errorf("encode(0,1,0) = %#b", got)
	}
	if got := encode(0, 0, 1); got != 0b100 {
		t.Errorf("encode(0,0,1) = %#b", got)
	}
	if got := encode(0x3ff, 0x3ff, 0x3ff); got != 0x3fffffff {
		t.Errorf("full code = %#x, want 0x3fffffff", got)
	}
}

func TestOrderIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	perm := Order(randomPositions(rng, 1000))

	seen := make([]bool, len(perm))
	for _, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			t.Fatalf("not a permutation: index %d", p)
		}
		seen[p] = true
	}
}

func TestOrderSortsCodes(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	positions := randomPositions(rng, 500)

	codes := Codes(positions)
	perm := Order(positions)
	for i := 1; i < len(perm); i++ {
		if codes[perm[i-1]] > codes[perm[i]] {
			t.Fatalf("codes out of order at %d", i)
		}
	}
}

func TestOrderCodeSetInvariantUnderShuffle(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	positions := randomPositions(rng, 300)
	n := len(positions) / 3

	shufflePerm := rng.Perm(n)
	shuffled := make([]float32, len(positions))
	for dst, src := range shufflePerm {
		copy(shuffled[3*dst:3*dst+3], positions[3*src:3*src+3])
	}

	a := Codes(positions)
	b := Codes(shuffled)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("code multiset changed at %d: %#x vs %#x", i, a[i], b[i])
		}
	}
}

func TestOrderOnSortedBatchIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	positions := randomPositions(rng, 400)
	n := len(positions) / 3

	perm := Order(positions)
	sorted := make([]float32, len(positions))
	for dst, src := range perm {
		copy(sorted[3*dst:3*dst+3], positions[3*src:3*src+3])
	}

	again := Order(sorted)
	for i := 0; i < n; i++ {
		if again[i] != i {
			t.Fatalf("re-sorting a sorted batch moved %d to %d", again[i], i)
		}
	}
}

func TestDegenerateAxis(t *testing.T) {
	// All points share x; the degenerate axis contributes a constant bit
	// pattern and must not produce NaN levels.
	positions := []float32{
		1, 0, 0,
		1, 2, 3,
		1, -4, 5,
	}
	perm := Order(positions)
	if len(perm) != 3 {
		t.Fatalf("perm length %d", len(perm))
	}
}
