// Package morton orders 3D points along a Z-order curve. Neighbors in the
// resulting order are spatially close, which is what the downstream planes
// need for compression locality; the order carries no other meaning.
package morton

import "sort"

// bits per axis; three interleaved axes give a 30-bit code.
const axisBits = 10
const axisLevels = 1 << axisBits

// spreadBits3 spaces the low 10 bits of x two zero bits apart so three
// axes interleave without collisions.
func spreadBits3(x uint32) uint32 {
	x &= 0x3ff
	x = (x | x<<16) & 0x30000ff
	x = (x | x<<8) & 0x300f00f
	x = (x | x<<4) & 0x30c30c3
	x = (x | x<<2) & 0x9249249
	return x
}

// encode interleaves three 10-bit axis values into a single Morton code.
func encode(x, y, z uint32) uint32 {
	return spreadBits3(x) | spreadBits3(y)<<1 | spreadBits3(z)<<2
}

// Codes quantizes each position to a 1024-level grid spanning the batch's
// own bounding box and returns the Morton code per point. An axis with zero
// extent maps to level 0 everywhere.
func Codes(positions []float32) []uint32 {
	n := len(positions) / 3

	var mins, maxs [3]float32
	for a := 0; a < 3; a++ {
		mins[a], maxs[a] = positions[a], positions[a]
	}
	for i := 1; i < n; i++ {
		for a := 0; a < 3; a++ {
			v := positions[3*i+a]
			if v < mins[a] {
				mins[a] = v
			}
			if v > maxs[a] {
				maxs[a] = v
			}
		}
	}

	var scale [3]float32
	for a := 0; a < 3; a++ {
		if r := maxs[a] - mins[a]; r > 0 {
			scale[a] = (axisLevels - 1) / r
		}
	}

	codes := make([]uint32, n)
	for i := 0; i < n; i++ {
		var q [3]uint32
		for a := 0; a < 3; a++ {
			level := (positions[3*i+a] - mins[a]) * scale[a]
			if level < 0 {
				level = 0
			}
			if level > axisLevels-1 {
				level = axisLevels - 1
			}
			q[a] = uint32(level)
		}
		codes[i] = encode(q[0], q[1], q[2])
	}
	return codes
}

// Order returns the permutation that sorts positions by ascending Morton
// code. The sort is stable, so an already-ordered batch yields the identity
// permutation.
func Order(positions []float32) []int {
	codes := Codes(positions)
	perm := make([]int, len(codes))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return codes[perm[i]] < codes[perm[j]]
	})
	return perm
}
