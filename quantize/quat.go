package quantize

import "math"

// halfSqrt2 bounds every non-dominant component of a unit quaternion:
// if |q_k| is the largest of four components whose squares sum to 1, the
// remaining three each lie in [-sqrt(2)/2, sqrt(2)/2].
const halfSqrt2 = math.Sqrt2 / 2

// EncodeQuaternions packs quaternions with the smallest-three scheme:
// 4 bytes per Gaussian, the kept components mapped to [0,255] followed by
// the index of the dropped (largest-magnitude) component.
//
// The sign flip exploits q == -q: the whole quaternion is negated when
// needed so the dropped component is non-negative and recoverable from the
// unit-norm constraint alone.
func EncodeQuaternions(quats []float32) []uint8 {
	n := len(quats) / 4
	out := make([]uint8, 4*n)

	for i := 0; i < n; i++ {
		q := [4]float64{
			float64(quats[4*i]),
			float64(quats[4*i+1]),
			float64(quats[4*i+2]),
			float64(quats[4*i+3]),
		}

		// Defensive normalization; unit length is an invariant every
		// consumer re-establishes. A zero quaternion falls back to identity.
		norm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
		if norm == 0 {
			q = [4]float64{1, 0, 0, 0}
		} else {
			for j := range q {
				q[j] /= norm
			}
		}

		largest := 0
		for j := 1; j < 4; j++ {
			if math.Abs(q[j]) > math.Abs(q[largest]) {
				largest = j
			}
		}
		if q[largest] < 0 {
			for j := range q {
				q[j] = -q[j]
			}
		}

		k := 0
		for j := 0; j < 4; j++ {
			if j == largest {
				continue
			}
			out[4*i+k] = mapUnit(q[j])
			k++
		}
		out[4*i+3] = uint8(largest)
	}
	return out
}

// DecodeQuaternions reverses EncodeQuaternions, rebuilding the dropped
// component as sqrt(1 - sum of kept squares), clamped at zero against
// rounding.
func DecodeQuaternions(packed []uint8) []float32 {
	n := len(packed) / 4
	out := make([]float32, 4*n)

	for i := 0; i < n; i++ {
		largest := int(packed[4*i+3])

		var kept [3]float64
		var sumSq float64
		for j := 0; j < 3; j++ {
			kept[j] = unmapUnit(packed[4*i+j])
			sumSq += kept[j] * kept[j]
		}

		dropped := 0.0
		if rem := 1 - sumSq; rem > 0 {
			dropped = math.Sqrt(rem)
		}

		var q [4]float64
		k := 0
		for j := 0; j < 4; j++ {
			if j == largest {
				q[j] = dropped
				continue
			}
			q[j] = kept[k]
			k++
		}

		norm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
		if norm > 0 {
			for j := range q {
				q[j] /= norm
			}
		}
		for j := 0; j < 4; j++ {
			out[4*i+j] = float32(q[j])
		}
	}
	return out
}

// mapUnit maps [-sqrt(2)/2, sqrt(2)/2] to [0,255].
func mapUnit(v float64) uint8 {
	u := math.Round((v/halfSqrt2 + 1) / 2 * 255)
	if u < 0 {
		u = 0
	}
	if u > 255 {
		u = 255
	}
	return uint8(u)
}

// unmapUnit inverts mapUnit.
func unmapUnit(u uint8) float64 {
	return (float64(u)/255*2 - 1) * halfSqrt2
}
