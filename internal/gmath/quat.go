package gmath

import "math"

// Quaternions are [w,x,y,z]. Matrices are row-major 3x3.

// Normalize4 scales q to unit length. A zero quaternion is left untouched;
// callers that care must check for it (see model.Gaussians3D.CheckFinite).
func Normalize4(q [4]float64) [4]float64 {
	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if n == 0 {
		return q
	}
	inv := 1 / n
	return [4]float64{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// QuaternionToMatrix converts a quaternion to its rotation matrix. The
// quaternion is normalized first, so scaled inputs are accepted.
func QuaternionToMatrix(q [4]float64) [9]float64 {
	q = Normalize4(q)
	w, x, y, z := q[0], q[1], q[2], q[3]
	return [9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	}
}

// MatrixToQuaternion converts a rotation matrix to a unit quaternion using
// Shepperd's method: four closed-form branches selected on the trace and
// the largest diagonal element, so the divisor s stays well away from zero
// in every branch. The result is normalized unconditionally.
func MatrixToQuaternion(m [9]float64) [4]float64 {
	m00, m01, m02 := m[0], m[1], m[2]
	m10, m11, m12 := m[3], m[4], m[5]
	m20, m21, m22 := m[6], m[7], m[8]

	var q [4]float64
	tr := m00 + m11 + m22

	switch {
	case tr > 0:
		s := 2 * math.Sqrt(1+tr)
		q[0] = 0.25 * s
		q[1] = (m21 - m12) / s
		q[2] = (m02 - m20) / s
		q[3] = (m10 - m01) / s
	case m00 >= m11 && m00 >= m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q[0] = (m21 - m12) / s
		q[1] = 0.25 * s
		q[2] = (m01 + m10) / s
		q[3] = (m02 + m20) / s
	case m11 >= m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q[0] = (m02 - m20) / s
		q[1] = (m01 + m10) / s
		q[2] = 0.25 * s
		q[3] = (m12 + m21) / s
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q[0] = (m10 - m01) / s
		q[1] = (m02 + m20) / s
		q[2] = (m12 + m21) / s
		q[3] = 0.25 * s
	}

	return Normalize4(q)
}

// CovarianceFromRotationScale builds C = R * diag(scale^2) * R^T.
func CovarianceFromRotationScale(q [4]float64, scale [3]float64) [9]float64 {
	r := QuaternionToMatrix(q)
	var rs [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rs[3*i+j] = r[3*i+j] * scale[j] * scale[j]
		}
	}
	return Mul3(rs, Transpose3(r))
}

// DecomposeCovariance factors a symmetric PSD covariance into a unit
// quaternion and three non-negative scales such that
// CovarianceFromRotationScale(q, s) reproduces the input within SVD
// tolerance. A U with det < 0 is a reflection; negating its last column
// (the direction of the smallest singular value) restores a proper
// rotation without disturbing the paired scale.
func DecomposeCovariance(c [9]float64) (q [4]float64, scale [3]float64) {
	u, sigma, _ := SVD3(c)

	if Det3(u) < 0 {
		u[2] = -u[2]
		u[5] = -u[5]
		u[8] = -u[8]
	}

	for i := 0; i < 3; i++ {
		scale[i] = math.Sqrt(sigma[i])
	}
	return MatrixToQuaternion(u), scale
}
