package gmath

import "math"

// svd tolerances. Covariances are tiny dense matrices, so a fixed sweep
// budget always converges in practice; there is no retry path.
const (
	jacobiTol     = 1e-12
	jacobiMaxIter = 60
)

// SVD3 computes a singular value decomposition A = U * diag(sigma) * V^T of
// a 3x3 row-major matrix using one-sided Jacobi rotations. Singular values
// are returned in descending order with their columns permuted to match.
func SVD3(a [9]float64) (u [9]float64, sigma [3]float64, v [9]float64) {
	u = a
	v = [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}

	for iter := 0; iter < jacobiMaxIter; iter++ {
		if !jacobiSweep(&u, &v) {
			break
		}
	}

	// Singular values are the column norms of the rotated A.
	for j := 0; j < 3; j++ {
		sum := u[j]*u[j] + u[3+j]*u[3+j] + u[6+j]*u[6+j]
		sigma[j] = math.Sqrt(sum)
		if sigma[j] > 1e-300 {
			inv := 1 / sigma[j]
			u[j] *= inv
			u[3+j] *= inv
			u[6+j] *= inv
		}
	}

	sortSingular(&u, &sigma, &v)
	return u, sigma, v
}

// jacobiSweep orthogonalizes every column pair once. Reports whether any
// rotation was applied.
func jacobiSweep(u, v *[9]float64) bool {
	changed := false
	for i := 0; i < 2; i++ {
		for j := i + 1; j < 3; j++ {
			var alpha, beta, gamma float64
			for k := 0; k < 3; k++ {
				alpha += u[3*k+i] * u[3*k+i]
				beta += u[3*k+j] * u[3*k+j]
				gamma += u[3*k+i] * u[3*k+j]
			}

			if alpha < 1e-300 || beta < 1e-300 {
				continue
			}
			if math.Abs(gamma) < jacobiTol*math.Sqrt(alpha*beta) {
				continue
			}

			changed = true
			rotateColumns(u, v, i, j, alpha, beta, gamma)
		}
	}
	return changed
}

func rotateColumns(u, v *[9]float64, i, j int, alpha, beta, gamma float64) {
	zeta := (beta - alpha) / (2 * gamma)
	var t float64
	if zeta > 0 {
		t = 1 / (zeta + math.Sqrt(1+zeta*zeta))
	} else {
		t = -1 / (-zeta + math.Sqrt(1+zeta*zeta))
	}
	c := 1 / math.Sqrt(1+t*t)
	s := c * t

	for k := 0; k < 3; k++ {
		t1, t2 := u[3*k+i], u[3*k+j]
		u[3*k+i] = c*t1 - s*t2
		u[3*k+j] = s*t1 + c*t2

		t1, t2 = v[3*k+i], v[3*k+j]
		v[3*k+i] = c*t1 - s*t2
		v[3*k+j] = s*t1 + c*t2
	}
}

// sortSingular orders sigma descending, permuting the columns of U and V to
// match. Three elements, so a fixed bubble pass is enough.
func sortSingular(u *[9]float64, sigma *[3]float64, v *[9]float64) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2-i; j++ {
			if sigma[j] < sigma[j+1] {
				sigma[j], sigma[j+1] = sigma[j+1], sigma[j]
				swapColumns(u, j, j+1)
				swapColumns(v, j, j+1)
			}
		}
	}
}

func swapColumns(m *[9]float64, i, j int) {
	for k := 0; k < 3; k++ {
		m[3*k+i], m[3*k+j] = m[3*k+j], m[3*k+i]
	}
}

// Det3 returns the determinant of a row-major 3x3 matrix.
func Det3(m [9]float64) float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Mul3 returns the row-major product a*b of two 3x3 matrices.
func Mul3(a, b [9]float64) [9]float64 {
	var out [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[3*i+k] * b[3*k+j]
			}
			out[3*i+j] = sum
		}
	}
	return out
}

// Transpose3 returns the transpose of a row-major 3x3 matrix.
func Transpose3(m [9]float64) [9]float64 {
	return [9]float64{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}
