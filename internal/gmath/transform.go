package gmath

import "github.com/hupe1980/splatpack/model"

// ApplyAffine transforms every Gaussian in place by [L | t]: means become
// L*mean + t and covariances become L*C*L^T, then are re-decomposed into
// quaternion and scale. Re-decomposition through the SVD is mandatory:
// L may carry anisotropic scaling or shear that no algebraic quaternion
// composition can express.
func ApplyAffine(g *model.Gaussians3D, t model.Affine) {
	n := g.Len()
	l := [9]float64(t.Linear)
	lt := Transpose3(l)

	for i := 0; i < n; i++ {
		mean := g.Means[3*i : 3*i+3]
		mx, my, mz := float64(mean[0]), float64(mean[1]), float64(mean[2])
		mean[0] = float32(l[0]*mx + l[1]*my + l[2]*mz + t.Translation[0])
		mean[1] = float32(l[3]*mx + l[4]*my + l[5]*mz + t.Translation[1])
		mean[2] = float32(l[6]*mx + l[7]*my + l[8]*mz + t.Translation[2])

		q := [4]float64{
			float64(g.Quaternions[4*i]),
			float64(g.Quaternions[4*i+1]),
			float64(g.Quaternions[4*i+2]),
			float64(g.Quaternions[4*i+3]),
		}
		s := [3]float64{
			float64(g.Scales[3*i]),
			float64(g.Scales[3*i+1]),
			float64(g.Scales[3*i+2]),
		}

		cov := CovarianceFromRotationScale(q, s)
		cov = Mul3(Mul3(l, cov), lt)
		q, s = DecomposeCovariance(cov)

		g.Quaternions[4*i] = float32(q[0])
		g.Quaternions[4*i+1] = float32(q[1])
		g.Quaternions[4*i+2] = float32(q[2])
		g.Quaternions[4*i+3] = float32(q[3])
		g.Scales[3*i] = float32(s[0])
		g.Scales[3*i+1] = float32(s[1])
		g.Scales[3*i+2] = float32(s[2])
	}
}
