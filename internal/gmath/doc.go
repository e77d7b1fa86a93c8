// Package gmath is the numeric kernel for Gaussian geometry: a fixed-size
// Jacobi SVD, Shepperd's matrix-to-quaternion conversion, covariance
// build/decompose, and batch affine transforms.
//
// Internals run in float64 for headroom; the batch surfaces are float32.
package gmath
