// Package model defines the typed data exchanged with the upstream
// geometry/predictor layer: the Gaussian batch, camera intrinsics, and
// affine transforms.
//
// These types are plain data; all behavior lives in the pipeline packages.
package model
