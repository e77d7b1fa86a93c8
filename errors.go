package splatpack

import "errors"

var (
	// ErrEmptyBatch is returned when Encode is called with zero Gaussians.
	// An empty batch cannot be packed into a plane and fails fast.
	ErrEmptyBatch = errors.New("splatpack: empty gaussian batch")

	// ErrInvalidShape is returned when the attribute slices of a batch
	// disagree on the Gaussian count.
	ErrInvalidShape = errors.New("splatpack: invalid batch shape")

	// ErrNonFinite is returned when the input contains NaN or Inf values
	// and validation is enabled (the default).
	ErrNonFinite = errors.New("splatpack: non-finite input")
)
