package splatpack

import (
	"github.com/hupe1980/splatpack/codec"
	"github.com/hupe1980/splatpack/model"
	"github.com/hupe1980/splatpack/quantize"
)

type options struct {
	codec        codec.Codec
	logger       *Logger
	codebookSize int
	kmeansIters  int
	seed         int64
	transform    *model.Affine
	validate     bool
}

func defaultOptions() *options {
	return &options{
		codec:        codec.Default,
		logger:       NoopLogger(),
		codebookSize: quantize.DefaultCodebookSize,
		kmeansIters:  quantize.DefaultKMeansIterations,
		seed:         0,
		validate:     true,
	}
}

// Option configures an Encode call.
type Option func(*options)

// WithCodec configures the codec used for the metadata document.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger attaches a logger to the pipeline. The default discards all
// output.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithCodebookSize sets the centroid table size for scale and color
// codebooks. Must be in 1..256; indices are 8-bit.
func WithCodebookSize(size int) Option {
	return func(o *options) {
		o.codebookSize = size
	}
}

// WithKMeansIterations bounds the Lloyd's refinement per codebook.
func WithKMeansIterations(iters int) Option {
	return func(o *options) {
		o.kmeansIters = iters
	}
}

// WithSeed fixes the random seed driving codebook clustering. Equal seeds
// on equal input produce byte-identical archives; the seed is call-local
// state, never a package global.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithTransform applies an affine transform [L | t] to the batch before
// quantization, moving it from model space into world/metric space.
// Covariances are re-decomposed through the SVD, so L may include
// anisotropic scaling or shear.
func WithTransform(t model.Affine) Option {
	return func(o *options) {
		o.transform = &t
	}
}

// WithoutValidation skips the finiteness scan over the input. Non-finite
// values then propagate silently into the quantized output; only callers
// that validate upstream should use this.
func WithoutValidation() Option {
	return func(o *options) {
		o.validate = false
	}
}
