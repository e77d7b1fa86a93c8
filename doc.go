// Package splatpack encodes batches of anisotropic 3D Gaussian primitives
// ("splats") into a compact, quantized, web-deliverable archive: a tar
// container holding a meta.json document and five lossless WebP attribute
// planes.
//
// The pipeline reorders Gaussians along a Morton curve for locality,
// quantizes positions and opacity with fixed-width schemes, scales and
// color with learned 256-entry codebooks, packs quaternions with the
// smallest-three scheme, and assembles everything into the archive. It is
// a pure function of its input; determinism is controlled by WithSeed.
//
// Basic usage:
//
//	data, err := splatpack.Encode(ctx, gaussians, camera,
//	    splatpack.WithSeed(42),
//	    splatpack.WithLogger(splatpack.NewJSONLogger(slog.LevelInfo)),
//	)
//
// The format is intentionally lossy; see the quantize package for the
// per-attribute error bounds and the archive package for the container
// layout.
package splatpack
