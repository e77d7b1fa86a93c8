package splatpack

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/splatpack/archive"
	"github.com/hupe1980/splatpack/internal/gmath"
	"github.com/hupe1980/splatpack/internal/morton"
	"github.com/hupe1980/splatpack/model"
	"github.com/hupe1980/splatpack/plane"
	"github.com/hupe1980/splatpack/quantize"
)

// Encode converts a Gaussian batch and its camera intrinsics into the
// archive format: a tar container holding meta.json and five lossless WebP
// attribute planes.
//
// Encode is a pure function. The input batch is never mutated, no state
// survives the call, and concurrent Encode calls on separate batches need
// no locking. Determinism is controlled by WithSeed.
func Encode(ctx context.Context, g *model.Gaussians3D, cam model.Camera, opts ...Option) ([]byte, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	start := time.Now()
	out, width, height, err := encode(ctx, g, cam, o)
	o.logger.LogEncode(ctx, g.Len(), width, height, len(out), time.Since(start), err)
	return out, err
}

func encode(ctx context.Context, g *model.Gaussians3D, cam model.Camera, o *options) ([]byte, int, int, error) {
	n := g.Len()
	if n == 0 {
		return nil, 0, 0, ErrEmptyBatch
	}
	if err := g.CheckShape(); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	if o.validate {
		if err := g.CheckFinite(); err != nil {
			return nil, 0, 0, fmt.Errorf("%w: %v", ErrNonFinite, err)
		}
	}

	work := g.Clone()
	if o.transform != nil {
		gmath.ApplyAffine(work, *o.transform)
	}

	// Morton order groups spatial neighbors into plane neighbors, which is
	// where most of the WebP compression gain comes from.
	work.Permute(morton.Order(work.Means))

	width, height, err := plane.Dimensions(n)
	if err != nil {
		return nil, 0, 0, err
	}

	means := quantize.EncodeMeans(work.Means)
	quats := quantize.EncodeQuaternions(work.Quaternions)

	logScales := quantize.LogScales(work.Scales)
	scaleCB, err := quantize.BuildCodebook(logScales, o.codebookSize, o.kmeansIters, o.seed)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("splatpack: scale codebook: %w", err)
	}
	scaleIdx := scaleCB.Assign(logScales)

	sh0 := quantize.SH0FromColors(work.Colors)
	sh0CB, err := quantize.BuildCodebook(sh0, o.codebookSize, o.kmeansIters, o.seed+1)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("splatpack: sh0 codebook: %w", err)
	}
	sh0Idx := sh0CB.Assign(sh0)
	opacities := quantize.EncodeOpacities(work.Opacities)

	// sh0 plane interleaves the three color indices with opacity in alpha.
	sh0Data := make([]uint8, 4*n)
	for i := 0; i < n; i++ {
		sh0Data[4*i] = sh0Idx[3*i]
		sh0Data[4*i+1] = sh0Idx[3*i+1]
		sh0Data[4*i+2] = sh0Idx[3*i+2]
		sh0Data[4*i+3] = opacities[i]
	}

	jobs := []struct {
		name     string
		data     []uint8
		channels int
	}{
		{archive.MeansLowerFile, means.Lower, 3},
		{archive.MeansUpperFile, means.Upper, 3},
		{archive.QuatsFile, quats, 4},
		{archive.ScalesFile, scaleIdx, 3},
		{archive.SH0File, sh0Data, 4},
	}

	encoded := make([][]byte, len(jobs))
	var eg errgroup.Group
	for i, job := range jobs {
		eg.Go(func() error {
			data, err := plane.Encode(job.data, job.channels, n, width, height)
			if err != nil {
				return fmt.Errorf("splatpack: plane %s: %w", job.name, err)
			}
			encoded[i] = data
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, 0, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, 0, err
	}

	planes := make(map[string][]byte, len(jobs))
	for i, job := range jobs {
		planes[job.name] = encoded[i]
	}

	meta := archive.NewMeta(n, width, height, means.Ranges)
	meta.Scales.Codebook = scaleCB.Centroids
	meta.SH0.Codebook = sh0CB.Centroids
	meta.Camera = archive.CameraMeta{
		FocalLength: cam.FocalLength,
		ImageWidth:  cam.ImageWidth,
		ImageHeight: cam.ImageHeight,
	}

	out, err := archive.Write(meta, planes, o.codec)
	if err != nil {
		return nil, 0, 0, err
	}
	return out, width, height, nil
}

// ApplyTransform moves a batch by an affine transform [L | t] in place:
// means become L*mean + t and each covariance becomes L*C*L^T before being
// re-decomposed into quaternion and scale. Exposed for geometry layers that
// transform once and encode many times.
func ApplyTransform(g *model.Gaussians3D, t model.Affine) {
	gmath.ApplyAffine(g, t)
}
