// Package archive assembles the final artifact: a metadata document plus
// the encoded attribute planes in a single uncompressed tar container.
package archive

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/splatpack/codec"
	"github.com/hupe1980/splatpack/quantize"
)

// File names inside the container. Decoders address entries by these
// names, so they are part of the format.
const (
	MetaFile       = "meta.json"
	MeansLowerFile = "means_l.webp"
	MeansUpperFile = "means_u.webp"
	QuatsFile      = "quats.webp"
	ScalesFile     = "scales.webp"
	SH0File        = "sh0.webp"
)

// PlaneFiles lists the plane entries in container order.
var PlaneFiles = []string{MeansLowerFile, MeansUpperFile, QuatsFile, ScalesFile, SH0File}

// ErrMissingPlane is returned when assembly is attempted without all planes.
var ErrMissingPlane = errors.New("archive: missing plane")

// Meta is the metadata document stored as the first container entry.
// Field names are fixed by the format; decoders parse them literally.
type Meta struct {
	Version      [3]int       `json:"version"`
	NumGaussians int          `json:"numGaussians"`
	ImageWidth   int          `json:"imageWidth"`
	ImageHeight  int          `json:"imageHeight"`
	Means        MeansMeta    `json:"means"`
	Scales       CodebookMeta `json:"scales"`
	Quats        FileMeta     `json:"quats"`
	SH0          CodebookMeta `json:"sh0"`
	Camera       CameraMeta   `json:"camera"`
}

// MeansMeta records the per-axis quantization ranges (in signed-log space)
// and the two byte planes that split each 16-bit position code.
type MeansMeta struct {
	Mins  [3]float32 `json:"mins"`
	Maxs  [3]float32 `json:"maxs"`
	Files []string   `json:"files"`
}

// CodebookMeta records a centroid table and its index plane.
type CodebookMeta struct {
	Codebook []float32 `json:"codebook"`
	File     string    `json:"file"`
}

// FileMeta points at a plane with no side parameters.
type FileMeta struct {
	File string `json:"file"`
}

// CameraMeta preserves the source camera intrinsics. It is carried as
// metadata only; nothing downstream of the encoder transforms by it.
type CameraMeta struct {
	FocalLength float32 `json:"focalLength"`
	ImageWidth  int     `json:"imageWidth"`
	ImageHeight int     `json:"imageHeight"`
}

// NewMeta fills the fixed parts of the document: schema version, counts,
// plane dimensions and file names.
func NewMeta(numGaussians, planeWidth, planeHeight int, ranges [3]quantize.Range) *Meta {
	m := &Meta{
		Version:      [3]int{1, 0, 0},
		NumGaussians: numGaussians,
		ImageWidth:   planeWidth,
		ImageHeight:  planeHeight,
		Means: MeansMeta{
			Files: []string{MeansLowerFile, MeansUpperFile},
		},
		Scales: CodebookMeta{File: ScalesFile},
		Quats:  FileMeta{File: QuatsFile},
		SH0:    CodebookMeta{File: SH0File},
	}
	for a := 0; a < 3; a++ {
		m.Means.Mins[a] = ranges[a].Min
		m.Means.Maxs[a] = ranges[a].Max
	}
	return m
}

// Write assembles the container: meta.json first, then every plane in
// canonical order. All planes must be present before any byte is written,
// so a failed encode never leaves a partial archive.
func Write(meta *Meta, planes map[string][]byte, c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	for _, name := range PlaneFiles {
		if len(planes[name]) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingPlane, name)
		}
	}

	metaBytes, err := c.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("archive: marshal meta: %w", err)
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	write := func(name string, data []byte) error {
		hdr := &tar.Header{
			Name:    name,
			Mode:    0o644,
			Size:    int64(len(data)),
			ModTime: time.Unix(0, 0),
			Format:  tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("archive: header %s: %w", name, err)
		}
		if _, err := tw.Write(data); err != nil {
			return fmt.Errorf("archive: write %s: %w", name, err)
		}
		return nil
	}

	if err := write(MetaFile, metaBytes); err != nil {
		return nil, err
	}
	for _, name := range PlaneFiles {
		if err := write(name, planes[name]); err != nil {
			return nil, err
		}
	}

	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("archive: close: %w", err)
	}
	return buf.Bytes(), nil
}

// Read parses a container back into its metadata and named plane bytes.
// It validates the container shape only; plane pixels are not decoded.
func Read(data []byte, c codec.Codec) (*Meta, map[string][]byte, error) {
	if c == nil {
		c = codec.Default
	}

	tr := tar.NewReader(bytes.NewReader(data))
	var meta *Meta
	planes := make(map[string][]byte)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("archive: read: %w", err)
		}

		content, err := io.ReadAll(tr)
		if err != nil {
			return nil, nil, fmt.Errorf("archive: read %s: %w", hdr.Name, err)
		}

		if hdr.Name == MetaFile {
			meta = &Meta{}
			if err := c.Unmarshal(content, meta); err != nil {
				return nil, nil, fmt.Errorf("archive: unmarshal meta: %w", err)
			}
			continue
		}
		planes[hdr.Name] = content
	}

	if meta == nil {
		return nil, nil, errors.New("archive: no meta.json entry")
	}
	for _, name := range PlaneFiles {
		if _, ok := planes[name]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingPlane, name)
		}
	}
	return meta, planes, nil
}
