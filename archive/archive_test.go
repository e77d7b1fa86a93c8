package archive

import (
	"archive/tar"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/splatpack/codec"
	"github.com/hupe1980/splatpack/quantize"
)

func testPlanes() map[string][]byte {
	planes := make(map[string][]byte)
	for i, name := range PlaneFiles {
		planes[name] = bytes.Repeat([]byte{byte(i + 1)}, 16)
	}
	return planes
}

func testMeta() *Meta {
	ranges := [3]quantize.Range{
		{Min: -1, Max: 1},
		{Min: -2, Max: 2},
		{Min: 0, Max: 0.5},
	}
	m := NewMeta(10, 4, 3, ranges)
	m.Scales.Codebook = make([]float32, 256)
	m.SH0.Codebook = make([]float32, 256)
	m.Camera = CameraMeta{FocalLength: 1000, ImageWidth: 1024, ImageHeight: 768}
	return m
}

func TestWriteReadRoundTrip(t *testing.T) {
	meta := testMeta()
	planes := testPlanes()

	data, err := Write(meta, planes, nil)
	require.NoError(t, err)

	gotMeta, gotPlanes, err := Read(data, nil)
	require.NoError(t, err)

	assert.Equal(t, meta, gotMeta)
	for name, content := range planes {
		assert.Equal(t, content, gotPlanes[name], name)
	}
}

func TestWriteMetaFirst(t *testing.T) {
	data, err := Write(testMeta(), testPlanes(), nil)
	require.NoError(t, err)

	tr := tar.NewReader(bytes.NewReader(data))
	hdr, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, MetaFile, hdr.Name)

	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, hdr.Name)
	}
	assert.Equal(t, PlaneFiles, names)
}

func TestWriteRejectsMissingPlane(t *testing.T) {
	planes := testPlanes()
	delete(planes, QuatsFile)

	_, err := Write(testMeta(), planes, nil)
	require.ErrorIs(t, err, ErrMissingPlane)
}

func TestMetaFieldNames(t *testing.T) {
	data, err := codec.Default.Marshal(testMeta())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, codec.Default.Unmarshal(data, &doc))

	for _, key := range []string{
		"version", "numGaussians", "imageWidth", "imageHeight",
		"means", "scales", "quats", "sh0", "camera",
	} {
		assert.Contains(t, doc, key)
	}

	means := doc["means"].(map[string]any)
	assert.Contains(t, means, "mins")
	assert.Contains(t, means, "maxs")
	assert.Equal(t, []any{"means_l.webp", "means_u.webp"}, means["files"])

	camera := doc["camera"].(map[string]any)
	assert.Contains(t, camera, "focalLength")
	assert.Contains(t, camera, "imageWidth")
	assert.Contains(t, camera, "imageHeight")

	version := doc["version"].([]any)
	assert.Equal(t, []any{float64(1), float64(0), float64(0)}, version)
}

func TestReadRejectsTruncated(t *testing.T) {
	data, err := Write(testMeta(), testPlanes(), nil)
	require.NoError(t, err)

	_, _, err = Read(data[:len(data)/2], nil)
	assert.Error(t, err)
}

func TestReadRejectsMissingMeta(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "other.bin", Size: 1}))
	_, err := tw.Write([]byte{0})
	require.NoError(t, err)
	require.NoError(t, tw.Close())

	_, _, err = Read(buf.Bytes(), nil)
	assert.Error(t, err)
}
