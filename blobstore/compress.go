package blobstore

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the at-rest compression algorithm.
//
// Archive planes are already WebP-compressed, so ratios on the payload are
// modest; compression mainly recovers tar framing and metadata overhead,
// which matters for large collections of small scenes.
type Compression uint8

const (
	// CompressionNone stores blobs verbatim.
	CompressionNone Compression = 0
	// CompressionLZ4 is fast with a modest ratio (hot stores).
	CompressionLZ4 Compression = 1
	// CompressionZSTD trades speed for ratio (cold stores).
	CompressionZSTD Compression = 2
)

// ZSTD coder pools, EncodeAll/DecodeAll are cheap once warmed.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Frame header: [UncompressedSize uint32][CompressedSize uint32][Data...]
// CompressedSize == 0 marks a verbatim payload.
const frameHeaderSize = 8

var errFrameTooSmall = errors.New("blobstore: compressed frame too small")

// CompressedStore wraps a Store and compresses blobs at rest. Get is
// transparent: callers see the original bytes regardless of what the
// algorithm decided per blob.
type CompressedStore struct {
	inner Store
	algo  Compression
}

// NewCompressedStore wraps inner with at-rest compression.
func NewCompressedStore(inner Store, algo Compression) *CompressedStore {
	return &CompressedStore{inner: inner, algo: algo}
}

// Put compresses data and writes the framed result to the inner store.
// Incompressible payloads (ratio above 0.9) are framed verbatim.
func (s *CompressedStore) Put(ctx context.Context, name string, data []byte) error {
	framed, err := compressFrame(data, s.algo)
	if err != nil {
		return err
	}
	return s.inner.Put(ctx, name, framed)
}

// Get reads and decompresses a blob.
func (s *CompressedStore) Get(ctx context.Context, name string) ([]byte, error) {
	framed, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return decompressFrame(framed, s.algo)
}

// Delete removes a blob.
func (s *CompressedStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List returns all blob names with the given prefix, sorted.
func (s *CompressedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

func compressFrame(data []byte, algo Compression) ([]byte, error) {
	var compressed []byte

	switch algo {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n] // n == 0 means incompressible
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	}

	// Keep the payload verbatim when compression does not pay for itself.
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		framed := make([]byte, frameHeaderSize+len(data))
		binary.LittleEndian.PutUint32(framed[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(framed[4:], 0)
		copy(framed[frameHeaderSize:], data)
		return framed, nil
	}

	framed := make([]byte, frameHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(framed[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(framed[4:], uint32(len(compressed)))
	copy(framed[frameHeaderSize:], compressed)
	return framed, nil
}

func decompressFrame(framed []byte, algo Compression) ([]byte, error) {
	if len(framed) < frameHeaderSize {
		return nil, errFrameTooSmall
	}

	uncompressedSize := binary.LittleEndian.Uint32(framed[0:])
	compressedSize := binary.LittleEndian.Uint32(framed[4:])

	if compressedSize == 0 {
		if uint32(len(framed)) < frameHeaderSize+uncompressedSize {
			return nil, errFrameTooSmall
		}
		out := make([]byte, uncompressedSize)
		copy(out, framed[frameHeaderSize:frameHeaderSize+uncompressedSize])
		return out, nil
	}

	if uint32(len(framed)) < frameHeaderSize+compressedSize {
		return nil, errFrameTooSmall
	}
	payload := framed[frameHeaderSize : frameHeaderSize+compressedSize]

	switch algo {
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		out, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, err
		}
		if uint32(len(out)) != uncompressedSize {
			return nil, errors.New("blobstore: decompressed size mismatch")
		}
		return out, nil

	default: // LZ4, also the fallback for unknown algorithms
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("blobstore: decompressed size mismatch")
		}
		return out, nil
	}
}
