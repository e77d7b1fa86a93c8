// Package quantize implements the per-attribute codecs of the archive
// format: direct fixed-width quantization for positions and opacity,
// shared learned codebooks for scales and color, and smallest-three bit
// packing for quaternions.
//
// Each codec is stateless apart from the range or codebook it is given,
// and every encoder has a matching decoder so the format's round-trip
// guarantees can be verified without a renderer.
package quantize
