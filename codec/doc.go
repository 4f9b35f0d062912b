// Package codec defines the encoded parameter stream and its two
// interchange representations.
//
// A Stream couples the encoder settings (order, window size, overlap,
// sample rate) with the ordered per-frame parameters (pitch, gain,
// prediction coefficients). It round-trips losslessly through:
//   - a compact binary layout: four little-endian int32 header fields
//     followed by fixed-width float64 frame records
//   - a YAML document with encoder_info and frames mappings
//
// Both decoders reject malformed input with ErrFormat instead of decoding
// a truncated or inconsistent stream.
package codec
