// Package vocoder ties the analysis and synthesis stages into an LPC
// encode/decode pipeline over mono sample vectors.
//
// The Vocoder struct carries the encoder settings the way a config object
// should: explicit fields with named defaults, no hidden state between
// calls. Encoding produces an immutable codec.Stream; decoding consumes a
// stream and returns a fresh signal. The package also hosts the external
// collaborators the core needs:
//   - Loading mono float64 samples from WAV and FLAC files
//   - Saving a sample vector as a 16-bit mono WAV file
//   - Playing a sample vector through the default audio output
package vocoder
