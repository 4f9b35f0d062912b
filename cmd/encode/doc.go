// Command encode compresses audio files (WAV or FLAC) into LPC parameter
// streams.
//
// Each analysis frame is reduced to a pitch, a gain and the prediction
// coefficients of an all-pole vocal tract model, serialized in a compact
// binary layout.
//
// Usage:
//
//	encode [flags] <audio_file> <encoded_file>
//
// The LPC order, frame size and overlap are adjustable with flags; the
// defaults are an order-10 filter over 30 ms frames with 50 samples of
// overlap.
package main
