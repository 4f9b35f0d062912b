// Command decode reconstructs audio from LPC parameter streams.
//
// Each frame's all-pole filter is excited with a pulse train (voiced) or
// noise (unvoiced) scaled by the stored gain, and the synthesized windows
// are overlap-added back into a continuous waveform written as WAV.
//
// Usage:
//
//	decode [flags] <encoded_file> <audio_file>
//
// The -play flag additionally plays the decoded signal through the
// default audio output.
package main
