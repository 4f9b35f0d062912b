// Package synth reconstructs a signal from a decoded parameter stream.
//
// Engine drives the all-pole filter of each frame with a pulse-train
// (voiced) or noise (unvoiced) excitation scaled by the frame gain; filter
// memory and pulse phase carry across frame boundaries, so an engine is
// strictly sequential and lives for exactly one decode. OverlapAdd then
// reassembles the per-frame windows into a continuous signal, compensating
// for the analysis overlap with a cross-faded, weight-normalized sum.
package synth
