// Package lpc provides the analysis half of the vocoder.
//
// It slices a sample vector into overlapping analysis windows and extracts
// the per-window model parameters:
//   - Linear prediction coefficients via autocorrelation and the
//     Levinson-Durbin recursion
//   - Excitation gain from the residual energy
//   - Pitch frequency (or an unvoiced decision) from the normalized
//     autocorrelation
//
// All functions are pure transforms of a single window, so callers may run
// them over independent windows concurrently.
package lpc
