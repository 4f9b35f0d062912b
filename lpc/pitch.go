package lpc

import (
	"github.com/mjibson/go-dsp/fft"
)

// Unvoiced is the pitch sentinel for windows with no detectable
// periodicity; the decoder substitutes noise excitation for such frames.
const Unvoiced = -1.0

const (
	// Plausible pitch range for speech material.
	pitchFloorHz = 50.0
	pitchCeilHz  = 600.0

	// voicingThreshold is the minimum normalized autocorrelation score a
	// lag must reach before the window counts as voiced.
	voicingThreshold = 0.45

	// octaveTolerance widens the winner selection: the shortest lag whose
	// score is within this fraction of the best one wins, which keeps a
	// strong two-period peak from halving the reported frequency.
	octaveTolerance = 0.04
)

// EstimatePitch returns the fundamental frequency of the window in Hz, or
// Unvoiced when no lag in the 50-600 Hz period range scores above the
// voicing threshold. The score is the unbiased-corrected normalized
// autocorrelation at each candidate lag.
func EstimatePitch(frame []float64, sampleRate int) float64 {
	n := len(frame)
	if n < 2 || sampleRate <= 0 {
		return Unvoiced
	}
	r := fftAutocorrelate(frame)
	if r[0]/float64(n) <= powerFloor {
		return Unvoiced
	}

	minLag := int(float64(sampleRate) / pitchCeilHz)
	if minLag < 2 {
		minLag = 2
	}
	maxLag := int(float64(sampleRate) / pitchFloorHz)
	if maxLag > n-1 {
		maxLag = n - 1
	}
	if minLag > maxLag {
		return Unvoiced
	}

	r0 := r[0] / float64(n)
	scores := make([]float64, maxLag+1)
	best, bestLag := 0.0, 0
	for lag := minLag; lag <= maxLag; lag++ {
		scores[lag] = r[lag] / float64(n-lag) / r0
		if scores[lag] > best {
			best, bestLag = scores[lag], lag
		}
	}
	if best < voicingThreshold {
		return Unvoiced
	}
	for lag := minLag; lag < bestLag; lag++ {
		if scores[lag] >= best*(1-octaveTolerance) {
			bestLag = lag
			break
		}
	}
	return float64(sampleRate) / float64(bestLag)
}

// fftAutocorrelate computes the full (raw-sum) autocorrelation of x through
// the power spectrum: IFFT(|FFT(x)|^2) with zero padding against circular
// wrap-around.
func fftAutocorrelate(x []float64) []float64 {
	n := len(x)
	size := 1
	for size < 2*n {
		size <<= 1
	}
	padded := make([]float64, size)
	copy(padded, x)

	spec := fft.FFTReal(padded)
	for i, v := range spec {
		re, im := real(v), imag(v)
		spec[i] = complex(re*re+im*im, 0)
	}
	inv := fft.IFFT(spec)

	r := make([]float64, n)
	for i := range r {
		r[i] = real(inv[i])
	}
	return r
}
