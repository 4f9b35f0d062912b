package lpc

import (
	"errors"
	"fmt"
)

// ErrConfig reports an invalid analysis configuration.
var ErrConfig = errors.New("invalid configuration")

// Framer slices a sample vector into fixed-length analysis windows that
// overlap by a configurable number of samples. Windows are built on demand,
// so the framer can be walked any number of times without rewinding.
type Framer struct {
	samples    []float64
	windowSize int
	overlap    int
}

// NewFramer validates the windowing parameters and returns a framer over
// the given samples. The sample slice is not copied and must not be
// modified while the framer is in use.
func NewFramer(samples []float64, windowSize, overlap int) (*Framer, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size %d", ErrConfig, windowSize)
	}
	if overlap < 0 || overlap >= windowSize {
		return nil, fmt.Errorf("%w: overlap %d with window size %d", ErrConfig, overlap, windowSize)
	}
	return &Framer{samples: samples, windowSize: windowSize, overlap: overlap}, nil
}

// Stride is the hop between the starts of consecutive windows.
func (f *Framer) Stride() int { return f.windowSize - f.overlap }

// WindowSize returns the length of every produced window.
func (f *Framer) WindowSize() int { return f.windowSize }

// Len reports how many windows the framer produces. Every input sample is
// covered by at least one window; the final partial window is zero-padded
// rather than dropped.
func (f *Framer) Len() int {
	n := len(f.samples)
	if n <= f.windowSize {
		return 1
	}
	stride := f.Stride()
	return (n - f.overlap + stride - 1) / stride
}

// At returns window i as a fresh slice of exactly WindowSize samples,
// zero-padded past the end of the input.
func (f *Framer) At(i int) []float64 {
	win := make([]float64, f.windowSize)
	start := i * f.Stride()
	if start < len(f.samples) {
		copy(win, f.samples[start:])
	}
	return win
}
