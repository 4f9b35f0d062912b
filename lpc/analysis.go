package lpc

import (
	"errors"
	"fmt"
	"math"

	"github.com/r9y9/gossp/window"
)

// ErrNumerical reports a numerical failure the analysis cannot recover
// from, such as non-finite input samples. Silent windows and unstable
// reflection coefficients are handled locally and never surface as errors.
var ErrNumerical = errors.New("numerical instability")

const (
	// reflectionClamp caps reflection coefficients just under unit
	// magnitude so the synthesis filter keeps all poles inside the unit
	// circle even for pathological windows.
	reflectionClamp = 0.999

	// powerFloor is the zero-lag autocorrelation below which a window is
	// treated as silent instead of risking a division by zero in the
	// recursion.
	powerFloor = 1e-12

	// silenceDB is the RMS level below which a window is gated as silent
	// without running the full analysis, relative to full scale.
	silenceDB = -60.0
)

// Analysis holds the model parameters extracted from one window.
type Analysis struct {
	// Coefficients is the prediction-error filter [1, -a1, ..., -aOrder];
	// the synthesis filter is its all-pole inverse.
	Coefficients []float64
	// Gain is the square root of the average residual power, >= 0.
	Gain float64
	// Silent is set when the window carried no usable energy and the
	// identity filter was returned.
	Silent bool
}

// Analyze extracts prediction coefficients and gain from one analysis
// window. The window is Hamming-weighted before the biased autocorrelation
// is taken, then the Levinson-Durbin recursion solves for the predictor.
func Analyze(frame []float64, order int) (Analysis, error) {
	if order <= 0 || order >= len(frame) {
		return Analysis{}, fmt.Errorf("%w: order %d for a %d-sample window", ErrConfig, order, len(frame))
	}
	w := window.CreateHamming(len(frame))
	buf := make([]float64, len(frame))
	for i, s := range frame {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return Analysis{}, fmt.Errorf("%w: non-finite sample at index %d", ErrNumerical, i)
		}
		buf[i] = s * w[i]
	}

	r := autocorrelate(buf, order)
	if r[0] <= powerFloor {
		return Analysis{Coefficients: Identity(order), Silent: true}, nil
	}

	coeffs := levinson(r, order)
	return Analysis{Coefficients: coeffs, Gain: residualGain(coeffs, r)}, nil
}

// Identity returns the order+1 coefficients of the pass-through filter
// [1, 0, ..., 0], used for silent windows.
func Identity(order int) []float64 {
	coeffs := make([]float64, order+1)
	coeffs[0] = 1
	return coeffs
}

// IsSilent gates windows whose RMS level is below -60 dBFS.
func IsSilent(frame []float64) bool {
	var energy float64
	for _, s := range frame {
		energy += s * s
	}
	if len(frame) == 0 || energy == 0 {
		return true
	}
	rms := math.Sqrt(energy / float64(len(frame)))
	return 20*math.Log10(rms) < silenceDB
}

// autocorrelate returns the biased autocorrelation of x up to maxLag,
// normalized by the window length so r[0] is the average power.
func autocorrelate(x []float64, maxLag int) []float64 {
	r := make([]float64, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		var sum float64
		for n := 0; n+lag < len(x); n++ {
			sum += x[n] * x[n+lag]
		}
		r[lag] = sum / float64(len(x))
	}
	return r
}

// levinson runs the Levinson-Durbin recursion over the autocorrelation
// sequence r and returns the prediction-error filter [1, -a1, ..., -aOrder].
// Reflection coefficients are clamped to reflectionClamp so the recursion
// never produces a filter with poles on or outside the unit circle.
func levinson(r []float64, order int) []float64 {
	a := make([]float64, order+1) // predictor taps, a[0] unused
	e := r[0]
	prev := make([]float64, order+1)
	for i := 1; i <= order; i++ {
		if e <= powerFloor {
			break
		}
		acc := r[i]
		for j := 1; j < i; j++ {
			acc -= a[j] * r[i-j]
		}
		k := acc / e
		if k > reflectionClamp {
			k = reflectionClamp
		} else if k < -reflectionClamp {
			k = -reflectionClamp
		}
		copy(prev, a[:i])
		a[i] = k
		for j := 1; j < i; j++ {
			a[j] = prev[j] - k*prev[i-j]
		}
		e *= 1 - k*k
	}

	coeffs := make([]float64, order+1)
	coeffs[0] = 1
	for i := 1; i <= order; i++ {
		coeffs[i] = -a[i]
	}
	return coeffs
}

// residualGain derives the excitation gain from the residual energy
// identity E = sum coeffs[i]*r[i], clamped at zero against rounding.
func residualGain(coeffs, r []float64) float64 {
	var e float64
	for i, c := range coeffs {
		e += c * r[i]
	}
	if e < 0 {
		e = 0
	}
	return math.Sqrt(e)
}
