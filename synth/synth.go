package synth

import (
	"math"
	"math/rand"

	"github.com/neurlang/golpc/codec"
)

const (
	// noiseSeed fixes the unvoiced excitation so decoding the same stream
	// twice yields the same signal.
	noiseSeed = 0x6c7063

	// clampLimit bounds the synthesized magnitude so a filter pushed
	// marginally unstable by coefficient quantization degrades instead of
	// blowing up.
	clampLimit = 64.0
)

// Engine synthesizes one window of output per decoded frame. It owns the
// cross-frame state (filter memory, pulse phase, noise source); create one
// engine per decode operation and feed it frames in order.
type Engine struct {
	info       codec.EncoderInfo
	memory     []float64 // last Order synthesized samples, oldest first
	pulsePhase int       // offset of the next pulse relative to the window start
	noise      *rand.Rand
}

// NewEngine returns an engine with zeroed filter memory for the given
// encoder settings.
func NewEngine(info codec.EncoderInfo) *Engine {
	return &Engine{
		info:   info,
		memory: make([]float64, info.Order),
		noise:  rand.New(rand.NewSource(noiseSeed)),
	}
}

// Synthesize produces one window of samples for the frame. Zero-gain
// frames yield silence and leave the filter memory untouched.
func (e *Engine) Synthesize(frame codec.Frame) []float64 {
	out := make([]float64, e.info.WindowSize)
	if frame.Gain == 0 {
		return out
	}

	exc := e.excitation(frame.Pitch)
	coeffs := frame.Coefficients
	order := len(coeffs) - 1
	for n := range out {
		acc := frame.Gain * exc[n]
		for k := 1; k <= order; k++ {
			var prev float64
			if n-k >= 0 {
				prev = out[n-k]
			} else if idx := len(e.memory) + n - k; idx >= 0 {
				prev = e.memory[idx]
			}
			acc -= coeffs[k] * prev
		}
		if math.IsNaN(acc) {
			acc = 0
		} else if acc > clampLimit {
			acc = clampLimit
		} else if acc < -clampLimit {
			acc = -clampLimit
		}
		out[n] = acc
	}

	if len(out) >= len(e.memory) {
		copy(e.memory, out[len(out)-len(e.memory):])
	} else {
		copy(e.memory, e.memory[len(out):])
		copy(e.memory[len(e.memory)-len(out):], out)
	}
	return out
}

// excitation builds the source signal for one window: an impulse train at
// the pitch period with phase continued from the previous frame, or
// unit-variance noise for unvoiced frames.
func (e *Engine) excitation(pitch float64) []float64 {
	exc := make([]float64, e.info.WindowSize)
	if pitch <= 0 {
		for i := range exc {
			exc[i] = e.noise.NormFloat64()
		}
		e.pulsePhase = 0
		return exc
	}

	period := int(float64(e.info.SampleRate)/pitch + 0.5)
	if period < 1 {
		period = 1
	}
	pos := e.pulsePhase
	for pos < len(exc) {
		exc[pos] = 1
		pos += period
	}
	e.pulsePhase = pos - len(exc)
	return exc
}
