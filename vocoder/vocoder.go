package vocoder

import (
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/neurlang/golpc/codec"
	"github.com/neurlang/golpc/lpc"
	"github.com/neurlang/golpc/synth"
)

// Default encoder settings. The window default is a duration, resolved
// against the input sample rate when no explicit size is configured.
const (
	DefaultOrder    = 10
	DefaultOverlap  = 50
	DefaultWindowMs = 30
)

// DefaultWindowSize returns the default analysis window for a sample rate:
// DefaultWindowMs worth of samples (240 at 8000 Hz).
func DefaultWindowSize(sampleRate int) int {
	return sampleRate * DefaultWindowMs / 1000
}

// Vocoder holds the encode/decode configuration.
type Vocoder struct {
	// Order of the LPC model.
	Order int
	// WindowSize in samples per analysis frame; 0 selects a
	// DefaultWindowMs window at the input sample rate.
	WindowSize int
	// Overlap in samples between consecutive frames.
	Overlap int
	// Preemphasis enables the 1 - 0.9375 z^-1 high-pass before analysis
	// and its inverse after synthesis.
	Preemphasis bool
	// Parallel analyzes frames on all CPUs; synthesis stays sequential
	// regardless because filter memory crosses frame boundaries.
	Parallel bool
}

// New returns a Vocoder with the default settings.
func New() *Vocoder {
	return &Vocoder{
		Order:       DefaultOrder,
		Overlap:     DefaultOverlap,
		Preemphasis: true,
	}
}

// config resolves the window default and validates the settings.
func (v *Vocoder) config(sampleRate int) (codec.EncoderInfo, error) {
	info := codec.EncoderInfo{
		Order:      v.Order,
		WindowSize: v.WindowSize,
		Overlap:    v.Overlap,
		SampleRate: sampleRate,
	}
	if sampleRate <= 0 {
		return info, fmt.Errorf("%w: sample rate %d", lpc.ErrConfig, sampleRate)
	}
	if info.WindowSize == 0 {
		info.WindowSize = DefaultWindowSize(sampleRate)
	}
	switch {
	case info.Order <= 0:
		return info, fmt.Errorf("%w: order %d", lpc.ErrConfig, info.Order)
	case info.WindowSize <= 0:
		return info, fmt.Errorf("%w: window size %d", lpc.ErrConfig, info.WindowSize)
	case info.Overlap < 0 || info.Overlap >= info.WindowSize:
		return info, fmt.Errorf("%w: overlap %d with window size %d", lpc.ErrConfig, info.Overlap, info.WindowSize)
	case info.Order >= info.WindowSize:
		return info, fmt.Errorf("%w: order %d with window size %d", lpc.ErrConfig, info.Order, info.WindowSize)
	}
	return info, nil
}

// Encode runs the analysis pipeline over a mono sample vector and returns
// the encoded parameter stream.
func (v *Vocoder) Encode(samples []float64, sampleRate int) (*codec.Stream, error) {
	info, err := v.config(sampleRate)
	if err != nil {
		return nil, err
	}

	signal := samples
	if v.Preemphasis {
		signal = Preemphasis(samples)
	}
	framer, err := lpc.NewFramer(signal, info.WindowSize, info.Overlap)
	if err != nil {
		return nil, err
	}

	frames := make([]codec.Frame, framer.Len())
	if v.Parallel {
		var g errgroup.Group
		g.SetLimit(runtime.NumCPU())
		for i := range frames {
			i := i
			g.Go(func() error {
				fr, err := analyzeWindow(framer.At(i), info)
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				frames[i] = fr
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range frames {
			fr, err := analyzeWindow(framer.At(i), info)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			frames[i] = fr
		}
	}
	return &codec.Stream{Info: info, Frames: frames}, nil
}

// analyzeWindow extracts the parameters of one window. Windows below the
// silence gate become identity-filter frames with zero gain.
func analyzeWindow(win []float64, info codec.EncoderInfo) (codec.Frame, error) {
	if lpc.IsSilent(win) {
		return codec.Frame{
			Pitch:        lpc.Unvoiced,
			Coefficients: lpc.Identity(info.Order),
		}, nil
	}
	pitch := lpc.EstimatePitch(win, info.SampleRate)
	res, err := lpc.Analyze(win, info.Order)
	if err != nil {
		return codec.Frame{}, err
	}
	slog.Debug("analyzed frame", "pitch", pitch, "gain", res.Gain, "silent", res.Silent)
	return codec.Frame{Pitch: pitch, Gain: res.Gain, Coefficients: res.Coefficients}, nil
}

// Decode reconstructs a signal from an encoded stream. The stream is
// validated first; a malformed stream fails atomically without partial
// output.
func (v *Vocoder) Decode(stream *codec.Stream) ([]float64, error) {
	if err := stream.Validate(); err != nil {
		return nil, err
	}
	engine := synth.NewEngine(stream.Info)
	windows := make([][]float64, len(stream.Frames))
	for i, fr := range stream.Frames {
		windows[i] = engine.Synthesize(fr)
	}
	out := synth.OverlapAdd(windows, stream.Info.Overlap)
	if v.Preemphasis {
		out = Deemphasis(out)
	}
	slog.Debug("decoded stream", "frames", len(stream.Frames), "samples", len(out))
	return out, nil
}

// EncodeFile encodes a WAV or FLAC audio file into a serialized stream.
func (v *Vocoder) EncodeFile(audioFile, streamFile string) error {
	samples, sampleRate, err := loadaudio(audioFile)
	if err != nil {
		return err
	}
	slog.Info("encoding signal", "file", audioFile, "samples", len(samples), "rate", sampleRate)
	stream, err := v.Encode(samples, sampleRate)
	if err != nil {
		return err
	}
	return stream.WriteFile(streamFile)
}

// DecodeFile decodes a serialized stream into a mono WAV file.
func (v *Vocoder) DecodeFile(streamFile, audioFile string) error {
	stream, err := codec.ReadFile(streamFile)
	if err != nil {
		return err
	}
	slog.Info("decoding stream", "file", streamFile, "frames", len(stream.Frames))
	signal, err := v.Decode(stream)
	if err != nil {
		return err
	}
	return dumpwav(audioFile, signal, stream.Info.SampleRate)
}
