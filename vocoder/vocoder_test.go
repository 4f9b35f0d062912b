package vocoder

import (
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/neurlang/golpc/codec"
	"github.com/neurlang/golpc/lpc"
)

func sineWave(frequency float64, sampleRate, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * frequency * float64(i) / float64(sampleRate))
	}
	return out
}

func TestEncodeDefaults(t *testing.T) {
	v := New()
	stream, err := v.Encode(sineWave(440, 8000, 16000), 8000)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := codec.EncoderInfo{Order: 10, WindowSize: 240, Overlap: 50, SampleRate: 8000}
	if stream.Info != want {
		t.Errorf("Info = %+v, want %+v", stream.Info, want)
	}
	for i, fr := range stream.Frames {
		if len(fr.Coefficients) != 11 {
			t.Fatalf("frame %d has %d coefficients, want 11", i, len(fr.Coefficients))
		}
	}
}

func TestEncodeConfigErrors(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Vocoder)
		sampleRate int
	}{
		{"zero sample rate", func(v *Vocoder) {}, 0},
		{"negative sample rate", func(v *Vocoder) {}, -8000},
		{"zero order", func(v *Vocoder) { v.Order = 0 }, 8000},
		{"overlap equals window", func(v *Vocoder) { v.WindowSize = 64; v.Overlap = 64 }, 8000},
		{"negative overlap", func(v *Vocoder) { v.Overlap = -1 }, 8000},
		{"order at window size", func(v *Vocoder) { v.WindowSize = 64; v.Overlap = 0; v.Order = 64 }, 8000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			tc.mutate(v)
			if _, err := v.Encode(make([]float64, 1000), tc.sampleRate); !errors.Is(err, lpc.ErrConfig) {
				t.Errorf("Encode() error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestEncodeDecodeSine(t *testing.T) {
	v := New()
	v.WindowSize = 256

	// Two seconds of a 440 Hz tone at 8 kHz.
	stream, err := v.Encode(sineWave(440, 8000, 16000), 8000)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if want := 78; len(stream.Frames) != want {
		t.Fatalf("frame count = %d, want %d", len(stream.Frames), want)
	}
	for i, fr := range stream.Frames {
		if fr.Pitch == lpc.Unvoiced {
			t.Fatalf("frame %d reported unvoiced for a pure tone", i)
		}
		if int(fr.Pitch) != 444 {
			t.Errorf("frame %d pitch = %g, want int value 444", i, fr.Pitch)
		}
		if fr.Gain <= 0 {
			t.Errorf("frame %d gain = %g, want > 0", i, fr.Gain)
		}
	}

	signal, err := v.Decode(stream)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if want := 77*(256-50) + 256; len(signal) != want {
		t.Errorf("len(signal) = %d, want %d", len(signal), want)
	}
	var any bool
	for _, s := range signal {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			t.Fatal("decoded signal contains non-finite samples")
		}
		if s != 0 {
			any = true
		}
	}
	if !any {
		t.Error("decoded signal is all zero despite non-zero gains")
	}
}

func TestEncodeSilence(t *testing.T) {
	v := New()
	stream, err := v.Encode(make([]float64, 8000), 8000)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for i, fr := range stream.Frames {
		if fr.Gain != 0 {
			t.Errorf("frame %d gain = %g, want 0", i, fr.Gain)
		}
		if fr.Pitch != lpc.Unvoiced {
			t.Errorf("frame %d pitch = %g, want unvoiced", i, fr.Pitch)
		}
	}

	signal, err := v.Decode(stream)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	for i, s := range signal {
		if s != 0 {
			t.Fatalf("signal[%d] = %g, want silence", i, s)
		}
	}
}

func TestParallelEncodeMatchesSequential(t *testing.T) {
	signal := sineWave(220, 8000, 12000)

	seq := New()
	seq.WindowSize = 256
	want, err := seq.Encode(signal, 8000)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	par := New()
	par.WindowSize = 256
	par.Parallel = true
	got, err := par.Encode(signal, 8000)
	if err != nil {
		t.Fatalf("parallel Encode() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("parallel analysis produced different frames than sequential")
	}
}

func TestRoundTripThroughBinary(t *testing.T) {
	v := New()
	v.WindowSize = 256
	stream, err := v.Encode(sineWave(330, 8000, 8000), 8000)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	data, err := stream.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	decoded, err := codec.UnmarshalBinary(data)
	if err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if decoded.Info != stream.Info {
		t.Errorf("Info = %+v, want %+v", decoded.Info, stream.Info)
	}
	if _, err := v.Decode(decoded); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
}

func TestQuantizedStreamDecodes(t *testing.T) {
	v := New()
	v.WindowSize = 256
	stream, err := v.Encode(sineWave(440, 8000, 8000), 8000)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	signal, err := v.Decode(codec.QuantizeFloat16(stream))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	for i, s := range signal {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			t.Fatalf("signal[%d] = %g after coefficient quantization", i, s)
		}
	}
}

func TestEmphasisRoundTrip(t *testing.T) {
	signal := sineWave(100, 8000, 1024)
	got := Deemphasis(Preemphasis(signal))
	for i := range signal {
		if math.Abs(got[i]-signal[i]) > 1e-9 {
			t.Fatalf("sample %d = %g, want %g", i, got[i], signal[i])
		}
	}
}

func TestWavFileRoundTrip(t *testing.T) {
	want := sineWave(440, 8000, 4000)
	name := filepath.Join(t.TempDir(), "tone.wav")
	if err := SaveWav(name, want, 8000); err != nil {
		t.Fatalf("SaveWav() error = %v", err)
	}

	got, sampleRate, err := LoadWav(name)
	if err != nil {
		t.Fatalf("LoadWav() error = %v", err)
	}
	if sampleRate != 8000 {
		t.Errorf("sample rate = %d, want 8000", sampleRate)
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-3 {
			t.Fatalf("sample %d = %g, want %g (beyond 16-bit precision)", i, got[i], want[i])
		}
	}
}

func TestEncodeDecodeFile(t *testing.T) {
	dir := t.TempDir()
	wavIn := filepath.Join(dir, "in.wav")
	encoded := filepath.Join(dir, "tone.lpc")
	wavOut := filepath.Join(dir, "out.wav")

	if err := SaveWav(wavIn, sineWave(440, 8000, 8000), 8000); err != nil {
		t.Fatalf("SaveWav() error = %v", err)
	}

	v := New()
	v.WindowSize = 256
	if err := v.EncodeFile(wavIn, encoded); err != nil {
		t.Fatalf("EncodeFile() error = %v", err)
	}
	if err := v.DecodeFile(encoded, wavOut); err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}

	signal, sampleRate, err := LoadWav(wavOut)
	if err != nil {
		t.Fatalf("LoadWav() error = %v", err)
	}
	if sampleRate != 8000 {
		t.Errorf("sample rate = %d, want 8000", sampleRate)
	}
	if len(signal) == 0 {
		t.Error("decoded audio file is empty")
	}
}
