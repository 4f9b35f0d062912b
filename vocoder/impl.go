package vocoder

import (
	"io"
	"os"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/mewkiz/flac"
)

// loadaudio picks the decoder from the file extension.
func loadaudio(name string) ([]float64, int, error) {
	if strings.HasSuffix(name, ".flac") {
		return loadflac(name)
	}
	return loadwav(name)
}

// loadwav loads a wav file as a mono sample vector plus its sample rate,
// averaging the channels of stereo material.
func loadwav(name string) ([]float64, int, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	stream, format, err := wav.Decode(file)
	if err != nil {
		return nil, 0, err
	}
	defer stream.Close()

	var out []float64
	samples := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(samples)
		for i := 0; i < n; i++ {
			if format.NumChannels == 1 {
				out = append(out, samples[i][0])
			} else {
				out = append(out, (samples[i][0]+samples[i][1])/2)
			}
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, 0, err
	}
	return out, int(format.SampleRate), nil
}

// loadflac loads a flac file as a mono sample vector plus its sample rate,
// averaging channels and scaling integer samples to [-1, 1].
func loadflac(name string) ([]float64, int, error) {
	stream, err := flac.Open(name)
	if err != nil {
		return nil, 0, err
	}
	defer stream.Close()

	scale := float64(int64(1) << (stream.Info.BitsPerSample - 1))
	channels := float64(stream.Info.NChannels)
	var out []float64
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		for i := range frame.Subframes[0].Samples {
			var mix float64
			for _, sub := range frame.Subframes {
				mix += float64(sub.Samples[i])
			}
			out = append(out, mix/channels/scale)
		}
	}
	return out, int(stream.Info.SampleRate), nil
}

// sliceStreamer adapts a sample vector to a beep.Streamer, clipping to
// [-1, 1] and duplicating the mono signal on both channels.
type sliceStreamer struct {
	samples []float64
	pos     int
}

func (s *sliceStreamer) Stream(out [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := 0
	for n < len(out) && s.pos < len(s.samples) {
		v := s.samples[s.pos]
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out[n][0], out[n][1] = v, v
		n++
		s.pos++
	}
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }

// dumpwav saves a mono 16-bit wav file from a sample vector.
func dumpwav(name string, vec []float64, sr int) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	format := beep.Format{SampleRate: beep.SampleRate(sr), NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, &sliceStreamer{samples: vec}, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadWav loads a mono wav file to a sample vector plus its sample rate.
func LoadWav(inputFile string) ([]float64, int, error) {
	return loadwav(inputFile)
}

// LoadFlac loads a mono flac file to a sample vector plus its sample rate.
func LoadFlac(inputFile string) ([]float64, int, error) {
	return loadflac(inputFile)
}

// SaveWav saves a mono wav file from a sample vector.
func SaveWav(outputFile string, vec []float64, sr int) error {
	return dumpwav(outputFile, vec, sr)
}
