package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrFormat reports a malformed or inconsistent encoded stream.
var ErrFormat = errors.New("malformed stream")

// headerSize is the byte length of the four int32 header fields.
const headerSize = 16

// EncoderInfo carries the settings a decoder needs to reproduce the
// encoder's framing and filter order.
type EncoderInfo struct {
	Order      int `yaml:"order" json:"order"`
	WindowSize int `yaml:"window_size" json:"window_size"`
	Overlap    int `yaml:"overlap" json:"overlap"`
	SampleRate int `yaml:"sample_rate" json:"sample_rate"`
}

func (info EncoderInfo) validate() error {
	switch {
	case info.Order <= 0:
		return fmt.Errorf("%w: order %d", ErrFormat, info.Order)
	case info.WindowSize <= 0:
		return fmt.Errorf("%w: window size %d", ErrFormat, info.WindowSize)
	case info.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrFormat, info.SampleRate)
	case info.Overlap < 0 || info.Overlap >= info.WindowSize:
		return fmt.Errorf("%w: overlap %d with window size %d", ErrFormat, info.Overlap, info.WindowSize)
	}
	return nil
}

// Frame is the parameter set for one analysis window. Pitch is the
// fundamental frequency in Hz, or -1 for unvoiced windows. Coefficients is
// the prediction-error filter [1, -a1, ..., -aOrder].
type Frame struct {
	Pitch        float64   `yaml:"pitch" json:"pitch"`
	Gain         float64   `yaml:"gain" json:"gain"`
	Coefficients []float64 `yaml:"coefficients" json:"coefficients"`
}

// Stream is the unit of exchange between encoder and decoder.
type Stream struct {
	Info   EncoderInfo `yaml:"encoder_info" json:"encoder_info"`
	Frames []Frame     `yaml:"frames" json:"frames"`
}

// Validate checks the header fields and that every frame carries exactly
// Order+1 coefficients.
func (s *Stream) Validate() error {
	if err := s.Info.validate(); err != nil {
		return err
	}
	for i, fr := range s.Frames {
		if len(fr.Coefficients) != s.Info.Order+1 {
			return fmt.Errorf("%w: frame %d has %d coefficients, want %d",
				ErrFormat, i, len(fr.Coefficients), s.Info.Order+1)
		}
	}
	return nil
}

// frameSize is the byte length of one serialized frame: gain, pitch and
// order+1 coefficients, all float64.
func frameSize(order int) int { return 8 * (order + 2) }

// MarshalBinary serializes the stream into the wire layout: int32 header
// [window_size, sample_rate, overlap, order], then per frame float64 gain,
// float64 pitch and order+1 float64 coefficients, little-endian throughout.
func (s *Stream) MarshalBinary() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(s.Frames)*frameSize(s.Info.Order)))
	header := []int32{
		int32(s.Info.WindowSize),
		int32(s.Info.SampleRate),
		int32(s.Info.Overlap),
		int32(s.Info.Order),
	}
	binary.Write(buf, binary.LittleEndian, header)
	for _, fr := range s.Frames {
		binary.Write(buf, binary.LittleEndian, fr.Gain)
		binary.Write(buf, binary.LittleEndian, fr.Pitch)
		binary.Write(buf, binary.LittleEndian, fr.Coefficients)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary parses the wire layout produced by MarshalBinary. The
// byte count after the header must be an exact multiple of the per-frame
// size; anything else fails with ErrFormat rather than decoding a
// truncated frame.
func UnmarshalBinary(data []byte) (*Stream, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the %d-byte header", ErrFormat, len(data), headerSize)
	}
	info := EncoderInfo{
		WindowSize: int(int32(binary.LittleEndian.Uint32(data[0:4]))),
		SampleRate: int(int32(binary.LittleEndian.Uint32(data[4:8]))),
		Overlap:    int(int32(binary.LittleEndian.Uint32(data[8:12]))),
		Order:      int(int32(binary.LittleEndian.Uint32(data[12:16]))),
	}
	if err := info.validate(); err != nil {
		return nil, err
	}

	body := data[headerSize:]
	size := frameSize(info.Order)
	if len(body)%size != 0 {
		return nil, fmt.Errorf("%w: %d payload bytes is not a multiple of the %d-byte frame size", ErrFormat, len(body), size)
	}

	frames := make([]Frame, len(body)/size)
	for i := range frames {
		rec := body[i*size:]
		fr := Frame{
			Gain:         math.Float64frombits(binary.LittleEndian.Uint64(rec[0:8])),
			Pitch:        math.Float64frombits(binary.LittleEndian.Uint64(rec[8:16])),
			Coefficients: make([]float64, info.Order+1),
		}
		for j := range fr.Coefficients {
			off := 16 + 8*j
			fr.Coefficients[j] = math.Float64frombits(binary.LittleEndian.Uint64(rec[off : off+8]))
		}
		frames[i] = fr
	}
	return &Stream{Info: info, Frames: frames}, nil
}

// WriteFile serializes the stream and writes it to name.
func (s *Stream) WriteFile(name string) error {
	data, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads and parses a serialized stream from name.
func ReadFile(name string) (*Stream, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return UnmarshalBinary(data)
}
