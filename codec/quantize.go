package codec

import (
	"github.com/x448/float16"
)

// QuantizeFloat16 returns a copy of the stream with every prediction
// coefficient rounded through IEEE 754 binary16. Pitch, gain and the
// encoder settings are left untouched. The synthesis engine tolerates the
// marginal pole drift this rounding can introduce.
func QuantizeFloat16(s *Stream) *Stream {
	out := &Stream{Info: s.Info, Frames: make([]Frame, len(s.Frames))}
	for i, fr := range s.Frames {
		q := make([]float64, len(fr.Coefficients))
		for j, c := range fr.Coefficients {
			q[j] = float64(float16.Fromfloat32(float32(c)).Float32())
		}
		out.Frames[i] = Frame{Pitch: fr.Pitch, Gain: fr.Gain, Coefficients: q}
	}
	return out
}
