package synth

// OverlapAdd reassembles per-frame windows into a continuous signal.
// Windows are placed at stride len(window)-overlap and summed over the
// shared region with a linear cross-fade, then normalized by the
// accumulated weight so constant material stays constant through the
// seams. The result has (len(frames)-1)*stride + windowSize samples; any
// zero-padding the framer appended to the last window is kept.
func OverlapAdd(frames [][]float64, overlap int) []float64 {
	if len(frames) == 0 {
		return nil
	}
	windowSize := len(frames[0])
	stride := windowSize - overlap

	out := make([]float64, (len(frames)-1)*stride+windowSize)
	weightSum := make([]float64, len(out))
	w := crossfade(windowSize, overlap)

	for i, frame := range frames {
		off := i * stride
		for j, s := range frame {
			out[off+j] += s * w[j]
			weightSum[off+j] += w[j]
		}
	}
	for i := range out {
		if weightSum[i] != 0 {
			out[i] /= weightSum[i]
		}
	}
	return out
}

// crossfade builds the per-window weight envelope: unity in the middle,
// linear ramps over the first and last overlap samples.
func crossfade(windowSize, overlap int) []float64 {
	w := make([]float64, windowSize)
	for i := range w {
		w[i] = 1
	}
	for i := 0; i < overlap && i < windowSize/2; i++ {
		ramp := float64(i+1) / float64(overlap+1)
		w[i] = ramp
		w[windowSize-1-i] = ramp
	}
	return w
}
