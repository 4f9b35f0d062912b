package vocoder

// preemphasisTap is the classic speech pre-emphasis coefficient (15/16).
const preemphasisTap = 0.9375

// Preemphasis applies the first-order high-pass 1 - 0.9375 z^-1, boosting
// the high frequencies the LPC model would otherwise underweight.
func Preemphasis(signal []float64) []float64 {
	out := make([]float64, len(signal))
	var prev float64
	for i, s := range signal {
		out[i] = s - preemphasisTap*prev
		prev = s
	}
	return out
}

// Deemphasis inverts Preemphasis, restoring the original spectral tilt
// after synthesis.
func Deemphasis(signal []float64) []float64 {
	out := make([]float64, len(signal))
	var prev float64
	for i, s := range signal {
		prev = s + preemphasisTap*prev
		out[i] = prev
	}
	return out
}
