package core

import "math"

// windowSize is the FFT window length in samples: 2048 samples at 16 kHz
// is a 128 ms analysis window, hopped every 128 samples (8 ms, 93.75%
// overlap).
const windowSize = 2048

// hannWindow is the raised-cosine window applied to every 2048-sample
// analysis frame before the FFT. It is process-wide immutable state,
// computed once at package init rather than rebuilt on every call.
var hannWindow [windowSize]float64

func init() {
	for i := range hannWindow {
		hannWindow[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(windowSize-1))
	}
}
