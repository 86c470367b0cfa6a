package core_test

import "math"

// sineAt returns sin(2*pi*freqHz*i/sampleRate), shared by the encoder and
// analyser test suites to synthesize simple tone fixtures.
func sineAt(freqHz, sampleRate, i int) float64 {
	return math.Sin(2 * math.Pi * float64(freqHz) * float64(i) / float64(sampleRate))
}
