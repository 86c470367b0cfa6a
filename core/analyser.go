package core

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// hopSize is the number of new samples consumed per FFT pass.
const hopSize = 128

// analyser is the fixed-latency streaming analyser owning one excerpt's
// worth of ring buffers exclusively. It is never shared across excerpts.
type analyser struct {
	samples sampleRing
	raw     spectraRing
	spread  spectraRing

	fft     *fourier.FFT
	work    [windowSize]float64
	coeffs  []complex128
	passesDone uint32

	fingerprint Fingerprint
}

func newAnalyser(sampleRate, numSamples int) *analyser {
	return &analyser{
		fft:         fourier.NewFFT(windowSize),
		coeffs:      make([]complex128, numBins),
		fingerprint: newFingerprint(sampleRate, numSamples),
	}
}

// Analyse runs the full streaming pipeline (spectral analysis, spreading,
// peak detection) over an excerpt's samples and returns its Fingerprint.
// Samples are consumed once, left-to-right, in 128-sample hops; a
// trailing partial hop is silently discarded.
func Analyse(samples []int16, sampleRate int) (Fingerprint, error) {
	a := newAnalyser(sampleRate, len(samples))

	usable := (len(samples) / hopSize) * hopSize
	for i := 0; i < usable; i += hopSize {
		if err := a.processHop(samples[i : i+hopSize]); err != nil {
			return Fingerprint{}, err
		}
	}

	return a.fingerprint, nil
}

// processHop runs one FFT pass: window + FFT + power spectrum, frequency
// and time-domain spreading, and, once warmed up, peak detection.
func (a *analyser) processHop(hop []int16) error {
	a.samples.writeHop(hop)
	a.samples.window(&a.work)

	coeffs := a.fft.Coefficients(a.coeffs, a.work[:])

	raw := a.raw.current()
	for k := 0; k < numBins; k++ {
		re, im := real(coeffs[k]), imag(coeffs[k])
		v := (re*re + im*im) / spectrumScale
		if v < spectrumFloor {
			v = spectrumFloor
		}
		raw[k] = v
	}
	a.raw.advance()

	a.spreadPeaks()

	a.passesDone++
	if a.passesDone >= 46 {
		if err := a.detectPeaks(); err != nil {
			return err
		}
	}
	return nil
}
