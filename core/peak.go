package core

// Peak is one quantised spectral peak: the FFT pass it was detected at,
// its log-magnitude, and its sub-bin-resolution corrected frequency bin
// (bin*64 + fractional offset in 1/64-bin units).
type Peak struct {
	FFTPassNumber             uint32
	PeakMagnitude             uint16
	CorrectedPeakFrequencyBin uint16
}
