package core

import "fmt"

// UnsupportedSampleRateError is returned by Encode when the fingerprint's
// sample rate is not one of the six rates the wire format can express.
type UnsupportedSampleRateError struct {
	SampleRate int
}

func (e *UnsupportedSampleRateError) Error() string {
	return fmt.Sprintf("core: unsupported sample rate %d Hz", e.SampleRate)
}

// InvariantViolationError is returned if the quadratic-interpolation
// denominator used in peak refinement is negative, which should be
// unreachable given the preceding local-maximum tests.
type InvariantViolationError struct {
	Bin   int
	Value float64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("core: quadratic interpolation denominator %.6f at bin %d is negative; local-maximum test was violated", e.Value, e.Bin)
}

// MalformedPeakOrderError is returned by Encode if a band's peak list is
// not in non-decreasing fft_pass_number order, which should be
// unreachable from the detector.
type MalformedPeakOrderError struct {
	Band     FrequencyBand
	Previous uint32
	Got      uint32
}

func (e *MalformedPeakOrderError) Error() string {
	return fmt.Sprintf("core: peak order violated in band %s: fft_pass_number went from %d to %d", e.Band, e.Previous, e.Got)
}

// IOError wraps a failure writing the encoder's in-memory byte buffer.
// A bytes.Buffer write is effectively infallible, but the encoder
// propagates this for interface uniformity with implementations that
// stream the envelope to a real sink.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("core: encoder write failed: %v", e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

