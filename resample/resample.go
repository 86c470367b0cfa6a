// Package resample downmixes decoded PCM to mono and resamples it to the
// core's one supported working rate, 16 kHz 16-bit signed.
package resample

import (
	"math"

	"github.com/faiface/beep"

	"shazoom/utils"
)

// pcmStreamer adapts a flat, possibly-interleaved float32 PCM buffer (as
// produced by fileformat.Decode) to beep.Streamer, duplicating a mono
// channel across both of beep's stereo slots, and placing the average of
// all channels in both slots for sources with more than two channels, so
// the same resampler path handles every channel count alike.
type pcmStreamer struct {
	samples  []float32
	channels int
	pos      int // index of the next unread frame, in samples (not frames*channels)
}

func (s *pcmStreamer) Stream(buf [][2]float64) (n int, ok bool) {
	for n < len(buf) {
		frameStart := s.pos * s.channels
		if frameStart >= len(s.samples) {
			break
		}

		if s.channels == 1 {
			v := float64(s.samples[frameStart])
			buf[n][0], buf[n][1] = v, v
		} else if s.channels == 2 {
			l := float64(s.samples[frameStart])
			r := float64(s.samples[frameStart+1])
			buf[n][0], buf[n][1] = l, r
		} else {
			var sum float64
			for c := 0; c < s.channels; c++ {
				sum += float64(s.samples[frameStart+c])
			}
			v := sum / float64(s.channels)
			buf[n][0], buf[n][1] = v, v
		}

		s.pos++
		n++
	}
	return n, n > 0
}

func (s *pcmStreamer) Err() error { return nil }

// ToMono16kS16 downmixes samples (interleaved, `channels` channels, at
// sampleRate) to mono and resamples to 16 kHz 16-bit PCM — the rate the
// core's analyser assumes when it converts bins to Hz. Downmixing averages all channels together, so it handles
// mono, stereo, and arbitrary multichannel input alike. Resampling
// quality follows utils.Config.ResampleQuality, the sinc-quality knob
// beep.Resample exposes.
func ToMono16kS16(samples []float32, sampleRate, channels int) ([]int16, error) {
	if channels < 1 {
		channels = 1
	}

	src := &pcmStreamer{samples: samples, channels: channels}

	const targetRate = 16000
	var stream beep.Streamer = src
	if sampleRate != targetRate {
		quality := utils.LoadConfig().ResampleQuality
		stream = beep.Resample(quality, beep.SampleRate(sampleRate), beep.SampleRate(targetRate), src)
	}

	out := make([]int16, 0, len(samples)/channels)
	buf := make([][2]float64, 4096)
	for {
		n, ok := stream.Stream(buf)
		if n > 0 {
			for i := 0; i < n; i++ {
				mono := (buf[i][0] + buf[i][1]) / 2
				out = append(out, quantize(mono))
			}
		}
		if !ok {
			break
		}
	}

	return out, nil
}

// quantize converts a [-1, 1] float sample to int16, rounding to nearest
// and clamping rather than wrapping on out-of-range input.
func quantize(v float64) int16 {
	v = math.Round(v * 32767)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
