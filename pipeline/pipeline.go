// Package pipeline orchestrates decode, resample and excerpt slicing
// around the bit-exact core, tying decode, resample, slice and analyse
// into one call that turns a raw file into N fixed-length excerpt
// fingerprints.
package pipeline

import (
	"bytes"
	"context"

	"golang.org/x/sync/errgroup"

	"shazoom/core"
	"shazoom/fileformat"
	"shazoom/resample"
	"shazoom/utils"
)

// defaultExcerptSeconds is the excerpt length the wire-format encoder and
// the consuming recognition service both assume (12 s at 16 kHz = 192000
// samples).
const defaultExcerptSeconds = 12

const workingSampleRate = 16000

// Recognize decodes audio, downmixes and resamples it to 16 kHz mono,
// skips offsetSeconds from the start, and slices the remainder into
// seconds-long excerpts (seconds <= 0 defaults to 12), returning one
// core.Fingerprint per excerpt in input order. A final short excerpt is
// still analysed rather than dropped, matching the reference
// implementation's behavior of signing whatever audio remains.
func Recognize(audio []byte, offsetSeconds, seconds int) ([]core.Fingerprint, error) {
	if seconds <= 0 {
		seconds = defaultExcerptSeconds
	}

	pcm, rate, channels, err := fileformat.Decode(bytes.NewReader(audio), "")
	if err != nil {
		return nil, err
	}

	mono, err := resample.ToMono16kS16(pcm, rate, channels)
	if err != nil {
		return nil, err
	}

	offset := offsetSeconds * workingSampleRate
	if offset < 0 {
		offset = 0
	}
	if offset > len(mono) {
		offset = len(mono)
	}
	mono = mono[offset:]

	excerptLen := seconds * workingSampleRate
	excerpts := sliceExcerpts(mono, excerptLen)

	utils.Logger().Info("slicing audio into excerpts",
		"excerpts", len(excerpts), "excerptSeconds", seconds, "offsetSeconds", offsetSeconds)

	return analyseAll(excerpts)
}

func sliceExcerpts(mono []int16, excerptLen int) [][]int16 {
	if len(mono) == 0 {
		return nil
	}
	var excerpts [][]int16
	for start := 0; start < len(mono); start += excerptLen {
		end := start + excerptLen
		if end > len(mono) {
			end = len(mono)
		}
		excerpts = append(excerpts, mono[start:end])
	}
	return excerpts
}

// analyseAll fans out core.Analyse across excerpts while preserving
// their original order in the result slice, one golang.org/x/sync/errgroup
// goroutine per excerpt. A failure does not stop the other goroutines: it
// waits for all of them and returns the first error.
func analyseAll(excerpts [][]int16) ([]core.Fingerprint, error) {
	fingerprints := make([]core.Fingerprint, len(excerpts))

	g, _ := errgroup.WithContext(context.Background())
	for i, excerpt := range excerpts {
		i, excerpt := i, excerpt
		g.Go(func() error {
			fp, err := core.Analyse(excerpt, workingSampleRate)
			if err != nil {
				return err
			}
			fingerprints[i] = fp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fingerprints, nil
}
