package core_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"shazoom/core"
)

// Invariant 5: decoding a band's delta-encoded payload reconstructs the
// detector's emission order and fft_pass_number values exactly.
func TestEncodePeaks_DeltaStreamRoundTrips(t *testing.T) {
	samples := make([]int16, 192000)
	samples[0] = 32767

	fp, err := core.Analyse(samples, 16000)
	require.NoError(t, err)
	require.Greater(t, fp.PeakCount(), 0)

	buf, err := fp.Encode()
	require.NoError(t, err)

	offset := 56
	for band := 0; band < 4 && offset < len(buf); band++ {
		tag := binary.LittleEndian.Uint32(buf[offset : offset+4])
		gotBand := int(tag - 0x60030040)
		payloadLen := int(binary.LittleEndian.Uint32(buf[offset+4 : offset+8]))
		payload := buf[offset+8 : offset+8+payloadLen]

		decoded := decodeDeltaStream(t, payload)
		want := fp.Bands[gotBand]
		require.Len(t, decoded, len(want))
		for i, p := range want {
			require.Equal(t, p.FFTPassNumber, decoded[i].FFTPassNumber)
			require.Equal(t, p.PeakMagnitude, decoded[i].PeakMagnitude)
			require.Equal(t, p.CorrectedPeakFrequencyBin, decoded[i].CorrectedPeakFrequencyBin)
		}
		for i := 1; i < len(decoded); i++ {
			require.GreaterOrEqual(t, decoded[i].FFTPassNumber, decoded[i-1].FFTPassNumber)
		}

		padded := (payloadLen + 3) / 4 * 4
		offset += 8 + padded
	}
}

func decodeDeltaStream(t *testing.T, payload []byte) []core.Peak {
	t.Helper()

	var peaks []core.Peak
	var lastPass uint32
	i := 0
	for i < len(payload) {
		delta := payload[i]
		i++
		if delta == 0xFF {
			lastPass = binary.LittleEndian.Uint32(payload[i : i+4])
			i += 4
			delta = payload[i]
			i++
		}
		lastPass += uint32(delta)
		mag := binary.LittleEndian.Uint16(payload[i : i+2])
		i += 2
		bin := binary.LittleEndian.Uint16(payload[i : i+2])
		i += 2
		peaks = append(peaks, core.Peak{FFTPassNumber: lastPass, PeakMagnitude: mag, CorrectedPeakFrequencyBin: bin})
	}
	return peaks
}

// Analyse tolerates the shortest possible excerpt: fewer than 46 hops
// means the detector never runs, so every band stays empty.
func TestAnalyse_ShortExcerptNeverReachesDetector(t *testing.T) {
	samples := make([]int16, 128*10) // 10 hops, well under the 46-hop warm-up
	fp, err := core.Analyse(samples, 16000)
	require.NoError(t, err)
	require.Zero(t, fp.PeakCount())
}

// A trailing partial hop is silently discarded rather than erroring.
func TestAnalyse_TrailingPartialHopDiscarded(t *testing.T) {
	samples := make([]int16, 128*60+50)
	_, err := core.Analyse(samples, 16000)
	require.NoError(t, err)
}

func TestAnalyse_ExtremeAmplitudesDoNotOverflowMagnitude(t *testing.T) {
	samples := make([]int16, 192000)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = math.MaxInt16
		} else {
			samples[i] = math.MinInt16
		}
	}

	fp, err := core.Analyse(samples, 16000)
	require.NoError(t, err)
	for _, peaks := range fp.Bands {
		for _, p := range peaks {
			require.LessOrEqual(t, int(p.PeakMagnitude), math.MaxUint16)
		}
	}
}
