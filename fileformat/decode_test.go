package fileformat_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shazoom/fileformat"
)

func TestDecode_WavRoundTrips(t *testing.T) {
	const sampleRate = 16000
	const n = 4000

	raw := make([]byte, n*2)
	for i := 0; i < n; i++ {
		v := int16(10000 * math.Sin(2*math.Pi*440*float64(i)/sampleRate))
		binary.LittleEndian.PutUint16(raw[i*2:i*2+2], uint16(v))
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, fileformat.WriteWavFile(path, raw, sampleRate, 1, 16))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	samples, gotRate, gotChannels, err := fileformat.Decode(f, path)
	require.NoError(t, err)
	require.Equal(t, sampleRate, gotRate)
	require.Equal(t, 1, gotChannels)
	require.Len(t, samples, n)
	require.InDelta(t, 0.0, samples[0], 1e-6)
}

func TestDecode_UnrecognisedContainer(t *testing.T) {
	_, _, _, err := fileformat.Decode(bytes.NewReader([]byte("not audio at all, just text")), "garbage.bin")
	require.Error(t, err)
	require.IsType(t, &fileformat.UnsupportedFormatError{}, err)
}
