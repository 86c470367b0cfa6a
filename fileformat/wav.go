package fileformat

import (
	"encoding/binary"
	"fmt"
	"os"
)

// WavHeader is the 44-byte canonical RIFF/WAVE PCM header.
type WavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	BytesPerSec   uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

func writeWavHeader(file *os.File, data []byte, sampleRate, channels, bitsPerSample int) error {
	if len(data)%channels != 0 {
		return fmt.Errorf("invalid data or invalid no of channels")
	}

	bytesPerSample := bitsPerSample / 8
	blockAlign := uint16(bytesPerSample * channels)

	header := WavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + len(data)),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1, // PCM
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		BytesPerSec:   uint32(channels * sampleRate * bytesPerSample),
		BlockAlign:    blockAlign,
		BitsPerSample: uint16(bitsPerSample),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(len(data)),
	}

	if err := binary.Write(file, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("cannot write header to file: %w", err)
	}

	return nil
}

// WriteWavFile writes data as a minimal 16-bit PCM RIFF/WAVE file. It exists
// for test fixtures, not for the decode path (which goes through
// go-audio/wav instead of this package's own header writer); the CLI's --out
// flag writes raw envelope bytes and does not use it.
func WriteWavFile(filename string, data []byte, sampleRate, channels, bitsPerSample int) error {
	if sampleRate <= 0 || channels <= 0 || bitsPerSample <= 0 {
		return fmt.Errorf(
			"values must be greater than zero (sampleRate: %d, channels: %d, bitsPerSample: %d)",
			sampleRate, channels, bitsPerSample,
		)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeWavHeader(f, data, sampleRate, channels, bitsPerSample); err != nil {
		return err
	}

	_, err = f.Write(data)
	return err
}
