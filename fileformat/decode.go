package fileformat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/mdobak/go-xerrors"

	"shazoom/utils"
)

// UnsupportedFormatError is returned by Decode when the input is neither a
// RIFF/WAVE container nor an MPEG audio stream.
type UnsupportedFormatError struct {
	Hint string
}

func (e *UnsupportedFormatError) Error() string {
	return "fileformat: unrecognised container (hint=" + e.Hint + ")"
}

// Decode reads an entire WAV or MP3 stream into interleaved float32 PCM.
// The container is identified by sniffing its leading bytes rather than by
// file extension, since callers hand Decode raw bytes with no filesystem
// path attached. hint is carried through only for error messages.
func Decode(r io.Reader, hint string) (samples []float32, sampleRate int, channels int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, 0, &IOError{Err: err}
	}

	switch {
	case looksLikeWAV(data):
		return decodeWAV(data)
	case looksLikeMP3(data):
		return decodeMP3(data)
	default:
		utils.Logger().WarnContext(context.Background(), "unrecognised audio container",
			slog.String("hint", hint), slog.Int("bytes", len(data)))
		return nil, 0, 0, &UnsupportedFormatError{Hint: hint}
	}
}

func looksLikeWAV(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

// looksLikeMP3 accepts either an ID3v2 tag header or a raw MPEG frame sync
// (11 set high bits), since many MP3 files carry no ID3 tag at all.
func looksLikeMP3(data []byte) bool {
	if len(data) >= 3 && string(data[0:3]) == "ID3" {
		return true
	}
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}

// decodeWAV drains a RIFF/WAVE stream through go-audio/wav's PCM decoder.
func decodeWAV(data []byte) ([]float32, int, int, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return nil, 0, 0, errors.New("fileformat: invalid wav file")
	}

	format := decoder.Format()
	const bufferSize = 8192
	buffer := &audio.IntBuffer{Format: format, Data: make([]int, bufferSize)}

	var out []float32
	for {
		n, err := decoder.PCMBuffer(buffer)
		if n > 0 {
			for _, v := range buffer.Data[:n] {
				out = append(out, float32(v)/32768.0)
			}
		}
		if err == io.EOF || n == 0 {
			break
		}
		if err != nil {
			return nil, 0, 0, xerrors.New(err)
		}
		if n < bufferSize {
			break
		}
	}

	return out, int(format.SampleRate), format.NumChannels, nil
}

// decodeMP3 drains an MPEG audio stream through hajimehoshi/go-mp3, which
// always yields interleaved 16-bit stereo PCM regardless of the source
// channel count.
func decodeMP3(data []byte) ([]float32, int, int, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, xerrors.New(err)
	}

	const bufferSize = 8192
	buf := make([]byte, bufferSize)
	var out []float32
	for {
		n, err := decoder.Read(buf)
		if n > 0 {
			for i := 0; i+1 < n; i += 2 {
				v := int16(uint16(buf[i]) | uint16(buf[i+1])<<8)
				out = append(out, float32(v)/32768.0)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, 0, xerrors.New(err)
		}
	}

	return out, decoder.SampleRate(), 2, nil
}
