package core

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
)

// Wire-format constants imposed by the consuming recognition service's
// parser. These are not to be "cleaned up".
const (
	magic1           uint32 = 0xCAFE2580
	magic2           uint32 = 0x94119C00
	bandChunkTag     uint32 = 0x60030040
	bandTableMagic   uint32 = 0x40000000
	fixedValue       uint32 = (15 << 19) + 0x40000
	headerSize              = 48
	escapeDelta      byte   = 0xFF
	escapeThreshold  uint32 = 255

	dataURIPrefix = "data:audio/vnd.shazam.sig;base64,"
)

var sampleRateCodes = map[int]uint32{
	8000:  1,
	11025: 2,
	16000: 3,
	32000: 4,
	44100: 5,
	48000: 6,
}

// Encode serialises the fingerprint into the fixed 48-byte-header binary
// envelope: magic numbers, length fields, sub-chunk framing and a CRC-32
// over bytes 8 onward stored at offset 4, all little-endian.
func (f Fingerprint) Encode() ([]byte, error) {
	code, ok := sampleRateCodes[f.SampleRate]
	if !ok {
		return nil, &UnsupportedSampleRateError{SampleRate: f.SampleRate}
	}

	buf := new(bytes.Buffer)
	buf.Grow(headerSize + 64*f.PeakCount())

	write := func(v interface{}) error {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return &IOError{Err: err}
		}
		return nil
	}

	numberSamplesPlus := uint32(f.NumSamples) + uint32(float64(f.SampleRate)*0.24)

	fields := []uint32{
		magic1,
		0, // crc32, backfilled
		0, // buffer_size - 48, backfilled
		magic2,
		0, 0, 0, // 12 bytes of zeros
		code << 27,
		0, 0, // 8 bytes of zeros
		numberSamplesPlus,
		fixedValue,
		bandTableMagic,
		0, // buffer_size - 48 (duplicate), backfilled
	}
	for _, v := range fields {
		if err := write(v); err != nil {
			return nil, err
		}
	}

	for band := FrequencyBand(0); band < numBands; band++ {
		if len(f.Bands[band]) == 0 {
			// A band with no detected peaks gets no sub-chunk at all, not
			// an empty one: an all-silent excerpt encodes to exactly the
			// 48-byte header plus the 8-byte band-table lead-in.
			continue
		}

		payload, err := encodePeaks(band, f.Bands[band])
		if err != nil {
			return nil, err
		}

		if err := write(bandChunkTag + uint32(band)); err != nil {
			return nil, err
		}
		if err := write(uint32(len(payload))); err != nil {
			return nil, err
		}
		if _, err := buf.Write(payload); err != nil {
			return nil, &IOError{Err: err}
		}
		if pad := (4 - len(payload)%4) % 4; pad > 0 {
			if _, err := buf.Write(make([]byte, pad)); err != nil {
				return nil, &IOError{Err: err}
			}
		}
	}

	out := buf.Bytes()
	bufferSize := uint32(len(out))

	binary.LittleEndian.PutUint32(out[8:12], bufferSize-headerSize)
	binary.LittleEndian.PutUint32(out[52:56], bufferSize-headerSize)
	binary.LittleEndian.PutUint32(out[4:8], crc32.ChecksumIEEE(out[8:]))

	return out, nil
}

// encodePeaks produces one band's peaks payload: a running last_pass
// delta stream, with an absolute-pass escape record whenever the gap
// would not fit in a single byte.
func encodePeaks(band FrequencyBand, peaks []Peak) ([]byte, error) {
	payload := new(bytes.Buffer)
	var lastPass uint32

	for _, peak := range peaks {
		if peak.FFTPassNumber < lastPass {
			return nil, &MalformedPeakOrderError{Band: band, Previous: lastPass, Got: peak.FFTPassNumber}
		}

		if peak.FFTPassNumber-lastPass >= escapeThreshold {
			payload.WriteByte(escapeDelta)
			if err := binary.Write(payload, binary.LittleEndian, peak.FFTPassNumber); err != nil {
				return nil, &IOError{Err: err}
			}
			lastPass = peak.FFTPassNumber
		}

		payload.WriteByte(byte(peak.FFTPassNumber - lastPass))
		if err := binary.Write(payload, binary.LittleEndian, peak.PeakMagnitude); err != nil {
			return nil, &IOError{Err: err}
		}
		if err := binary.Write(payload, binary.LittleEndian, peak.CorrectedPeakFrequencyBin); err != nil {
			return nil, &IOError{Err: err}
		}

		lastPass = peak.FFTPassNumber
	}

	return payload.Bytes(), nil
}

// ToDataURI wraps an encoded envelope as a self-contained data URI.
func ToDataURI(buf []byte) string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf)
}
