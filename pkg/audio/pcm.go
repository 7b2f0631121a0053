// Package audio provides PCM helpers for the VAD detectors.
//
// All functions assume 16 kHz, 16-bit signed little-endian mono PCM, which is
// the only format the detectors accept.
package audio

import (
	"encoding/binary"
	"errors"
)

// BytesPerSample is the size of one 16-bit PCM sample.
const BytesPerSample = 2

// ErrMalformedFrame is returned when a byte buffer does not decode evenly
// into 16-bit samples.
var ErrMalformedFrame = errors.New("audio: frame is not a whole number of 16-bit samples")

// DecodePCM16 converts a raw byte buffer to int16 samples (little-endian).
func DecodePCM16(frame []byte) ([]int16, error) {
	if len(frame)%BytesPerSample != 0 {
		return nil, ErrMalformedFrame
	}

	samples := make([]int16, len(frame)/BytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(frame[i*BytesPerSample:]))
	}
	return samples, nil
}

// NormalizePCM16 decodes a raw byte buffer and scales each sample to float32
// by dividing by 32767. The divisor matches the reference model's training
// normalization, so the minimum sample -32768 maps slightly below -1.
func NormalizePCM16(frame []byte) ([]float32, error) {
	samples, err := DecodePCM16(frame)
	if err != nil {
		return nil, err
	}

	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = float32(s) / 32767.0
	}
	return out, nil
}

// EncodePCM16 converts int16 samples back to little-endian bytes.
func EncodePCM16(samples []int16) []byte {
	out := make([]byte, len(samples)*BytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*BytesPerSample:], uint16(s))
	}
	return out
}
