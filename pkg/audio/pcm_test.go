package audio

import (
	"errors"
	"testing"
)

func TestDecodePCM16(t *testing.T) {
	// 0x0100 = 1, 0xFFFF = -1, 0x0080 = -32768 (little-endian)
	frame := []byte{0x01, 0x00, 0xFF, 0xFF, 0x00, 0x80}

	samples, err := DecodePCM16(frame)
	if err != nil {
		t.Fatalf("DecodePCM16() error = %v", err)
	}

	want := []int16{1, -1, -32768}
	if len(samples) != len(want) {
		t.Fatalf("Expected %d samples, got %d", len(want), len(samples))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample[%d] = %d, want %d", i, samples[i], want[i])
		}
	}
}

func TestDecodePCM16_OddLength(t *testing.T) {
	_, err := DecodePCM16([]byte{0x01, 0x00, 0xFF})
	if !errors.Is(err, ErrMalformedFrame) {
		t.Errorf("Expected ErrMalformedFrame, got %v", err)
	}

	_, err = NormalizePCM16([]byte{0x01})
	if !errors.Is(err, ErrMalformedFrame) {
		t.Errorf("Expected ErrMalformedFrame from NormalizePCM16, got %v", err)
	}
}

func TestNormalizePCM16_EmptyFrame(t *testing.T) {
	samples, err := NormalizePCM16(nil)
	if err != nil {
		t.Fatalf("NormalizePCM16(nil) error = %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("Expected 0 samples, got %d", len(samples))
	}
}

func TestNormalizePCM16_AsymmetricScaling(t *testing.T) {
	// The divisor is 32767, not 32768: the minimum sample lands just
	// below -1 and must not be clamped.
	frame := EncodePCM16([]int16{-32768})

	samples, err := NormalizePCM16(frame)
	if err != nil {
		t.Fatalf("NormalizePCM16() error = %v", err)
	}

	want := float32(-32768.0 / 32767.0)
	if samples[0] != want {
		t.Errorf("Normalized minimum = %v, want exactly %v", samples[0], want)
	}
	if samples[0] >= -1.0 {
		t.Errorf("Normalized minimum = %v, want < -1.0", samples[0])
	}
}

func TestNormalizePCM16_FullScalePositive(t *testing.T) {
	frame := EncodePCM16([]int16{32767, 0})

	samples, err := NormalizePCM16(frame)
	if err != nil {
		t.Fatalf("NormalizePCM16() error = %v", err)
	}
	if samples[0] != 1.0 {
		t.Errorf("Normalized maximum = %v, want 1.0", samples[0])
	}
	if samples[1] != 0.0 {
		t.Errorf("Normalized zero = %v, want 0.0", samples[1])
	}
}

func TestEncodePCM16_RoundTrip(t *testing.T) {
	in := []int16{0, 1, -1, 12345, -32768, 32767}

	out, err := DecodePCM16(EncodePCM16(in))
	if err != nil {
		t.Fatalf("DecodePCM16() error = %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("sample[%d] = %d, want %d", i, out[i], in[i])
		}
	}
}
