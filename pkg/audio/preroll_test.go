package audio

import (
	"bytes"
	"testing"
)

func TestNewPreRoll(t *testing.T) {
	// 300ms at 16kHz = 4800 samples = 9600 bytes
	p := NewPreRoll(16000, 300)
	if p.Capacity() != 9600 {
		t.Errorf("Expected capacity 9600, got %d", p.Capacity())
	}
	if p.Size() != 0 {
		t.Errorf("Expected size 0, got %d", p.Size())
	}
}

func TestPreRoll_WriteAndBytes(t *testing.T) {
	p := NewPreRoll(16000, 100) // 3200 bytes capacity

	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i % 256)
	}
	p.Write(data)

	if p.Size() != 1000 {
		t.Errorf("Expected size 1000, got %d", p.Size())
	}
	if !bytes.Equal(p.Bytes(), data) {
		t.Error("Bytes() did not return written data")
	}

	// Reading must not consume.
	if p.Size() != 1000 {
		t.Errorf("Expected size 1000 after read, got %d", p.Size())
	}
}

func TestPreRoll_Wraparound(t *testing.T) {
	p := NewPreRoll(16000, 100) // 3200 bytes capacity

	first := make([]byte, 3000)
	for i := range first {
		first[i] = 0xAA
	}
	p.Write(first)

	second := make([]byte, 1000)
	for i := range second {
		second[i] = 0xBB
	}
	p.Write(second)

	out := p.Bytes()
	if len(out) != 3200 {
		t.Fatalf("Expected 3200 bytes, got %d", len(out))
	}

	// Oldest 2200 bytes of the first write survive, then the second write.
	for i := 0; i < 2200; i++ {
		if out[i] != 0xAA {
			t.Fatalf("byte[%d] = %#x, want 0xAA", i, out[i])
		}
	}
	for i := 2200; i < 3200; i++ {
		if out[i] != 0xBB {
			t.Fatalf("byte[%d] = %#x, want 0xBB", i, out[i])
		}
	}
}

func TestPreRoll_WriteLargerThanCapacity(t *testing.T) {
	p := NewPreRoll(16000, 10) // 320 bytes capacity

	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i % 256)
	}
	p.Write(data)

	out := p.Bytes()
	if len(out) != 320 {
		t.Fatalf("Expected 320 bytes, got %d", len(out))
	}
	if !bytes.Equal(out, data[1000-320:]) {
		t.Error("Expected the most recent 320 bytes to be kept")
	}
}

func TestPreRoll_Reset(t *testing.T) {
	p := NewPreRoll(16000, 100)
	p.Write(make([]byte, 500))

	p.Reset()
	if p.Size() != 0 {
		t.Errorf("Expected size 0 after reset, got %d", p.Size())
	}
	if p.Bytes() != nil {
		t.Error("Expected nil Bytes() after reset")
	}
}
