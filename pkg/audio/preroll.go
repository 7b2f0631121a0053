package audio

// PreRoll is a fixed-duration circular buffer of PCM bytes. It keeps the most
// recent audio so a caller can recover the frames captured just before speech
// onset. Like the detectors it feeds, it is not safe for concurrent use.
type PreRoll struct {
	buf      []byte
	writePos int
	size     int
}

// NewPreRoll creates a pre-roll buffer holding durationMs of 16-bit mono PCM
// at the given sample rate.
func NewPreRoll(sampleRate, durationMs int) *PreRoll {
	capacity := sampleRate * durationMs / 1000 * BytesPerSample
	return &PreRoll{buf: make([]byte, capacity)}
}

// Write appends PCM bytes, overwriting the oldest audio once full.
func (p *PreRoll) Write(data []byte) {
	n := len(data)
	if n == 0 || len(p.buf) == 0 {
		return
	}

	if n >= len(p.buf) {
		copy(p.buf, data[n-len(p.buf):])
		p.writePos = 0
		p.size = len(p.buf)
		return
	}

	tail := len(p.buf) - p.writePos
	if n <= tail {
		copy(p.buf[p.writePos:], data)
		p.writePos = (p.writePos + n) % len(p.buf)
	} else {
		copy(p.buf[p.writePos:], data[:tail])
		copy(p.buf, data[tail:])
		p.writePos = n - tail
	}

	p.size += n
	if p.size > len(p.buf) {
		p.size = len(p.buf)
	}
}

// Bytes returns the buffered audio in chronological order without consuming it.
func (p *PreRoll) Bytes() []byte {
	if p.size == 0 {
		return nil
	}

	out := make([]byte, p.size)
	if p.size < len(p.buf) {
		copy(out, p.buf[:p.size])
		return out
	}
	n := copy(out, p.buf[p.writePos:])
	copy(out[n:], p.buf[:p.writePos])
	return out
}

// Reset discards all buffered audio.
func (p *PreRoll) Reset() {
	p.writePos = 0
	p.size = 0
}

// Size returns the number of buffered bytes.
func (p *PreRoll) Size() int { return p.size }

// Capacity returns the buffer capacity in bytes.
func (p *PreRoll) Capacity() int { return len(p.buf) }
