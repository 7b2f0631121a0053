package vad

import "sync"

// MockDetector is a mock implementation of Detector for testing code that
// drives a detector. Behavior is customized through the DetectFunc field.
type MockDetector struct {
	// DetectFunc is called when Detect is invoked. If nil, Detect returns
	// 0.0 (no speech).
	DetectFunc func(frame []byte) (float32, error)

	// DetectCalls records the frames passed to Detect.
	DetectCalls [][]byte

	// ResetCalled tracks if Reset was called.
	ResetCalled bool

	// DestroyCalled tracks if Destroy was called.
	DestroyCalled bool

	mu sync.Mutex
}

// NewMockDetector creates a MockDetector with default behavior.
func NewMockDetector() *MockDetector {
	return &MockDetector{DetectCalls: make([][]byte, 0)}
}

// NewMockDetectorWithProb creates a MockDetector returning a fixed probability.
func NewMockDetectorWithProb(prob float32) *MockDetector {
	return &MockDetector{
		DetectFunc: func(frame []byte) (float32, error) {
			return prob, nil
		},
		DetectCalls: make([][]byte, 0),
	}
}

// NewMockDetectorWithSequence creates a MockDetector that returns the given
// probabilities in order, cycling back to the start when exhausted.
func NewMockDetectorWithSequence(probs []float32) *MockDetector {
	idx := 0
	return &MockDetector{
		DetectFunc: func(frame []byte) (float32, error) {
			if len(probs) == 0 {
				return 0, nil
			}
			prob := probs[idx]
			idx = (idx + 1) % len(probs)
			return prob, nil
		},
		DetectCalls: make([][]byte, 0),
	}
}

// Detect implements Detector.
func (m *MockDetector) Detect(frame []byte) (float32, error) {
	m.mu.Lock()
	// Copy: callers commonly reuse frame buffers.
	frameCopy := make([]byte, len(frame))
	copy(frameCopy, frame)
	m.DetectCalls = append(m.DetectCalls, frameCopy)
	m.mu.Unlock()

	if m.DetectFunc != nil {
		return m.DetectFunc(frame)
	}
	return 0.0, nil
}

// Reset implements Detector.
func (m *MockDetector) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetCalled = true
	return nil
}

// Destroy implements Detector.
func (m *MockDetector) Destroy() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DestroyCalled = true
	return nil
}

// DetectCallCount returns the number of times Detect was called.
func (m *MockDetector) DetectCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.DetectCalls)
}

var _ Detector = (*MockDetector)(nil)
