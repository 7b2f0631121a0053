//go:build cgo

package vad

import (
	"fmt"

	webrtcvad "github.com/maxhawkins/go-webrtc-vad"

	"github.com/vadkit/vadkit/pkg/audio"
)

// DefaultWebRTCMode is the most aggressive classifier setting (fewest false
// positives). Valid modes are 0 (quality) through 3 (aggressive).
const DefaultWebRTCMode = 3

// WebRTCDetector wraps the WebRTC energy-based speech/silence classifier.
// It is stateless across frames and reports hard 0/1 probabilities.
type WebRTCDetector struct {
	vad  *webrtcvad.VAD
	mode int
}

// NewWebRTCDetector creates a detector with the given aggressiveness mode.
// Out-of-range modes are rejected by the classifier.
func NewWebRTCDetector(mode int) (*WebRTCDetector, error) {
	v, err := webrtcvad.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create webrtc vad: %w", err)
	}
	if err := v.SetMode(mode); err != nil {
		return nil, fmt.Errorf("failed to set webrtc vad mode %d: %w", mode, err)
	}
	return &WebRTCDetector{vad: v, mode: mode}, nil
}

// Detect returns 1.0 if the classifier reports speech in frame, 0.0
// otherwise. frame must be 10, 20 or 30 ms of 16 kHz 16-bit mono PCM.
func (wd *WebRTCDetector) Detect(frame []byte) (float32, error) {
	if wd == nil || wd.vad == nil {
		return 0, fmt.Errorf("vad: detector not initialized")
	}

	if len(frame)%audio.BytesPerSample != 0 {
		return 0, audio.ErrMalformedFrame
	}
	if !wd.vad.ValidRateAndFrameLength(SampleRate, len(frame)/audio.BytesPerSample) {
		return 0, ErrInvalidFrameLength
	}

	speech, err := wd.vad.Process(SampleRate, frame)
	if err != nil {
		return 0, fmt.Errorf("webrtc vad process: %w", err)
	}
	if speech {
		return 1.0, nil
	}
	return 0.0, nil
}

// Reset is a no-op: the classifier holds no cross-frame state.
func (wd *WebRTCDetector) Reset() error { return nil }

// Destroy is a no-op: the classifier instance is freed by its finalizer.
func (wd *WebRTCDetector) Destroy() error { return nil }

// Mode returns the configured aggressiveness mode.
func (wd *WebRTCDetector) Mode() int { return wd.mode }

var _ Detector = (*WebRTCDetector)(nil)
