//go:build !cgo

package vad

import "errors"

// DefaultWebRTCMode is the most aggressive classifier setting.
const DefaultWebRTCMode = 3

// WebRTCDetector is a stub when built without cgo; the WebRTC classifier is
// a cgo binding.
type WebRTCDetector struct{}

func NewWebRTCDetector(mode int) (*WebRTCDetector, error) {
	return nil, errors.New("vad: webrtc detector unavailable (cgo disabled)")
}

func (wd *WebRTCDetector) Detect(frame []byte) (float32, error) {
	return 0, errors.New("vad: webrtc detector unavailable (cgo disabled)")
}

func (wd *WebRTCDetector) Reset() error { return nil }

func (wd *WebRTCDetector) Destroy() error { return nil }

func (wd *WebRTCDetector) Mode() int { return 0 }

var _ Detector = (*WebRTCDetector)(nil)
