// Package vad estimates the probability that a short PCM audio frame
// contains human speech.
//
// Two interchangeable detectors implement the Detector interface: a recurrent
// neural model (SileroDetector) that carries hidden/cell state across calls,
// and the WebRTC energy-based speech/silence classifier (WebRTCDetector).
// Both consume 16 kHz, 16-bit signed little-endian mono PCM.
//
// Usage:
//
//	if err := vad.InitRuntime(""); err != nil {
//	    log.Fatal(err)
//	}
//	defer vad.DestroyRuntime()
//
//	detector, err := vad.NewSileroDetector("path/to/silero_vad.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer detector.Destroy()
//
//	prob, err := detector.Detect(frame) // prob in [0, 1]
package vad

import "errors"

// SampleRate is the only sample rate the detectors accept.
const SampleRate = 16000

// ErrInvalidFrameLength is returned by the WebRTC detector when a frame does
// not correspond to a supported duration (10, 20 or 30 ms at 16 kHz).
var ErrInvalidFrameLength = errors.New("vad: frame length must be 10, 20 or 30 ms of 16 kHz audio")

// Detector is the common interface over the speech probability detectors.
type Detector interface {
	// Detect returns the probability in [0, 1] that frame contains speech.
	// frame is raw 16 kHz 16-bit little-endian mono PCM. Stateful detectors
	// update internal recurrent state on every call, so frames of one stream
	// must be passed in order from a single goroutine.
	Detect(frame []byte) (float32, error)

	// Reset clears accumulated state back to initial conditions. Call it
	// between independent audio streams. No-op for stateless detectors.
	Reset() error

	// Destroy releases resources held by the detector. The detector must not
	// be used afterwards.
	Destroy() error
}
