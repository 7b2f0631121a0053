package vad

import (
	"fmt"

	"github.com/vadkit/vadkit/pkg/audio"
)

// GateEvent is the speaking-state transition reported for a pushed frame.
type GateEvent int

const (
	// GateNone means the speaking state did not change.
	GateNone GateEvent = iota
	// GateSpeechStart means the frame crossed into speech.
	GateSpeechStart
	// GateSpeechEnd means silence lasted long enough to close the segment.
	GateSpeechEnd
)

// GateConfig holds configuration for a Gate.
type GateConfig struct {
	// Threshold is the probability at or above which a frame counts as
	// speech. Default 0.5.
	Threshold float32
	// MinSilenceMs is how much continuous sub-threshold audio ends a speech
	// segment. Default 100 ms.
	MinSilenceMs int
	// PreRollMs is how much audio preceding speech onset to retain. Default
	// 300 ms; negative disables pre-roll.
	PreRollMs int
}

// Gate tracks speaking state over a stream of frames using any Detector.
// It applies a probability threshold with a minimum-silence hangover so brief
// dips below the threshold do not split a segment, and keeps a pre-roll
// buffer of the audio just before speech onset. Like the detectors, a Gate
// serves one stream from one goroutine.
type Gate struct {
	det Detector
	cfg GateConfig

	speaking  bool
	silenceMs int
	preRoll   *audio.PreRoll
}

// NewGate creates a gate over det, filling zero config fields with defaults.
func NewGate(det Detector, cfg GateConfig) *Gate {
	if cfg.Threshold == 0 {
		cfg.Threshold = 0.5
	}
	if cfg.MinSilenceMs == 0 {
		cfg.MinSilenceMs = 100
	}
	if cfg.PreRollMs == 0 {
		cfg.PreRollMs = 300
	}

	g := &Gate{det: det, cfg: cfg}
	if cfg.PreRollMs > 0 {
		g.preRoll = audio.NewPreRoll(SampleRate, cfg.PreRollMs)
	}
	return g
}

// Push runs detection on one frame and returns the resulting transition and
// the raw speech probability. Frames must arrive in stream order.
func (g *Gate) Push(frame []byte) (GateEvent, float32, error) {
	prob, err := g.det.Detect(frame)
	if err != nil {
		return GateNone, 0, fmt.Errorf("gate detect: %w", err)
	}

	frameMs := len(frame) / audio.BytesPerSample * 1000 / SampleRate

	if prob >= g.cfg.Threshold {
		g.silenceMs = 0
		if !g.speaking {
			g.speaking = true
			return GateSpeechStart, prob, nil
		}
		return GateNone, prob, nil
	}

	if g.preRoll != nil && !g.speaking {
		g.preRoll.Write(frame)
	}

	if g.speaking {
		g.silenceMs += frameMs
		if g.silenceMs >= g.cfg.MinSilenceMs {
			g.speaking = false
			g.silenceMs = 0
			return GateSpeechEnd, prob, nil
		}
	}

	return GateNone, prob, nil
}

// Speaking reports whether the gate is currently inside a speech segment.
func (g *Gate) Speaking() bool { return g.speaking }

// PreRoll returns the buffered audio captured before the current speech
// onset, oldest first. Nil when pre-roll is disabled.
func (g *Gate) PreRoll() []byte {
	if g.preRoll == nil {
		return nil
	}
	return g.preRoll.Bytes()
}

// Reset clears the gate and the underlying detector for a new stream.
func (g *Gate) Reset() error {
	g.speaking = false
	g.silenceMs = 0
	if g.preRoll != nil {
		g.preRoll.Reset()
	}
	return g.det.Reset()
}
