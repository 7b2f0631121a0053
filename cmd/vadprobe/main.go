// vadprobe runs a speech detector over a WAV file and prints per-frame
// speech probabilities and the speech segments the gate reports.
//
// The input must be 16 kHz, 16-bit, mono. The Silero engine needs a model
// path via -model or the SILERO_MODEL environment variable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/joho/godotenv"

	"github.com/vadkit/vadkit/pkg/audio"
	"github.com/vadkit/vadkit/pkg/vad"
)

func main() {
	godotenv.Load()

	engine := flag.String("engine", "silero", "detector engine: silero or webrtc")
	modelPath := flag.String("model", os.Getenv("SILERO_MODEL"), "path to silero_vad.onnx (silero engine)")
	mode := flag.Int("mode", vad.DefaultWebRTCMode, "aggressiveness mode 0-3 (webrtc engine)")
	frameMs := flag.Int("frame", 30, "frame duration in ms")
	threshold := flag.Float64("threshold", 0.5, "speech probability threshold")
	silenceMs := flag.Int("silence", 100, "silence hangover in ms")
	quiet := flag.Bool("quiet", false, "only print segment transitions")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: vadprobe [flags] <file.wav>")
	}

	pcm, err := readWAV(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to read %s: %v", flag.Arg(0), err)
	}

	detector, err := newDetector(*engine, *modelPath, *mode)
	if err != nil {
		log.Fatalf("failed to create %s detector: %v", *engine, err)
	}
	defer detector.Destroy()

	gate := vad.NewGate(detector, vad.GateConfig{
		Threshold:    float32(*threshold),
		MinSilenceMs: *silenceMs,
	})

	frameBytes := vad.SampleRate * *frameMs / 1000 * audio.BytesPerSample
	for off := 0; off+frameBytes <= len(pcm); off += frameBytes {
		startMs := off / audio.BytesPerSample * 1000 / vad.SampleRate

		event, prob, err := gate.Push(pcm[off : off+frameBytes])
		if err != nil {
			log.Fatalf("detect at %dms: %v", startMs, err)
		}

		switch event {
		case vad.GateSpeechStart:
			fmt.Printf("%8dms  speech start (p=%.3f)\n", startMs, prob)
		case vad.GateSpeechEnd:
			fmt.Printf("%8dms  speech end   (p=%.3f)\n", startMs, prob)
		default:
			if !*quiet {
				fmt.Printf("%8dms  p=%.3f\n", startMs, prob)
			}
		}
	}
}

func newDetector(engine, modelPath string, mode int) (vad.Detector, error) {
	switch engine {
	case "silero":
		if modelPath == "" {
			return nil, fmt.Errorf("silero engine requires -model or SILERO_MODEL")
		}
		if err := vad.InitRuntime(""); err != nil {
			return nil, err
		}
		return vad.NewSileroDetector(modelPath)
	case "webrtc":
		return vad.NewWebRTCDetector(mode)
	default:
		return nil, fmt.Errorf("unknown engine %q", engine)
	}
}

// readWAV loads a 16 kHz 16-bit mono WAV file as raw PCM bytes.
func readWAV(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}

	if err := checkFormat(buf, int(dec.BitDepth)); err != nil {
		return nil, err
	}

	samples := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = int16(s)
	}
	return audio.EncodePCM16(samples), nil
}

func checkFormat(buf *goaudio.IntBuffer, bitDepth int) error {
	if buf.Format == nil {
		return fmt.Errorf("wav has no format information")
	}
	if buf.Format.SampleRate != vad.SampleRate {
		return fmt.Errorf("wav must be %d Hz, got %d Hz", vad.SampleRate, buf.Format.SampleRate)
	}
	if buf.Format.NumChannels != 1 {
		return fmt.Errorf("wav must be mono, got %d channels", buf.Format.NumChannels)
	}
	if bitDepth != 16 {
		return fmt.Errorf("wav must be 16-bit, got %d-bit", bitDepth)
	}
	return nil
}
