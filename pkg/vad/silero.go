package vad

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/vadkit/vadkit/pkg/audio"
)

// Recurrent state tensors are shape (2, 1, 64), float32.
const (
	stateDim0 = 2
	stateDim1 = 1
	stateDim2 = 64
	stateLen  = stateDim0 * stateDim1 * stateDim2
)

// SileroDetector runs the Silero VAD model over per-frame inference calls,
// carrying the model's hidden and cell state between calls. It is not safe
// for concurrent use: every Detect mutates the recurrent state, so frames of
// a stream must be fed in order. Separate instances are fully independent.
type SileroDetector struct {
	session *ort.DynamicAdvancedSession

	// LSTM hidden and cell state, owned exclusively by this instance.
	h [stateLen]float32
	c [stateLen]float32
}

// NewSileroDetector loads the ONNX model at modelPath into a session
// configured for single-threaded execution (intra-op = inter-op = 1), which
// keeps per-frame inference deterministic and free of thread-pool overhead.
// A missing or corrupt model fails construction; the instance is unusable and
// the caller must reconstruct.
func NewSileroDetector(modelPath string) (*SileroDetector, error) {
	runtimeMu.Lock()
	initialized := runtimeInitialized
	runtimeMu.Unlock()
	if !initialized {
		if err := InitRuntime(""); err != nil {
			return nil, fmt.Errorf("ONNX runtime not initialized: %w", err)
		}
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer options.Destroy()

	if err := options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		return nil, fmt.Errorf("failed to set graph optimization level: %w", err)
	}
	if err := options.SetIntraOpNumThreads(1); err != nil {
		return nil, fmt.Errorf("failed to set intra-op threads: %w", err)
	}
	if err := options.SetInterOpNumThreads(1); err != nil {
		return nil, fmt.Errorf("failed to set inter-op threads: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{"input", "h", "c", "sr"},
		[]string{"output", "hn", "cn"},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load VAD model %q: %w", modelPath, err)
	}

	return &SileroDetector{session: session}, nil
}

// Detect returns the probability in [0, 1] that frame contains speech.
// frame must be 16 kHz 16-bit little-endian mono PCM; an odd byte count
// fails with audio.ErrMalformedFrame.
func (sd *SileroDetector) Detect(frame []byte) (float32, error) {
	if sd == nil || sd.session == nil {
		return 0, fmt.Errorf("vad: detector not initialized")
	}

	// Samples are scaled by 1/32767, matching the model's training
	// normalization. The minimum sample maps slightly below -1.
	samples, err := audio.NormalizePCM16(frame)
	if err != nil {
		return 0, err
	}

	// Batch dimension of 1: the model expects shape (batch, samples).
	inputTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(samples))), samples)
	if err != nil {
		return 0, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	stateShape := ort.NewShape(stateDim0, stateDim1, stateDim2)
	hTensor, err := ort.NewTensor(stateShape, sd.h[:])
	if err != nil {
		return 0, fmt.Errorf("failed to create h tensor: %w", err)
	}
	defer hTensor.Destroy()

	cTensor, err := ort.NewTensor(stateShape, sd.c[:])
	if err != nil {
		return 0, fmt.Errorf("failed to create c tensor: %w", err)
	}
	defer cTensor.Destroy()

	srTensor, err := ort.NewTensor(ort.NewShape(1), []int64{SampleRate})
	if err != nil {
		return 0, fmt.Errorf("failed to create sr tensor: %w", err)
	}
	defer srTensor.Destroy()

	hnTensor, err := ort.NewEmptyTensor[float32](stateShape)
	if err != nil {
		return 0, fmt.Errorf("failed to create hn tensor: %w", err)
	}
	defer hnTensor.Destroy()

	cnTensor, err := ort.NewEmptyTensor[float32](stateShape)
	if err != nil {
		return 0, fmt.Errorf("failed to create cn tensor: %w", err)
	}
	defer cnTensor.Destroy()

	// The probability output is left nil so the engine allocates it with
	// whatever singleton dimensions the graph declares.
	inputs := []ort.Value{inputTensor, hTensor, cTensor, srTensor}
	outputs := []ort.Value{nil, hnTensor, cnTensor}

	if err := sd.session.Run(inputs, outputs); err != nil {
		return 0, fmt.Errorf("failed to run inference: %w", err)
	}

	probTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return 0, fmt.Errorf("unexpected output tensor type %T", outputs[0])
	}
	defer probTensor.Destroy()

	// Recurrence carries forward: the returned states replace the stored ones.
	copy(sd.h[:], hnTensor.GetData())
	copy(sd.c[:], cnTensor.GetData())

	probData := probTensor.GetData()
	if len(probData) == 0 {
		return 0, fmt.Errorf("empty output from inference")
	}

	return probData[0], nil
}

// Reset zeroes the hidden and cell state. Call it between independent audio
// streams so state from a prior stream cannot leak into the next.
func (sd *SileroDetector) Reset() error {
	if sd == nil {
		return fmt.Errorf("vad: invalid nil detector")
	}

	sd.h = [stateLen]float32{}
	sd.c = [stateLen]float32{}
	return nil
}

// Destroy releases the inference session. The detector must not be used
// afterwards.
func (sd *SileroDetector) Destroy() error {
	if sd == nil {
		return fmt.Errorf("vad: invalid nil detector")
	}

	if sd.session != nil {
		if err := sd.session.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy session: %w", err)
		}
		sd.session = nil
	}
	return nil
}

var _ Detector = (*SileroDetector)(nil)
