// Package engine binds the feature and dynamics functions to a sample rate,
// a set of thresholds and a logger.
package engine

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/voiceshape/voiceshape/pkg/dsp"
	"github.com/voiceshape/voiceshape/pkg/dsp/analysis"
	"github.com/voiceshape/voiceshape/pkg/dsp/dynamics"
)

// Engine is the signal feature engine. It is immutable once built and safe
// for concurrent use.
type Engine struct {
	sampleRate       float64
	silenceThreshold float64
	rolloffThreshold float64
	concurrency      int

	// Parameters for the Apply methods. Each is the engine's own copy.
	gate       *dynamics.Gate
	compressor *dynamics.Compressor
	normalizer *dynamics.Normalizer

	// Process chain slots, nil when the stage is disabled
	gateStage       *dynamics.Gate
	compressorStage *dynamics.Compressor
	normalizerStage *dynamics.Normalizer

	logger *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithSampleRate sets the sample rate in Hz. Non-positive values are ignored.
func WithSampleRate(sampleRate float64) Option {
	return func(e *Engine) {
		if sampleRate > 0 {
			e.sampleRate = sampleRate
		}
	}
}

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSilenceThreshold sets the RMS level below which a buffer is silent
func WithSilenceThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.silenceThreshold = threshold
	}
}

// WithRolloffThreshold sets the spectral rolloff fraction (0-1)
func WithRolloffThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.rolloffThreshold = threshold
	}
}

// WithConcurrency limits the number of frames analysed at once by AnalyzeBatch
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithGate copies the gate parameters and enables the gate stage of the
// Process chain. Later changes to g do not affect the engine. Given more than
// once, the last gate wins.
func WithGate(g *dynamics.Gate) Option {
	return func(e *Engine) {
		if g != nil {
			cp := *g
			e.gate = &cp
			e.gateStage = &cp
		}
	}
}

// WithCompressor copies the compressor parameters and enables the compressor
// stage of the Process chain. Given more than once, the last compressor wins.
func WithCompressor(c *dynamics.Compressor) Option {
	return func(e *Engine) {
		if c != nil {
			cp := *c
			e.compressor = &cp
			e.compressorStage = &cp
		}
	}
}

// WithNormalizer copies the normalizer target and enables the normalizer
// stage of the Process chain. Given more than once, the last normalizer wins.
func WithNormalizer(n *dynamics.Normalizer) Option {
	return func(e *Engine) {
		if n != nil {
			cp := *n
			e.normalizer = &cp
			e.normalizerStage = &cp
		}
	}
}

// New creates an engine. Without options it runs at 44.1 kHz with the
// default thresholds and an empty Process chain.
func New(opts ...Option) *Engine {
	e := &Engine{
		sampleRate:       dsp.DefaultSampleRate,
		silenceThreshold: dsp.DefaultSilenceThreshold,
		rolloffThreshold: dsp.DefaultRolloffThreshold,
		concurrency:      runtime.NumCPU(),
		gate:             dynamics.NewGate(),
		compressor:       dynamics.NewCompressor(),
		normalizer:       dynamics.NewNormalizer(),
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logger.Debug("engine ready",
		zap.Float64("sample_rate", e.sampleRate),
		zap.Float64("silence_threshold", e.silenceThreshold),
		zap.Float64("rolloff_threshold", e.rolloffThreshold),
		zap.Int("stages", len(e.stages())),
		zap.Int("concurrency", e.concurrency))

	return e
}

// SampleRate returns the bound sample rate
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// RMS returns the normalized RMS level of a time-domain buffer
func (e *Engine) RMS(timeData []byte) float64 {
	return analysis.RMS(timeData)
}

// Peak returns the normalized peak level of a time-domain buffer
func (e *Engine) Peak(timeData []byte) float64 {
	return analysis.Peak(timeData)
}

// ZeroCrossingRate returns the zero-crossing rate of a time-domain buffer
func (e *Engine) ZeroCrossingRate(timeData []byte) float64 {
	return analysis.ZeroCrossingRate(timeData)
}

// SpectralCentroid returns the centroid in Hz of a frequency-domain buffer
func (e *Engine) SpectralCentroid(freqData []byte) float64 {
	return analysis.SpectralCentroid(freqData, e.sampleRate)
}

// SpectralRolloff returns the rolloff frequency in Hz of a frequency-domain buffer
func (e *Engine) SpectralRolloff(freqData []byte) float64 {
	return analysis.SpectralRolloff(freqData, e.sampleRate, e.rolloffThreshold)
}

// SpectralEnergy returns the mean squared magnitude of a frequency-domain buffer
func (e *Engine) SpectralEnergy(freqData []byte) float64 {
	return analysis.SpectralEnergy(freqData)
}

// ExtractPitch returns the autocorrelation pitch estimate in Hz, or 0
func (e *Engine) ExtractPitch(timeData []byte) float64 {
	return analysis.ExtractPitch(timeData, e.sampleRate)
}

// DetectSilence reports whether a time-domain buffer is below the silence threshold
func (e *Engine) DetectSilence(timeData []byte) bool {
	return analysis.DetectSilence(timeData, e.silenceThreshold)
}

// DetectVoicing applies the voicing heuristic to a snapshot pair
func (e *Engine) DetectVoicing(timeData, freqData []byte) bool {
	return analysis.DetectVoicing(timeData, freqData, e.sampleRate)
}

// ApplyNoiseGate gates a time-domain buffer with the engine gate parameters
func (e *Engine) ApplyNoiseGate(timeData []byte) []byte {
	return e.gate.Process(timeData)
}

// ApplyCompression compresses a time-domain buffer with the engine compressor parameters
func (e *Engine) ApplyCompression(timeData []byte) []byte {
	return e.compressor.Process(timeData)
}

// NormalizeAudio normalizes a time-domain buffer to the engine target RMS
func (e *Engine) NormalizeAudio(timeData []byte) []byte {
	return e.normalizer.Process(timeData)
}

// ComputeStats returns descriptive statistics of a buffer
func (e *Engine) ComputeStats(buffer []byte) analysis.AudioStats {
	return analysis.ComputeStats(buffer)
}

// Features computes the full feature set of a snapshot pair
func (e *Engine) Features(timeData, freqData []byte) analysis.FeatureSet {
	return analysis.ExtractFeaturesWithRolloff(timeData, freqData, e.sampleRate, e.rolloffThreshold)
}

// Process runs a time-domain buffer through the enabled gate, compressor and
// normalizer stages, always in that order. The input is never modified.
func (e *Engine) Process(timeData []byte) []byte {
	return dynamics.Chain(timeData, e.stages()...)
}

func (e *Engine) stages() []dynamics.Processor {
	stages := make([]dynamics.Processor, 0, 3)
	if e.gateStage != nil {
		stages = append(stages, e.gateStage)
	}
	if e.compressorStage != nil {
		stages = append(stages, e.compressorStage)
	}
	if e.normalizerStage != nil {
		stages = append(stages, e.normalizerStage)
	}
	return stages
}
