package dynamics

import (
	"math"

	"github.com/voiceshape/voiceshape/pkg/dsp"
	"github.com/voiceshape/voiceshape/pkg/dsp/analysis"
)

// NormalizeAudio scales buffer so that its RMS level approaches targetRMS.
// Clamping can leave the result slightly below target for loud targets. A
// silent buffer passes through. A new buffer is always returned.
func NormalizeAudio(buffer []byte, targetRMS float64) []byte {
	rms := analysis.RMS(buffer)
	if rms <= 0 {
		return dsp.Clone(buffer)
	}
	return dsp.ScaleDeviation(buffer, targetRMS/rms)
}

// Normalizer scales buffers to a target RMS level
type Normalizer struct {
	target float64
}

// NewNormalizer creates a new normalizer with a 0.3 RMS target
func NewNormalizer() *Normalizer {
	return &Normalizer{target: dsp.DefaultTargetRMS}
}

// SetTarget sets the target RMS level (0-1)
func (n *Normalizer) SetTarget(targetRMS float64) {
	n.target = math.Max(0.0, math.Min(1.0, targetRMS))
}

// Target returns the target RMS level
func (n *Normalizer) Target() float64 {
	return n.target
}

// Process returns the normalized copy of buffer. A nil normalizer passes
// buffer through.
func (n *Normalizer) Process(buffer []byte) []byte {
	if n == nil {
		return dsp.Clone(buffer)
	}
	return NormalizeAudio(buffer, n.target)
}

// Processor transforms a time-domain buffer into a new buffer
type Processor interface {
	Process(buffer []byte) []byte
}

// Chain runs buffer through each processor in order. Nil processors, and
// typed nil *Gate, *Compressor or *Normalizer values, are skipped. A copy of
// buffer is returned when no processors are given.
func Chain(buffer []byte, processors ...Processor) []byte {
	out := dsp.Clone(buffer)
	for _, p := range processors {
		if p == nil {
			continue
		}
		out = p.Process(out)
	}
	return out
}
