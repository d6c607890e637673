package dynamics

import (
	"math"

	"github.com/voiceshape/voiceshape/pkg/dsp"
	"github.com/voiceshape/voiceshape/pkg/dsp/analysis"
)

// ApplyNoiseGate attenuates a quiet buffer as a whole. When the RMS level of
// buffer is below threshold every deviation from the center is divided by
// ratio; otherwise the buffer passes through. A new buffer is always returned.
func ApplyNoiseGate(buffer []byte, threshold, ratio float64) []byte {
	if ratio <= 0 || analysis.RMS(buffer) >= threshold {
		return dsp.Clone(buffer)
	}
	return dsp.ScaleDeviation(buffer, 1.0/ratio)
}

// Gate is a configurable block noise gate. The decision is taken once per
// buffer from its RMS level.
type Gate struct {
	threshold float64 // Linear RMS threshold (0-1)
	ratio     float64 // Attenuation ratio applied below threshold

	// Accepted for interface compatibility. The gate decision is made per
	// buffer, so no envelope follows these times.
	attack  float64 // seconds
	release float64 // seconds
}

// NewGate creates a new noise gate with default settings
func NewGate() *Gate {
	return &Gate{
		threshold: dsp.DefaultGateThreshold, // 0.02 RMS
		ratio:     dsp.DefaultGateRatio,     // 10:1
		attack:    dsp.DefaultGateAttack,
		release:   dsp.DefaultGateRelease,
	}
}

// SetThreshold sets the RMS threshold below which the gate attenuates
func (g *Gate) SetThreshold(threshold float64) {
	g.threshold = math.Max(0.0, threshold)
}

// SetRatio sets the attenuation ratio
func (g *Gate) SetRatio(ratio float64) {
	g.ratio = ratio
}

// SetAttack sets the attack time in seconds. It does not affect processing.
func (g *Gate) SetAttack(seconds float64) {
	g.attack = math.Max(0.0, seconds)
}

// SetRelease sets the release time in seconds. It does not affect processing.
func (g *Gate) SetRelease(seconds float64) {
	g.release = math.Max(0.0, seconds)
}

// Threshold returns the RMS threshold
func (g *Gate) Threshold() float64 {
	return g.threshold
}

// Ratio returns the attenuation ratio
func (g *Gate) Ratio() float64 {
	return g.ratio
}

// Attack returns the attack time in seconds
func (g *Gate) Attack() float64 {
	return g.attack
}

// Release returns the release time in seconds
func (g *Gate) Release() float64 {
	return g.release
}

// IsOpen reports whether buffer would pass the gate unchanged
func (g *Gate) IsOpen(buffer []byte) bool {
	return analysis.RMS(buffer) >= g.threshold
}

// Process returns the gated copy of buffer. A nil gate passes buffer through.
func (g *Gate) Process(buffer []byte) []byte {
	if g == nil {
		return dsp.Clone(buffer)
	}
	return ApplyNoiseGate(buffer, g.threshold, g.ratio)
}
