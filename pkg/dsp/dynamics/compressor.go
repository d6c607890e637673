// Package dynamics provides block dynamics processing for 8-bit time-domain
// buffers: noise gate, compressor and normalizer.
package dynamics

import (
	"math"

	"github.com/voiceshape/voiceshape/pkg/dsp"
	"github.com/voiceshape/voiceshape/pkg/dsp/analysis"
)

// CompressionGain returns the static gain applied to a buffer with the given
// RMS level. Levels at or below threshold get unity gain.
func CompressionGain(rms, threshold, ratio float64) float64 {
	if ratio <= 0 || rms <= threshold {
		return 1.0
	}
	gainReduction := (rms - threshold) * (1.0 - 1.0/ratio)
	return 1.0 - gainReduction
}

// ApplyCompression scales a loud buffer down with one static gain computed
// from its RMS level. This is not an envelope-following compressor: every
// sample in the buffer receives the same gain. A new buffer is always
// returned.
func ApplyCompression(buffer []byte, threshold, ratio float64) []byte {
	rms := analysis.RMS(buffer)
	if ratio <= 0 || rms <= threshold {
		return dsp.Clone(buffer)
	}
	return dsp.ScaleDeviation(buffer, CompressionGain(rms, threshold, ratio))
}

// Compressor is a configurable static-gain block compressor
type Compressor struct {
	threshold float64 // Linear RMS threshold (0-1)
	ratio     float64 // Compression ratio (e.g., 4.0 for 4:1)

	// Accepted for interface compatibility, not used by the gain computation
	attack  float64 // seconds
	release float64 // seconds
}

// NewCompressor creates a new compressor with default settings
func NewCompressor() *Compressor {
	return &Compressor{
		threshold: dsp.DefaultCompThreshold, // 0.5 RMS
		ratio:     dsp.DefaultCompRatio,     // 4:1
		attack:    dsp.DefaultCompAttack,
		release:   dsp.DefaultCompRelease,
	}
}

// SetThreshold sets the RMS threshold above which gain is reduced
func (c *Compressor) SetThreshold(threshold float64) {
	c.threshold = math.Max(0.0, threshold)
}

// SetRatio sets the compression ratio
func (c *Compressor) SetRatio(ratio float64) {
	c.ratio = ratio
}

// SetAttack sets the attack time in seconds. It does not affect processing.
func (c *Compressor) SetAttack(seconds float64) {
	c.attack = math.Max(0.0, seconds)
}

// SetRelease sets the release time in seconds. It does not affect processing.
func (c *Compressor) SetRelease(seconds float64) {
	c.release = math.Max(0.0, seconds)
}

// Threshold returns the RMS threshold
func (c *Compressor) Threshold() float64 {
	return c.threshold
}

// Ratio returns the compression ratio
func (c *Compressor) Ratio() float64 {
	return c.ratio
}

// Attack returns the attack time in seconds
func (c *Compressor) Attack() float64 {
	return c.attack
}

// Release returns the release time in seconds
func (c *Compressor) Release() float64 {
	return c.release
}

// Gain returns the gain that Process would apply to buffer
func (c *Compressor) Gain(buffer []byte) float64 {
	return CompressionGain(analysis.RMS(buffer), c.threshold, c.ratio)
}

// Process returns the compressed copy of buffer. A nil compressor passes
// buffer through.
func (c *Compressor) Process(buffer []byte) []byte {
	if c == nil {
		return dsp.Clone(buffer)
	}
	return ApplyCompression(buffer, c.threshold, c.ratio)
}
