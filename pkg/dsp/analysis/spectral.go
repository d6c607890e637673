package analysis

import (
	"github.com/voiceshape/voiceshape/pkg/dsp"
)

// BinFrequency returns the frequency in Hz of bin i out of n bins, where the
// bins span 0 Hz up to (but excluding) Nyquist.
func BinFrequency(i, n int, sampleRate float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) / float64(n) * dsp.Nyquist(sampleRate)
}

// SpectralCentroid returns the magnitude-weighted mean frequency of a
// frequency-domain buffer. Returns 0 when the buffer carries no energy.
func SpectralCentroid(spectrum []byte, sampleRate float64) float64 {
	numerator := 0.0
	denominator := 0.0

	for i, m := range spectrum {
		mag := float64(m)
		numerator += BinFrequency(i, len(spectrum), sampleRate) * mag
		denominator += mag
	}

	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// SpectralRolloff returns the frequency below which threshold (0-1) of the
// total magnitude lies. Nyquist is returned when the threshold is never
// reached, including for an all-zero or empty spectrum.
func SpectralRolloff(spectrum []byte, sampleRate, threshold float64) float64 {
	nyquist := dsp.Nyquist(sampleRate)

	total := 0.0
	for _, m := range spectrum {
		total += float64(m)
	}
	if total == 0 {
		return nyquist
	}

	target := total * threshold
	cumulative := 0.0
	for i, m := range spectrum {
		cumulative += float64(m)
		if cumulative >= target {
			return BinFrequency(i, len(spectrum), sampleRate)
		}
	}

	return nyquist
}

// SpectralEnergy returns the mean of the squared bin magnitudes
func SpectralEnergy(spectrum []byte) float64 {
	if len(spectrum) == 0 {
		return 0
	}

	sum := 0.0
	for _, m := range spectrum {
		mag := float64(m)
		sum += mag * mag
	}
	return sum / float64(len(spectrum))
}
