// Package dsp provides sample buffer utilities shared by the analysis and dynamics packages.
package dsp

// Sample buffer constants. Buffers hold unsigned 8-bit samples, time-domain
// buffers are centered at CenterSample.
const (
	CenterSample = 128   // Zero amplitude in a time-domain buffer
	MinSample    = 0     // Smallest representable sample
	MaxSample    = 255   // Largest representable sample
	FullScale    = 128.0 // Deviation that maps to a normalized level of 1.0
	MaxMagnitude = 255.0 // Largest frequency-domain bin magnitude

	// Common sample rates
	SampleRate16k  = 16000.0
	SampleRate22k  = 22050.0
	SampleRate44k1 = 44100.0
	SampleRate48k  = 48000.0

	DefaultSampleRate = SampleRate44k1

	// Analyser sizes
	DefaultFFTSize   = 2048
	DefaultFrameSize = DefaultFFTSize / 2 // frequencyBinCount of the default FFT
)

// Default thresholds for feature detection and dynamics.
const (
	DefaultSilenceThreshold = 0.01
	DefaultRolloffThreshold = 0.85

	// Voicing heuristic
	VoicingMaxZeroCrossingRate = 0.15
	VoicingMaxCentroid         = 2000.0 // Hz

	// Pitch search range
	PitchMinFrequency = 50.0  // Hz, longest period searched
	PitchMaxFrequency = 500.0 // Hz, shortest period searched

	// Noise gate
	DefaultGateThreshold = 0.02
	DefaultGateRatio     = 10.0
	DefaultGateAttack    = 0.01 // seconds
	DefaultGateRelease   = 0.1  // seconds

	// Compressor
	DefaultCompThreshold = 0.5
	DefaultCompRatio     = 4.0
	DefaultCompAttack    = 0.001 // seconds
	DefaultCompRelease   = 0.1   // seconds

	// Normalizer
	DefaultTargetRMS = 0.3
)

// Nyquist returns half the sample rate.
func Nyquist(sampleRate float64) float64 {
	return sampleRate / 2.0
}
