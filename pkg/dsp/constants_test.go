package dsp

import (
	"testing"
)

func TestConstants(t *testing.T) {
	// Test that min/max values make sense
	tests := []struct {
		name string
		min  float64
		max  float64
	}{
		{"Sample", MinSample, MaxSample},
		{"Pitch", PitchMinFrequency, PitchMaxFrequency},
		{"Silence vs Gate", DefaultSilenceThreshold, DefaultGateThreshold},
		{"Gate vs Comp", DefaultGateThreshold, DefaultCompThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.min >= tt.max {
				t.Errorf("%s: min (%f) >= max (%f)", tt.name, tt.min, tt.max)
			}
		})
	}
}

func TestDefaultSizes(t *testing.T) {
	if DefaultFrameSize*2 != DefaultFFTSize {
		t.Errorf("Frame size should be half the FFT size: got %d and %d", DefaultFrameSize, DefaultFFTSize)
	}
	if CenterSample*2 != MaxSample+1 {
		t.Errorf("Center sample should split the byte range: got %d", CenterSample)
	}
}

func TestNyquist(t *testing.T) {
	if Nyquist(DefaultSampleRate) != 22050 {
		t.Errorf("Nyquist mismatch: expected 22050, got %f", Nyquist(DefaultSampleRate))
	}
}
