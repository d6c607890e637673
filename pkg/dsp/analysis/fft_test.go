package analysis

import (
	"math"
	"testing"
)

func TestWindowCoefficients(t *testing.T) {
	windows := []WindowFunc{RectangularWindow, HannWindow, HammingWindow, BlackmanWindow}

	for _, w := range windows {
		t.Run(w.String(), func(t *testing.T) {
			coeffs := w.Coefficients(256)
			if len(coeffs) != 256 {
				t.Fatalf("Window length mismatch: expected 256, got %d", len(coeffs))
			}
			for i, c := range coeffs {
				if c < -1e-9 || c > 1+1e-9 {
					t.Fatalf("Coefficient %d out of range: %f", i, c)
				}
			}
		})
	}

	if WindowFunc(99).String() != "unknown" {
		t.Error("Unknown window should report \"unknown\"")
	}
}

func TestMagnitudeSpectrumDC(t *testing.T) {
	size := 64
	input := make([]float64, size)
	for i := range input {
		input[i] = 1.0
	}

	magnitude := MagnitudeSpectrum(input, RectangularWindow.Coefficients(size))
	if len(magnitude) != size/2 {
		t.Fatalf("Spectrum length mismatch: expected %d, got %d", size/2, len(magnitude))
	}

	if math.Abs(magnitude[0]-1.0) > 1e-9 {
		t.Errorf("DC magnitude mismatch: expected 1.0, got %f", magnitude[0])
	}
	for i := 1; i < len(magnitude); i++ {
		if magnitude[i] > 1e-9 {
			t.Errorf("Bin %d should be empty for DC input, got %f", i, magnitude[i])
		}
	}
}

func TestMagnitudeSpectrumSine(t *testing.T) {
	size := 256
	bin := 16
	input := make([]float64, size)
	for i := range input {
		input[i] = math.Sin(2.0 * math.Pi * float64(bin) * float64(i) / float64(size))
	}

	magnitude := MagnitudeSpectrum(input, RectangularWindow.Coefficients(size))

	// A full-scale sine lands half its amplitude in the positive bin
	if math.Abs(magnitude[bin]-0.5) > 1e-9 {
		t.Errorf("Sine magnitude mismatch: expected 0.5, got %f", magnitude[bin])
	}
}

func TestMagnitudeSpectrumEmpty(t *testing.T) {
	if MagnitudeSpectrum(nil, nil) != nil {
		t.Error("Empty input should yield nil spectrum")
	}
}
