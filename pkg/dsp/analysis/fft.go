package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// WindowFunc represents a window function type
type WindowFunc int

const (
	RectangularWindow WindowFunc = iota
	HannWindow
	HammingWindow
	BlackmanWindow
)

// String returns the window name
func (w WindowFunc) String() string {
	switch w {
	case RectangularWindow:
		return "rectangular"
	case HannWindow:
		return "hann"
	case HammingWindow:
		return "hamming"
	case BlackmanWindow:
		return "blackman"
	default:
		return "unknown"
	}
}

// Coefficients returns the window coefficients for a frame of n samples
func (w WindowFunc) Coefficients(n int) []float64 {
	switch w {
	case HannWindow:
		return window.Hann(n)
	case HammingWindow:
		return window.Hamming(n)
	case BlackmanWindow:
		return window.Blackman(n)
	default:
		return window.Rectangular(n)
	}
}

// MagnitudeSpectrum windows input and returns the magnitudes of the first
// len(input)/2 FFT bins, scaled by 1/len(input)
func MagnitudeSpectrum(input []float64, coeffs []float64) []float64 {
	n := len(input)
	if n == 0 {
		return nil
	}

	// Apply window
	windowed := make([]float64, n)
	for i := range input {
		if i < len(coeffs) {
			windowed[i] = input[i] * coeffs[i]
		}
	}

	spectrum := fft.FFTReal(windowed)

	magnitude := make([]float64, n/2)
	scale := 1.0 / float64(n)
	for i := range magnitude {
		magnitude[i] = cmplx.Abs(spectrum[i]) * scale
	}
	return magnitude
}
