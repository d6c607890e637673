package analysis

import (
	"math"
	"sync"

	"github.com/voiceshape/voiceshape/pkg/dsp"
)

// Byte spectrum defaults, matching a browser analyser node
const (
	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0
)

// ByteAnalyser turns time-domain byte buffers into frequency-domain byte
// buffers. It keeps the most recent fftSize samples and a smoothed magnitude
// spectrum between calls, so one analyser serves one stream.
type ByteAnalyser struct {
	fftSize     int
	window      []float64
	history     []float64
	smoothed    []float64
	smoothing   float64
	minDecibels float64
	maxDecibels float64
	mu          sync.Mutex
}

// NewByteAnalyser creates a new analyser with the given FFT size and a
// Blackman window. It yields fftSize/2 bins per snapshot.
func NewByteAnalyser(fftSize int) *ByteAnalyser {
	if fftSize < 2 {
		fftSize = dsp.DefaultFFTSize
	}
	return &ByteAnalyser{
		fftSize:     fftSize,
		window:      BlackmanWindow.Coefficients(fftSize),
		history:     make([]float64, fftSize),
		smoothed:    make([]float64, fftSize/2),
		smoothing:   DefaultSmoothing,
		minDecibels: DefaultMinDecibels,
		maxDecibels: DefaultMaxDecibels,
	}
}

// SetWindow replaces the analysis window
func (ba *ByteAnalyser) SetWindow(w WindowFunc) {
	ba.mu.Lock()
	defer ba.mu.Unlock()
	ba.window = w.Coefficients(ba.fftSize)
}

// SetSmoothing sets the time smoothing constant (0-1)
func (ba *ByteAnalyser) SetSmoothing(smoothing float64) {
	ba.mu.Lock()
	defer ba.mu.Unlock()

	if smoothing >= 0 && smoothing <= 1 {
		ba.smoothing = smoothing
	}
}

// SetDecibelRange sets the dB values mapped to byte 0 and byte 255
func (ba *ByteAnalyser) SetDecibelRange(minDB, maxDB float64) {
	ba.mu.Lock()
	defer ba.mu.Unlock()

	if minDB < maxDB {
		ba.minDecibels = minDB
		ba.maxDecibels = maxDB
	}
}

// FFTSize returns the analyser FFT size
func (ba *ByteAnalyser) FFTSize() int {
	return ba.fftSize
}

// BinCount returns the number of bins in each frequency buffer
func (ba *ByteAnalyser) BinCount() int {
	return ba.fftSize / 2
}

// Analyse pushes a time-domain buffer into the analyser history and returns
// the byte spectrum of the latest fftSize samples.
func (ba *ByteAnalyser) Analyse(timeData []byte) []byte {
	ba.mu.Lock()
	defer ba.mu.Unlock()

	ba.push(timeData)

	magnitude := MagnitudeSpectrum(ba.history, ba.window)

	out := make([]byte, len(ba.smoothed))
	scale := dsp.MaxMagnitude / (ba.maxDecibels - ba.minDecibels)
	for i, mag := range magnitude {
		ba.smoothed[i] = ba.smoothing*ba.smoothed[i] + (1-ba.smoothing)*mag

		if ba.smoothed[i] <= 0 {
			continue
		}
		db := 20.0 * math.Log10(ba.smoothed[i])
		v := math.Floor(scale * (db - ba.minDecibels))
		switch {
		case v < dsp.MinSample:
			out[i] = dsp.MinSample
		case v > dsp.MaxSample:
			out[i] = dsp.MaxSample
		default:
			out[i] = byte(v)
		}
	}

	return out
}

// push shifts new samples into the history window
func (ba *ByteAnalyser) push(timeData []byte) {
	n := len(timeData)
	if n >= ba.fftSize {
		timeData = timeData[n-ba.fftSize:]
		n = ba.fftSize
	} else {
		copy(ba.history, ba.history[n:])
	}

	offset := ba.fftSize - n
	for i, s := range timeData {
		ba.history[offset+i] = dsp.ToFloat(s)
	}
}

// Reset clears the sample history and smoothing state
func (ba *ByteAnalyser) Reset() {
	ba.mu.Lock()
	defer ba.mu.Unlock()

	for i := range ba.history {
		ba.history[i] = 0
	}
	for i := range ba.smoothed {
		ba.smoothed[i] = 0
	}
}

// PeakBin returns the index and magnitude of the loudest bin. Ties resolve to
// the lowest bin.
func PeakBin(spectrum []byte) (int, byte) {
	bin := 0
	var peak byte
	for i, m := range spectrum {
		if m > peak {
			peak = m
			bin = i
		}
	}
	return bin, peak
}
