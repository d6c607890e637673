// Package analysis computes descriptive features from unsigned 8-bit sample
// buffers.
//
// Two buffer flavors are used throughout:
//   - time-domain buffers hold amplitude samples centered at 128
//   - frequency-domain buffers hold one magnitude per bin, where bin i of N
//     maps to i/N * sampleRate/2
//
// Level features:
//   - RMS and Peak, normalized to [0, 1]
//   - Zero-crossing rate
//
// Spectral features:
//   - Spectral centroid, rolloff and energy
//   - ByteAnalyser, which produces frequency-domain buffers from time-domain
//     ones (Blackman window, smoothing, dB scaling)
//
// Detection:
//   - Autocorrelation pitch estimate between 50 Hz and 500 Hz
//   - Silence and voicing heuristics
//
// Statistics:
//   - ComputeStats for min, max, mean, median, standard deviation, range and
//     dynamic range
//
// Every function except ByteAnalyser is pure and safe for concurrent use.
// Degenerate input (nil or empty buffers, silent spectra) yields a defined
// value instead of a panic.
//
// Example usage:
//
//	features := analysis.ExtractFeatures(timeData, freqData, 44100)
//	if !analysis.DetectSilence(timeData, 0.01) {
//	    pitch := analysis.ExtractPitch(timeData, 44100)
//	}
//
//	ba := analysis.NewByteAnalyser(2048)
//	freqData := ba.Analyse(timeData)
package analysis
