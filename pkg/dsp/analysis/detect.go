package analysis

import "github.com/voiceshape/voiceshape/pkg/dsp"

// DetectSilence reports whether the RMS level of buffer is below threshold
func DetectSilence(buffer []byte, threshold float64) bool {
	return RMS(buffer) < threshold
}

// DetectVoicing is a simple voiced-speech heuristic: low zero-crossing rate
// combined with a low spectral centroid. It is not a trained classifier and
// its thresholds are fixed. Empty buffers are never voiced.
func DetectVoicing(timeData, freqData []byte, sampleRate float64) bool {
	if len(timeData) == 0 || len(freqData) == 0 {
		return false
	}
	zcr := ZeroCrossingRate(timeData)
	centroid := SpectralCentroid(freqData, sampleRate)
	return zcr < dsp.VoicingMaxZeroCrossingRate && centroid < dsp.VoicingMaxCentroid
}
