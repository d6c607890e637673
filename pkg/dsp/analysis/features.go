package analysis

import "github.com/voiceshape/voiceshape/pkg/dsp"

// FeatureSet holds the scalar features computed from one time-domain and
// frequency-domain buffer pair captured at the same instant
type FeatureSet struct {
	RMS              float64 `json:"rms"`
	Peak             float64 `json:"peak"`
	SpectralCentroid float64 `json:"spectralCentroid"`
	ZeroCrossingRate float64 `json:"zeroCrossingRate"`
	SpectralRolloff  float64 `json:"spectralRolloff"`
	Energy           float64 `json:"energy"`
}

// ExtractFeatures computes the full feature set for a snapshot pair.
// Spectral rolloff uses the default 0.85 threshold.
func ExtractFeatures(timeData, freqData []byte, sampleRate float64) FeatureSet {
	return ExtractFeaturesWithRolloff(timeData, freqData, sampleRate, dsp.DefaultRolloffThreshold)
}

// ExtractFeaturesWithRolloff is ExtractFeatures with an explicit rolloff threshold
func ExtractFeaturesWithRolloff(timeData, freqData []byte, sampleRate, rolloff float64) FeatureSet {
	return FeatureSet{
		RMS:              RMS(timeData),
		Peak:             Peak(timeData),
		SpectralCentroid: SpectralCentroid(freqData, sampleRate),
		ZeroCrossingRate: ZeroCrossingRate(timeData),
		SpectralRolloff:  SpectralRolloff(freqData, sampleRate, rolloff),
		Energy:           SpectralEnergy(freqData),
	}
}
