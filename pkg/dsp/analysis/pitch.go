package analysis

import (
	"math"

	"github.com/voiceshape/voiceshape/pkg/dsp"
)

// PitchPeriodRange returns the inclusive range of lag periods, in samples,
// searched by ExtractPitch for the given sample rate.
func PitchPeriodRange(sampleRate float64) (minPeriod, maxPeriod int) {
	minPeriod = int(math.Floor(sampleRate / dsp.PitchMaxFrequency))
	maxPeriod = int(math.Floor(sampleRate / dsp.PitchMinFrequency))
	return minPeriod, maxPeriod
}

// ExtractPitch estimates the fundamental frequency of a time-domain buffer by
// autocorrelation over the raw sample values. Candidate periods cover
// fundamentals between 50 Hz and 500 Hz. The first period with the largest
// correlation wins. Returns 0 when no period correlates positively.
//
// Cost grows with len(buffer) times the number of candidate periods, which is
// itself proportional to the sample rate.
func ExtractPitch(buffer []byte, sampleRate float64) float64 {
	if len(buffer) == 0 || sampleRate <= 0 {
		return 0
	}

	minPeriod, maxPeriod := PitchPeriodRange(sampleRate)
	if minPeriod < 1 {
		minPeriod = 1
	}

	bestPeriod := 0
	maxCorrelation := 0.0

	for period := minPeriod; period <= maxPeriod; period++ {
		correlation := 0.0
		for i := 0; i < len(buffer)-period; i++ {
			correlation += float64(buffer[i]) * float64(buffer[i+period])
		}

		if correlation > maxCorrelation {
			maxCorrelation = correlation
			bestPeriod = period
		}
	}

	if bestPeriod == 0 {
		return 0
	}
	return sampleRate / float64(bestPeriod)
}
