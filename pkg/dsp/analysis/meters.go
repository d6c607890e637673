package analysis

import (
	"math"

	"github.com/voiceshape/voiceshape/pkg/dsp"
)

// RMS returns the root mean square of the deviations from the center sample,
// normalized to [0, 1]. An empty buffer has an RMS of 0.
func RMS(buffer []byte) float64 {
	if len(buffer) == 0 {
		return 0
	}

	sum := 0.0
	for _, s := range buffer {
		d := dsp.Deviation(s)
		sum += d * d
	}

	return math.Sqrt(sum/float64(len(buffer))) / dsp.FullScale
}

// Peak returns the largest absolute deviation from the center sample,
// normalized to [0, 1]
func Peak(buffer []byte) float64 {
	peak := 0.0
	for _, s := range buffer {
		abs := math.Abs(dsp.Deviation(s))
		if abs > peak {
			peak = abs
		}
	}
	return peak / dsp.FullScale
}

// ZeroCrossingRate returns the fraction of adjacent sample pairs whose
// deviations have strictly opposite signs. Samples sitting on the center
// never count as a crossing.
func ZeroCrossingRate(buffer []byte) float64 {
	if len(buffer) < 2 {
		return 0
	}

	crossings := 0
	for i := 1; i < len(buffer); i++ {
		if dsp.Deviation(buffer[i])*dsp.Deviation(buffer[i-1]) < 0 {
			crossings++
		}
	}

	return float64(crossings) / float64(len(buffer)-1)
}
