// Package gain provides level and gain conversions for 8-bit sample buffers.
package gain

import (
	"math"

	"github.com/voiceshape/voiceshape/pkg/dsp"
)

// Constants for dB conversion
const (
	// MinDB is the floor reported for silent levels
	MinDB = -200.0

	// Reference level for dB calculations (normalized full scale)
	RefLevel = 1.0
)

// LinearToDb converts a normalized level to decibels relative to full scale.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear/RefLevel)
}

// DbToLinear converts a decibel value to a normalized level.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return RefLevel * math.Pow(10.0, db/20.0)
}

// ApplyBuffer returns a copy of a time-domain buffer with its deviations
// multiplied by gain.
func ApplyBuffer(buffer []byte, gain float64) []byte {
	return dsp.ScaleDeviation(buffer, gain)
}

// ApplyDbBuffer returns a copy of a time-domain buffer with a dB gain applied.
func ApplyDbBuffer(buffer []byte, db float64) []byte {
	return ApplyBuffer(buffer, DbToLinear(db))
}
