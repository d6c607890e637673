package analysis

import (
	"encoding/json"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AudioStats holds descriptive statistics of the raw sample values of a buffer
type AudioStats struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"stdDev"`
	Range        float64 `json:"range"`
	DynamicRange float64 `json:"dynamicRange"`
}

// ComputeStats returns descriptive statistics for buffer. The median is the
// upper middle element of the sorted samples and the standard deviation is the
// population one.
//
// DynamicRange is 20*log10(max / max(1, min)) over the raw, uncentered sample
// values. Consumers depend on this exact figure, so it is not a signal-theory
// dynamic range. A buffer whose maximum is 0 yields -Inf.
//
// An empty buffer yields the zero value.
func ComputeStats(buffer []byte) AudioStats {
	if len(buffer) == 0 {
		return AudioStats{}
	}

	values := make([]float64, len(buffer))
	for i, s := range buffer {
		values[i] = float64(s)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	lo := floats.Min(values)
	hi := floats.Max(values)

	return AudioStats{
		Min:          lo,
		Max:          hi,
		Mean:         stat.Mean(values, nil),
		Median:       sorted[len(sorted)/2],
		StdDev:       math.Sqrt(stat.PopVariance(values, nil)),
		Range:        hi - lo,
		DynamicRange: 20 * math.Log10(hi/math.Max(1, lo)),
	}
}

// MarshalJSON encodes a non-finite DynamicRange as null
func (s AudioStats) MarshalJSON() ([]byte, error) {
	type plain AudioStats
	out := struct {
		plain
		DynamicRange *float64 `json:"dynamicRange"`
	}{plain: plain(s)}

	if !math.IsInf(s.DynamicRange, 0) && !math.IsNaN(s.DynamicRange) {
		dr := s.DynamicRange
		out.DynamicRange = &dr
	}
	return json.Marshal(out)
}
