package dsp

import "math"

// Buffer utilities for unsigned 8-bit sample buffers

// Deviation returns the signed distance of a time-domain sample from CenterSample
func Deviation(sample byte) float64 {
	return float64(sample) - CenterSample
}

// ClampSample rounds a deviation back to a sample and clamps it into [0, 255]
func ClampSample(deviation float64) byte {
	v := math.Round(deviation + CenterSample)
	if math.IsNaN(v) {
		return CenterSample
	}
	if v < MinSample {
		return MinSample
	}
	if v > MaxSample {
		return MaxSample
	}
	return byte(v)
}

// Clone returns a copy of buffer. A nil buffer stays nil.
func Clone(buffer []byte) []byte {
	if buffer == nil {
		return nil
	}
	out := make([]byte, len(buffer))
	copy(out, buffer)
	return out
}

// ScaleDeviation returns a new buffer with every deviation from CenterSample
// multiplied by gain. The input is not modified.
func ScaleDeviation(buffer []byte, gain float64) []byte {
	if buffer == nil {
		return nil
	}
	out := make([]byte, len(buffer))
	for i, s := range buffer {
		out[i] = ClampSample(Deviation(s) * gain)
	}
	return out
}

// Silence returns a time-domain buffer of n centered samples
func Silence(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = CenterSample
	}
	return out
}

// FromFloat converts a normalized [-1, 1] sample to an unsigned 8-bit sample
func FromFloat(sample float64) byte {
	return ClampSample(sample * FullScale)
}

// ToFloat converts an unsigned 8-bit sample to a normalized value in [-1, 1)
func ToFloat(sample byte) float64 {
	return Deviation(sample) / FullScale
}

// FromPCM converts a signed integer PCM sample of the given bit depth to an
// unsigned 8-bit sample centered at CenterSample.
func FromPCM(sample int, bitDepth int) byte {
	if bitDepth <= 0 {
		return CenterSample
	}
	if bitDepth == 8 {
		// 8-bit PCM is already unsigned
		if sample < MinSample {
			return MinSample
		}
		if sample > MaxSample {
			return MaxSample
		}
		return byte(sample)
	}
	full := math.Ldexp(1, bitDepth-1)
	return FromFloat(float64(sample) / full)
}
