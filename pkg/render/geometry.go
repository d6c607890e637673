// Package render turns snapshot buffers into drawable geometry and terminal
// meters. It never draws to a canvas itself.
package render

import "github.com/voiceshape/voiceshape/pkg/dsp"

// Point is one vertex of a waveform polyline
type Point struct {
	X float64
	Y float64
}

// Bar is one spectrum bar. Y is the top edge, measured from the top of the
// drawing area, so the bar spans Y to Y+Height.
type Bar struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// WaveformPoints lays a time-domain buffer out across width. Each sample
// advances x by width/len(timeData) and sits at y = s/128 * height/2, so the
// center sample lands at height/2.
func WaveformPoints(timeData []byte, width, height float64) []Point {
	if len(timeData) == 0 {
		return nil
	}

	sliceWidth := width / float64(len(timeData))
	points := make([]Point, len(timeData))

	x := 0.0
	for i, s := range timeData {
		v := float64(s) / dsp.FullScale
		points[i] = Point{X: x, Y: v * height / 2}
		x += sliceWidth
	}
	return points
}

// SpectrumBars lays a frequency-domain buffer out as bars standing on the
// bottom edge. Bar heights are s/255 * height.
func SpectrumBars(freqData []byte, width, height float64) []Bar {
	if len(freqData) == 0 {
		return nil
	}

	barWidth := width / float64(len(freqData))
	bars := make([]Bar, len(freqData))

	x := 0.0
	for i, s := range freqData {
		barHeight := float64(s) / dsp.MaxMagnitude * height
		bars[i] = Bar{
			X:      x,
			Y:      height - barHeight,
			Width:  barWidth,
			Height: barHeight,
		}
		x += barWidth
	}
	return bars
}
