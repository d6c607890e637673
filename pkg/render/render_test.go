package render

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/voiceshape/voiceshape/pkg/dsp/analysis"
)

func TestWaveformPoints(t *testing.T) {
	points := WaveformPoints([]byte{0, 128, 255}, 300, 100)

	if len(points) != 3 {
		t.Fatalf("Point count mismatch: expected 3, got %d", len(points))
	}

	expected := []Point{{0, 0}, {100, 50}, {200, 255.0 / 128.0 * 50}}
	for i, want := range expected {
		if math.Abs(points[i].X-want.X) > 1e-9 || math.Abs(points[i].Y-want.Y) > 1e-9 {
			t.Errorf("Point %d mismatch: expected %+v, got %+v", i, want, points[i])
		}
	}

	if WaveformPoints(nil, 300, 100) != nil {
		t.Error("Empty buffer should yield no points")
	}
}

func TestSpectrumBars(t *testing.T) {
	bars := SpectrumBars([]byte{0, 255, 51}, 30, 100)

	if len(bars) != 3 {
		t.Fatalf("Bar count mismatch: expected 3, got %d", len(bars))
	}

	expected := []Bar{
		{X: 0, Y: 100, Width: 10, Height: 0},
		{X: 10, Y: 0, Width: 10, Height: 100},
		{X: 20, Y: 80, Width: 10, Height: 20},
	}
	for i, want := range expected {
		got := bars[i]
		if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 ||
			math.Abs(got.Width-want.Width) > 1e-9 || math.Abs(got.Height-want.Height) > 1e-9 {
			t.Errorf("Bar %d mismatch: expected %+v, got %+v", i, want, got)
		}
	}

	if SpectrumBars([]byte{}, 30, 100) != nil {
		t.Error("Empty buffer should yield no bars")
	}
}

func TestMeterLevel(t *testing.T) {
	m := NewMeter(10)

	tests := []struct {
		level  float64
		filled int
	}{
		{0.5, 5},
		{0, 0},
		{1.5, 10}, // clamped
		{-0.2, 0}, // clamped
		{0.94, 9},
	}

	for _, tt := range tests {
		out := m.Level("rms", tt.level)
		if n := strings.Count(out, fullCell); n != tt.filled {
			t.Errorf("Level %f: expected %d filled cells, got %d", tt.level, tt.filled, n)
		}
		if n := strings.Count(out, emptyCell); n != 10-tt.filled {
			t.Errorf("Level %f: expected %d empty cells, got %d", tt.level, 10-tt.filled, n)
		}
		if !strings.Contains(out, "rms") {
			t.Errorf("Level %f: label missing from %q", tt.level, out)
		}
	}
}

func TestMeterRenderFeatures(t *testing.T) {
	m := NewMeter(20)
	out := m.RenderFeatures(analysis.FeatureSet{
		RMS:              0.25,
		Peak:             0.5,
		SpectralCentroid: 1234.5,
		ZeroCrossingRate: 0.1,
		SpectralRolloff:  4000,
		Energy:           42,
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("Line count mismatch: expected 6, got %d", len(lines))
	}
	for _, want := range []string{"1234.5 Hz", "4000.0 Hz", "42.0", "0.250"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestMeterRenderSpectrum(t *testing.T) {
	m := NewMeter(10)

	out := m.RenderSpectrum([]byte{0, 128, 255, 64}, 4)
	if !strings.Contains(out, " ▄█▂") {
		t.Errorf("Spectrum mismatch: got %q", out)
	}

	// Columns take the loudest bin of their group
	out = m.RenderSpectrum([]byte{0, 255, 10, 255}, 2)
	if strings.Count(out, "█") != 2 {
		t.Errorf("Grouped spectrum mismatch: got %q", out)
	}

	// More columns than bins
	out = m.RenderSpectrum([]byte{255, 255}, 8)
	if lipgloss.Width(out) != 2 {
		t.Errorf("Spectrum width mismatch: expected 2, got %d", lipgloss.Width(out))
	}

	if m.RenderSpectrum(nil, 8) != "" || m.RenderSpectrum([]byte{1}, 0) != "" {
		t.Error("Degenerate input should render nothing")
	}
}
