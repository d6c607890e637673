package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/voiceshape/voiceshape/pkg/dsp"
	"github.com/voiceshape/voiceshape/pkg/dsp/analysis"
)

// Theme defines the meter colors
type Theme struct {
	Primary lipgloss.Color // Level bars and labels
	Warn    lipgloss.Color // Levels at or near full scale
	Dim     lipgloss.Color // Empty bar cells and secondary text
}

// DefaultTheme is a blue theme matching the web visualiser
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#3b82f6"),
	Warn:    lipgloss.Color("#f97316"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds the styles derived from a theme
type Styles struct {
	Label lipgloss.Style
	Fill  lipgloss.Style
	Hot   lipgloss.Style
	Empty lipgloss.Style
	Value lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Label: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Width(10),
		Fill:  lipgloss.NewStyle().Foreground(t.Primary),
		Hot:   lipgloss.NewStyle().Foreground(t.Warn),
		Empty: lipgloss.NewStyle().Foreground(t.Dim),
		Value: lipgloss.NewStyle().Foreground(t.Dim),
	}
}

const (
	fullCell  = "█"
	emptyCell = "░"

	// Levels at or above this fraction of full scale render hot
	hotLevel = 0.9
)

// spectrumLevels are the block characters for zero to full magnitude
var spectrumLevels = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// Meter renders one-line level meters and spectra for terminals
type Meter struct {
	Styles Styles
	Width  int // Cells per level bar
}

// NewMeter creates a meter with the default theme
func NewMeter(width int) *Meter {
	if width < 1 {
		width = 1
	}
	return &Meter{Styles: NewStyles(DefaultTheme), Width: width}
}

// Level renders a labelled bar for a level in [0, 1]. Out of range levels
// are clamped.
func (m *Meter) Level(label string, level float64) string {
	if math.IsNaN(level) {
		level = 0
	}
	level = math.Max(0, math.Min(1, level))

	filled := int(math.Round(level * float64(m.Width)))
	fill := m.Styles.Fill
	if level >= hotLevel {
		fill = m.Styles.Hot
	}

	return m.Styles.Label.Render(label) +
		fill.Render(strings.Repeat(fullCell, filled)) +
		m.Styles.Empty.Render(strings.Repeat(emptyCell, m.Width-filled)) +
		" " + m.Styles.Value.Render(fmt.Sprintf("%.3f", level))
}

// Value renders a labelled scalar
func (m *Meter) Value(label, value string) string {
	return m.Styles.Label.Render(label) + m.Styles.Value.Render(value)
}

// RenderFeatures renders a feature set as one line per feature
func (m *Meter) RenderFeatures(fs analysis.FeatureSet) string {
	lines := []string{
		m.Level("rms", fs.RMS),
		m.Level("peak", fs.Peak),
		m.Level("zcr", fs.ZeroCrossingRate),
		m.Value("centroid", fmt.Sprintf("%.1f Hz", fs.SpectralCentroid)),
		m.Value("rolloff", fmt.Sprintf("%.1f Hz", fs.SpectralRolloff)),
		m.Value("energy", fmt.Sprintf("%.1f", fs.Energy)),
	}
	return strings.Join(lines, "\n")
}

// RenderSpectrum renders a frequency-domain buffer as a single row of block
// characters. Bins are grouped into columns and each column shows the
// loudest bin of its group.
func (m *Meter) RenderSpectrum(freqData []byte, columns int) string {
	if columns < 1 || len(freqData) == 0 {
		return ""
	}
	if columns > len(freqData) {
		columns = len(freqData)
	}

	top := len(spectrumLevels) - 1
	var sb strings.Builder
	for c := 0; c < columns; c++ {
		start := c * len(freqData) / columns
		end := (c + 1) * len(freqData) / columns

		var peak byte
		for _, v := range freqData[start:end] {
			peak = max(peak, v)
		}

		idx := int(math.Round(float64(peak) / dsp.MaxMagnitude * float64(top)))
		sb.WriteString(spectrumLevels[idx])
	}
	return m.Styles.Fill.Render(sb.String())
}
