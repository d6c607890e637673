package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voiceshape/voiceshape/pkg/capture"
	"github.com/voiceshape/voiceshape/pkg/dsp"
)

// writeTone writes an 8-bit mono WAV file holding a quiet 441 Hz sine
func writeTone(t *testing.T, n int) string {
	t.Helper()

	samples := make([]byte, n)
	for i := range samples {
		samples[i] = dsp.ClampSample(10 * math.Sin(2*math.Pi*float64(i)/100))
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer f.Close()

	if err := capture.WriteWAV(f, samples, 44100); err != nil {
		t.Fatalf("WriteWAV failed: %v", err)
	}
	return path
}

// run executes the root command and returns its stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	path := writeTone(t, 2500)

	out, err := run(t, "analyze", path, "--format", "json", "--frame-size", "1024", "--log-level", "error")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var reports []map[string]any
	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Buffer(make([]byte, 1<<20), 1<<20)
	for sc.Scan() {
		var r map[string]any
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("Invalid JSON line %q: %v", sc.Text(), err)
		}
		reports = append(reports, r)
	}

	if len(reports) != 3 {
		t.Fatalf("Report count mismatch: expected 3, got %d", len(reports))
	}
	if reports[2]["index"] != 2.0 || reports[2]["offset"] != 2048.0 {
		t.Errorf("Last report position mismatch: %v, %v", reports[2]["index"], reports[2]["offset"])
	}

	features, ok := reports[0]["features"].(map[string]any)
	if !ok {
		t.Fatalf("Report features missing: %v", reports[0])
	}
	if rms := features["rms"].(float64); rms <= 0 || rms > 0.1 {
		t.Errorf("First frame RMS out of range: %f", rms)
	}
	if pitch := reports[0]["pitch"].(float64); pitch <= 0 {
		t.Errorf("First frame pitch should be positive, got %f", pitch)
	}
}

func TestAnalyzeTable(t *testing.T) {
	path := writeTone(t, 1024)

	out, err := run(t, "analyze", path, "--format", "table", "--frame-size", "1024", "--log-level", "error")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	for _, want := range []string{"frame", "centroid", "pitch", "0.000s", "rms dB", "peak dB"} {
		if !strings.Contains(out, want) {
			t.Errorf("Table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDb(t *testing.T) {
	tests := []struct {
		level float64
		want  string
	}{
		{0, "-inf"},
		{1, "0.0"},
		{0.5, "-6.0"},
		{0.1, "-20.0"},
	}

	for _, tt := range tests {
		if got := formatDb(tt.level); got != tt.want {
			t.Errorf("formatDb(%f) mismatch: expected %q, got %q", tt.level, tt.want, got)
		}
	}
}

func TestAnalyzeBadFormat(t *testing.T) {
	path := writeTone(t, 64)

	_, err := run(t, "analyze", path, "--format", "xml", "--log-level", "error")
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("Expected format error, got %v", err)
	}

	// Reset for later tests
	analyzeFormat = formatJSON
}

func TestStats(t *testing.T) {
	path := writeTone(t, 1000)

	out, err := run(t, "stats", path, "--format", "json", "--log-level", "error")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	var stats map[string]float64
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("Invalid stats JSON %q: %v", out, err)
	}
	if stats["min"] != 118 || stats["max"] != 138 {
		t.Errorf("Stats range mismatch: min %f, max %f", stats["min"], stats["max"])
	}
}

func TestProcess(t *testing.T) {
	in := writeTone(t, 2500)
	outPath := filepath.Join(t.TempDir(), "out.wav")

	cfgPath := filepath.Join(t.TempDir(), "voiceshape.yaml")
	cfg := "normalize:\n  enabled: true\n  target_rms: 0.3\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := run(t, "--config", cfgPath, "process", in, outPath, "--frame-size", "1024", "--log-level", "error"); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	cfgFile = ""

	src, err := capture.OpenWAV(outPath)
	if err != nil {
		t.Fatalf("OpenWAV output failed: %v", err)
	}
	if len(src.Samples()) != 2500 {
		t.Fatalf("Output length mismatch: expected 2500, got %d", len(src.Samples()))
	}
	if src.SampleRate() != 44100 {
		t.Errorf("Output sample rate mismatch: got %f", src.SampleRate())
	}

	// The first full frame is normalized to the target level
	frame, _ := src.Snapshot()
	if rms := rmsOf(frame.Time); math.Abs(rms-0.3) > 0.02 {
		t.Errorf("Processed RMS mismatch: expected ~0.3, got %f", rms)
	}
}

func TestProcessGain(t *testing.T) {
	in := writeTone(t, 1024)
	outPath := filepath.Join(t.TempDir(), "louder.wav")
	t.Cleanup(func() { outputGainDb = 0 })

	if _, err := run(t, "process", in, outPath, "--gain-db", "6", "--frame-size", "1024", "--log-level", "error"); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	orig, err := capture.OpenWAV(in)
	if err != nil {
		t.Fatalf("OpenWAV input failed: %v", err)
	}
	src, err := capture.OpenWAV(outPath)
	if err != nil {
		t.Fatalf("OpenWAV output failed: %v", err)
	}

	// +6 dB roughly doubles the level
	want := 2 * rmsOf(orig.Samples())
	if got := rmsOf(src.Samples()); math.Abs(got-want) > 0.01 {
		t.Errorf("Gain RMS mismatch: expected ~%f, got %f", want, got)
	}
}

func TestVisualize(t *testing.T) {
	path := writeTone(t, 2048)

	out, err := run(t, "visualize", path, "--frame-size", "1024", "--every", "1", "--log-level", "error")
	if err != nil {
		t.Fatalf("visualize failed: %v", err)
	}
	if strings.Count(out, "frame ") != 2 {
		t.Errorf("Expected 2 frame headers:\n%s", out)
	}
	if !strings.Contains(out, "centroid") || !strings.Contains(out, "Hz") || !strings.Contains(out, "dB") {
		t.Errorf("Feature lines missing:\n%s", out)
	}
}

func TestMissingInput(t *testing.T) {
	_, err := run(t, "stats", filepath.Join(t.TempDir(), "missing.wav"), "--log-level", "error")
	if err == nil {
		t.Error("Expected error for missing input")
	}
}

func rmsOf(buf []byte) float64 {
	sum := 0.0
	for _, s := range buf {
		d := dsp.Deviation(s)
		sum += d * d
	}
	return math.Sqrt(sum/float64(len(buf))) / dsp.FullScale
}
