package dynamics

import (
	"math"
	"testing"

	"github.com/voiceshape/voiceshape/pkg/dsp"
	"github.com/voiceshape/voiceshape/pkg/dsp/analysis"
)

func TestNormalizeAudio(t *testing.T) {
	buf := squareWave(256, 118, 138)

	out := NormalizeAudio(buf, 0.3)
	rms := analysis.RMS(out)
	if math.Abs(rms-0.3) > 0.005 {
		t.Errorf("Normalized RMS mismatch: expected 0.3, got %f", rms)
	}

	if buf[0] != 118 {
		t.Error("Normalize mutated its input")
	}
}

func TestNormalizeAudioSine(t *testing.T) {
	buf := make([]byte, 1024)
	for i := range buf {
		buf[i] = dsp.ClampSample(20 * math.Sin(2.0*math.Pi*float64(i)/64.0))
	}

	for _, target := range []float64{0.05, 0.1, 0.3, 0.5} {
		rms := analysis.RMS(NormalizeAudio(buf, target))
		if math.Abs(rms-target) > 0.01 {
			t.Errorf("Normalized RMS mismatch for target %f: got %f", target, rms)
		}
	}
}

func TestNormalizeAudioSilence(t *testing.T) {
	silence := dsp.Silence(32)
	out := NormalizeAudio(silence, 0.3)

	for i := range out {
		if out[i] != dsp.CenterSample {
			t.Fatalf("Silence should pass unchanged, sample %d: %d", i, out[i])
		}
	}
	if NormalizeAudio(nil, 0.3) != nil {
		t.Error("Nil buffer should yield nil")
	}
}

func TestNormalizerTarget(t *testing.T) {
	n := NewNormalizer()
	if n.Target() != 0.3 {
		t.Errorf("Default target incorrect: got %f, want 0.3", n.Target())
	}

	n.SetTarget(2.0)
	if n.Target() != 1.0 {
		t.Errorf("Target should clamp to 1.0, got %f", n.Target())
	}
}

func TestChain(t *testing.T) {
	quiet := squareWave(64, 126, 130)

	g := NewGate()
	g.SetRatio(2.0)
	n := NewNormalizer()

	out := Chain(quiet, g, nil, n)
	want := n.Process(g.Process(quiet))
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("Chain mismatch at %d: %d != %d", i, out[i], want[i])
		}
	}

	copied := Chain(quiet)
	copied[0] = 0
	if quiet[0] != 126 {
		t.Error("Empty chain should return a copy")
	}
}

func TestChainTypedNil(t *testing.T) {
	quiet := squareWave(64, 120, 136)

	var g *Gate
	var c *Compressor
	var n *Normalizer

	out := Chain(quiet, g, c, n)
	for i := range quiet {
		if out[i] != quiet[i] {
			t.Fatalf("Typed nil stages should pass through: %d != %d at %d", out[i], quiet[i], i)
		}
	}
	out[0] = 0
	if quiet[0] != 120 {
		t.Error("Typed nil chain should return a copy")
	}

	// A typed nil between real stages is skipped
	gate := NewGate()
	gate.SetThreshold(0.5)
	gate.SetRatio(2.0)
	got := Chain(quiet, g, gate, n)
	want := gate.Process(quiet)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Chain mismatch at %d: %d != %d", i, got[i], want[i])
		}
	}
}
