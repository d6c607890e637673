package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/voiceshape/voiceshape/internal/logging"
	"github.com/voiceshape/voiceshape/pkg/dsp/dynamics"
	"github.com/voiceshape/voiceshape/pkg/engine"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// Fields missing from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over the defaults and validates
// the result. An empty document yields the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("sample_rate %.1f must not be negative", cfg.SampleRate))
	}
	if cfg.FrameSize <= 0 {
		errs = append(errs, fmt.Errorf("frame_size %d must be positive", cfg.FrameSize))
	}

	// Log
	if cfg.Log.Level != "" && !logging.ValidLevel(cfg.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is invalid; valid values: debug, info, warn, error", cfg.Log.Level))
	}
	if cfg.Log.Format != "" && cfg.Log.Format != logging.FormatJSON && cfg.Log.Format != logging.FormatConsole {
		errs = append(errs, fmt.Errorf("log.format %q is invalid; valid values: json, console", cfg.Log.Format))
	}

	// Analysis
	errs = appendRange(errs, "analysis.silence_threshold", cfg.Analysis.SilenceThreshold, 0, 1)
	if cfg.Analysis.RolloffThreshold <= 0 || cfg.Analysis.RolloffThreshold > 1 {
		errs = append(errs, fmt.Errorf("analysis.rolloff_threshold %.3f is out of range (0, 1]", cfg.Analysis.RolloffThreshold))
	}

	// Gate
	if cfg.Gate.ThresholdDB != nil && *cfg.Gate.ThresholdDB > 0 {
		errs = append(errs, fmt.Errorf("gate.threshold_db %.1f must not be above 0 dB", *cfg.Gate.ThresholdDB))
	}
	errs = appendRange(errs, "gate.threshold", cfg.Gate.Threshold, 0, 1)
	errs = appendStage(errs, "gate", cfg.Gate.Ratio, cfg.Gate.Attack, cfg.Gate.Release)

	// Compressor
	errs = appendRange(errs, "compressor.threshold", cfg.Compressor.Threshold, 0, 1)
	errs = appendStage(errs, "compressor", cfg.Compressor.Ratio, cfg.Compressor.Attack, cfg.Compressor.Release)

	// Normalize
	errs = appendRange(errs, "normalize.target_rms", cfg.Normalize.TargetRMS, 0, 1)

	if cfg.Batch.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("batch.concurrency %d must not be negative", cfg.Batch.Concurrency))
	}

	return errors.Join(errs...)
}

func appendRange(errs []error, field string, v, lo, hi float64) []error {
	if v < lo || v > hi {
		return append(errs, fmt.Errorf("%s %.3f is out of range [%g, %g]", field, v, lo, hi))
	}
	return errs
}

func appendStage(errs []error, prefix string, ratio, attack, release float64) []error {
	if ratio <= 0 {
		errs = append(errs, fmt.Errorf("%s.ratio %.2f must be positive", prefix, ratio))
	}
	if attack < 0 {
		errs = append(errs, fmt.Errorf("%s.attack %.3f must not be negative", prefix, attack))
	}
	if release < 0 {
		errs = append(errs, fmt.Errorf("%s.release %.3f must not be negative", prefix, release))
	}
	return errs
}

// EngineOptions maps cfg to engine options. Enabled stages join the Process
// chain in gate, compressor, normalizer order.
func (cfg *Config) EngineOptions(logger *zap.Logger) []engine.Option {
	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithSilenceThreshold(cfg.Analysis.SilenceThreshold),
		engine.WithRolloffThreshold(cfg.Analysis.RolloffThreshold),
		engine.WithConcurrency(cfg.Batch.Concurrency),
	}
	if cfg.SampleRate > 0 {
		opts = append(opts, engine.WithSampleRate(cfg.SampleRate))
	}

	if cfg.Gate.Enabled {
		g := dynamics.NewGate()
		g.SetThreshold(cfg.Gate.LinearThreshold())
		g.SetRatio(cfg.Gate.Ratio)
		g.SetAttack(cfg.Gate.Attack)
		g.SetRelease(cfg.Gate.Release)
		opts = append(opts, engine.WithGate(g))
	}

	if cfg.Compressor.Enabled {
		c := dynamics.NewCompressor()
		c.SetThreshold(cfg.Compressor.Threshold)
		c.SetRatio(cfg.Compressor.Ratio)
		c.SetAttack(cfg.Compressor.Attack)
		c.SetRelease(cfg.Compressor.Release)
		opts = append(opts, engine.WithCompressor(c))
	}

	if cfg.Normalize.Enabled {
		n := dynamics.NewNormalizer()
		n.SetTarget(cfg.Normalize.TargetRMS)
		opts = append(opts, engine.WithNormalizer(n))
	}

	return opts
}
