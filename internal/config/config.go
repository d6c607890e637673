// Package config provides the YAML configuration schema and loader for the
// voiceshape command.
package config

import (
	"github.com/voiceshape/voiceshape/pkg/dsp"
	"github.com/voiceshape/voiceshape/pkg/dsp/gain"
)

// Config is the root configuration structure.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	// SampleRate overrides the input sample rate in Hz. Zero uses the rate
	// of each input file.
	SampleRate float64 `yaml:"sample_rate"`

	// FrameSize is the number of time-domain samples per snapshot.
	FrameSize int `yaml:"frame_size"`

	Log        LogConfig        `yaml:"log"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Gate       GateConfig       `yaml:"gate"`
	Compressor CompressorConfig `yaml:"compressor"`
	Normalize  NormalizeConfig  `yaml:"normalize"`
	Batch      BatchConfig      `yaml:"batch"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AnalysisConfig holds feature detection thresholds.
type AnalysisConfig struct {
	SilenceThreshold float64 `yaml:"silence_threshold"`
	RolloffThreshold float64 `yaml:"rolloff_threshold"`
}

// GateConfig configures the noise gate stage.
type GateConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold float64 `yaml:"threshold"`

	// ThresholdDB, when set, replaces Threshold with its linear equivalent.
	ThresholdDB *float64 `yaml:"threshold_db"`

	Ratio   float64 `yaml:"ratio"`
	Attack  float64 `yaml:"attack"`
	Release float64 `yaml:"release"`
}

// LinearThreshold returns the effective RMS threshold.
func (g GateConfig) LinearThreshold() float64 {
	if g.ThresholdDB != nil {
		return gain.DbToLinear(*g.ThresholdDB)
	}
	return g.Threshold
}

// CompressorConfig configures the compressor stage.
type CompressorConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold float64 `yaml:"threshold"`
	Ratio     float64 `yaml:"ratio"`
	Attack    float64 `yaml:"attack"`
	Release   float64 `yaml:"release"`
}

// NormalizeConfig configures the normalizer stage.
type NormalizeConfig struct {
	Enabled   bool    `yaml:"enabled"`
	TargetRMS float64 `yaml:"target_rms"`
}

// BatchConfig controls parallel frame analysis.
type BatchConfig struct {
	// Concurrency limits frames analysed at once. Zero uses one per CPU.
	Concurrency int `yaml:"concurrency"`
}

// Default returns the configuration used when no file is given. All
// processing stages are disabled.
func Default() *Config {
	return &Config{
		FrameSize: dsp.DefaultFrameSize,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Analysis: AnalysisConfig{
			SilenceThreshold: dsp.DefaultSilenceThreshold,
			RolloffThreshold: dsp.DefaultRolloffThreshold,
		},
		Gate: GateConfig{
			Threshold: dsp.DefaultGateThreshold,
			Ratio:     dsp.DefaultGateRatio,
			Attack:    dsp.DefaultGateAttack,
			Release:   dsp.DefaultGateRelease,
		},
		Compressor: CompressorConfig{
			Threshold: dsp.DefaultCompThreshold,
			Ratio:     dsp.DefaultCompRatio,
			Attack:    dsp.DefaultCompAttack,
			Release:   dsp.DefaultCompRelease,
		},
		Normalize: NormalizeConfig{
			TargetRMS: dsp.DefaultTargetRMS,
		},
	}
}
