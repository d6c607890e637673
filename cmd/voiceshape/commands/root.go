package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/voiceshape/voiceshape/internal/config"
	"github.com/voiceshape/voiceshape/internal/logging"
	"github.com/voiceshape/voiceshape/pkg/capture"
	"github.com/voiceshape/voiceshape/pkg/engine"
)

var (
	// Global flags
	cfgFile   string
	logLevel  string
	logFormat string

	// Shared input flags
	sampleRate float64
	frameSize  int

	globalConfig *config.Config
	logger       = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voiceshape",
	Short: "Voice signal feature engine",
	Long: `voiceshape computes acoustic features of 8-bit voice snapshots and applies
simple block dynamics (noise gate, compressor, normalizer).

WAV input of any bit depth and channel count is mixed down to mono and
converted to unsigned 8-bit samples centered at 128.

Examples:
  # Per-frame features as JSON lines
  voiceshape analyze speech.wav

  # Same as a table with a 16 kHz feature scale
  voiceshape analyze speech.wav --format table --sample-rate 16000

  # Gate and normalize a recording
  voiceshape --config voiceshape.yaml process speech.wav cleaned.wav
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: json, console (overrides config)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(visualizeCmd)
}

// setup loads the configuration and builds the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	l, err := logging.New(
		logging.WithLevel(cfg.Log.Level),
		logging.WithFormat(cfg.Log.Format),
		logging.WithOutput(zapcore.AddSync(cmd.ErrOrStderr())),
		logging.WithFields(zap.String("command", cmd.Name())),
	)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	globalConfig = cfg
	logger = l
	return nil
}

// addInputFlags registers the flags shared by commands that read WAV input
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&sampleRate, "sample-rate", 0, "sample rate in Hz used for features (default: config, then the file rate)")
	cmd.Flags().IntVar(&frameSize, "frame-size", 0, "samples per frame (default: config)")
}

// openInput decodes a WAV file and builds an engine bound to its sample rate
func openInput(path string) (*capture.WAVSource, *engine.Engine, error) {
	cfg := globalConfig
	if cfg == nil {
		return nil, nil, fmt.Errorf("configuration not initialized")
	}

	size := cfg.FrameSize
	if frameSize > 0 {
		size = frameSize
	}

	src, err := capture.OpenWAV(path,
		capture.WithFrameSize(size),
		capture.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	rate := src.SampleRate()
	switch {
	case sampleRate > 0:
		rate = sampleRate
	case cfg.SampleRate > 0:
		rate = cfg.SampleRate
	}

	opts := append(cfg.EngineOptions(logger), engine.WithSampleRate(rate))
	eng := engine.New(opts...)

	logger.Info("input opened",
		zap.String("path", path),
		zap.Int("samples", len(src.Samples())),
		zap.Float64("sample_rate", rate),
		zap.Int("frame_size", src.FrameSize()))

	return src, eng, nil
}
