// Package logging builds the zap loggers used by the CLI and the engine.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

type settings struct {
	level  zapcore.Level
	format string
	output zapcore.WriteSyncer
	fields []zap.Field
}

// Option configures a logger built by New.
type Option func(*settings)

// WithLevel sets the minimum level. Unknown names fall back to info.
func WithLevel(level string) Option {
	return func(s *settings) {
		s.level = ParseLevel(level)
	}
}

// WithFormat selects json or console encoding.
func WithFormat(format string) Option {
	return func(s *settings) {
		s.format = format
	}
}

// WithOutput redirects log output. Defaults to stderr so stdout stays free
// for command results.
func WithOutput(w zapcore.WriteSyncer) Option {
	return func(s *settings) {
		s.output = w
	}
}

// WithFields attaches fields to every log line.
func WithFields(fields ...zap.Field) Option {
	return func(s *settings) {
		s.fields = append(s.fields, fields...)
	}
}

// New builds a zap logger from the given options.
func New(opts ...Option) (*zap.Logger, error) {
	s := &settings{
		level:  zapcore.InfoLevel,
		format: FormatJSON,
		output: zapcore.Lock(os.Stderr),
	}
	for _, opt := range opts {
		opt(s)
	}

	var encoder zapcore.Encoder
	switch s.format {
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case FormatConsole:
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", s.format)
	}

	core := zapcore.NewCore(encoder, s.output, zap.NewAtomicLevelAt(s.level))
	return zap.New(core, zap.AddCaller()).With(s.fields...), nil
}

// ParseLevel converts a level name to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ValidLevel reports whether level is a recognised level name.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
