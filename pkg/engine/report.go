package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/voiceshape/voiceshape/pkg/capture"
	"github.com/voiceshape/voiceshape/pkg/dsp/analysis"
)

// Report is the complete analysis of one snapshot pair
type Report struct {
	Index    int                 `json:"index"`
	Offset   int                 `json:"offset"`
	Features analysis.FeatureSet `json:"features"`
	Pitch    float64             `json:"pitch"`
	Silent   bool                `json:"silent"`
	Voiced   bool                `json:"voiced"`
	Stats    analysis.AudioStats `json:"stats"`
}

// Analyze computes a Report for a snapshot pair. Buffers of different
// lengths are analysed as given.
func (e *Engine) Analyze(timeData, freqData []byte) Report {
	if len(timeData) != len(freqData) {
		e.logger.Debug("snapshot length mismatch",
			zap.Int("time_len", len(timeData)),
			zap.Int("freq_len", len(freqData)))
	}

	return Report{
		Features: e.Features(timeData, freqData),
		Pitch:    e.ExtractPitch(timeData),
		Silent:   e.DetectSilence(timeData),
		Voiced:   e.DetectVoicing(timeData, freqData),
		Stats:    e.ComputeStats(timeData),
	}
}

// AnalyzeFrame computes a Report for a captured frame
func (e *Engine) AnalyzeFrame(f capture.Frame) Report {
	r := e.Analyze(f.Time, f.Freq)
	r.Index = f.Index
	r.Offset = f.Offset
	return r
}

// AnalyzeBatch analyses frames in parallel. Reports keep the order of frames.
// Cancelling ctx stops scheduling new frames and returns the context error.
func (e *Engine) AnalyzeBatch(ctx context.Context, frames []capture.Frame) ([]Report, error) {
	reports := make([]Report, len(frames))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, f := range frames {
		if err := gctx.Err(); err != nil {
			break
		}
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = e.AnalyzeFrame(f)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("engine: analyze batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("engine: analyze batch: %w", err)
	}

	e.logger.Debug("batch analysed", zap.Int("frames", len(frames)))
	return reports, nil
}

// Run polls src until it is exhausted, passing each frame and its Report to
// fn. It stops early when ctx is cancelled or fn returns an error.
func (e *Engine) Run(ctx context.Context, src capture.Source, fn func(capture.Frame, Report) error) error {
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("engine: run: %w", err)
		}

		f, ok := src.Snapshot()
		if !ok {
			break
		}
		if err := fn(f, e.AnalyzeFrame(f)); err != nil {
			return err
		}
		count++
	}

	e.logger.Debug("source drained", zap.Int("frames", count))
	return nil
}
