package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voiceshape/voiceshape/pkg/capture"
	"github.com/voiceshape/voiceshape/pkg/engine"
	"github.com/voiceshape/voiceshape/pkg/render"
)

var (
	meterWidth      int
	spectrumColumns int
	frameStep       int
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize <file.wav>",
	Short: "Terminal level meters and spectrum per frame",
	Long: `Visualize prints, for each frame, level meters for RMS, peak and
zero-crossing rate, the spectral features and a one-line spectrum.

Examples:
  voiceshape visualize speech.wav
  voiceshape visualize speech.wav --every 10 --columns 96`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if frameStep < 1 {
			return fmt.Errorf("--every must be at least 1, got %d", frameStep)
		}

		src, eng, err := openInput(args[0])
		if err != nil {
			return err
		}

		meter := render.NewMeter(meterWidth)
		out := cmd.OutOrStdout()

		return eng.Run(cmd.Context(), src, func(f capture.Frame, r engine.Report) error {
			if r.Index%frameStep != 0 {
				return nil
			}

			_, err := fmt.Fprintf(out, "frame %d  %.3fs  rms %s dB  peak %s dB  pitch %.1f Hz  %s\n%s\n%s\n\n",
				r.Index,
				float64(r.Offset)/src.SampleRate(),
				formatDb(r.Features.RMS),
				formatDb(r.Features.Peak),
				r.Pitch,
				status(r),
				meter.RenderFeatures(r.Features),
				meter.RenderSpectrum(f.Freq, spectrumColumns))
			return err
		})
	},
}

func init() {
	visualizeCmd.Flags().IntVar(&meterWidth, "width", 30, "cells per level meter")
	visualizeCmd.Flags().IntVar(&spectrumColumns, "columns", 64, "spectrum columns")
	visualizeCmd.Flags().IntVar(&frameStep, "every", 1, "render every Nth frame")
	addInputFlags(visualizeCmd)
}

func status(r engine.Report) string {
	switch {
	case r.Silent:
		return "silent"
	case r.Voiced:
		return "voiced"
	default:
		return "unvoiced"
	}
}
