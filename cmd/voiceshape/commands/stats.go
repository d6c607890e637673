package commands

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats <file.wav>",
	Short: "Sample statistics of a whole WAV file",
	Long: `Stats reports min, max, mean, median, standard deviation, range and
dynamic range over every 8-bit sample of the file.

The dynamic range is 20*log10(max / max(1, min)) over raw sample values.
A file of all-zero samples has no finite dynamic range and reports null.

Examples:
  voiceshape stats speech.wav
  voiceshape stats speech.wav --format table`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(statsFormat); err != nil {
			return err
		}

		src, eng, err := openInput(args[0])
		if err != nil {
			return err
		}

		stats := eng.ComputeStats(src.Samples())
		out := cmd.OutOrStdout()

		if statsFormat == formatJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("stat", "value").
			Row("min", fmt.Sprintf("%.0f", stats.Min)).
			Row("max", fmt.Sprintf("%.0f", stats.Max)).
			Row("mean", fmt.Sprintf("%.3f", stats.Mean)).
			Row("median", fmt.Sprintf("%.0f", stats.Median)).
			Row("stdDev", fmt.Sprintf("%.3f", stats.StdDev)).
			Row("range", fmt.Sprintf("%.0f", stats.Range)).
			Row("dynamicRange", fmt.Sprintf("%.2f dB", stats.DynamicRange))
		_, err = fmt.Fprintln(out, t.String())
		return err
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsFormat, "format", formatJSON, "output format: json, table")
	addInputFlags(statsCmd)
}
