// Package main provides the voiceshape CLI tool.
//
// Usage:
//
//	voiceshape [flags] <command> [args]
//
// Commands:
//
//	analyze   - Per-frame feature reports for a WAV file
//	stats     - Sample statistics of a whole WAV file
//	process   - Run the gate, compressor and normalizer chain over a WAV file
//	visualize - Terminal level meters and spectrum per frame
package main

import (
	"fmt"
	"os"

	"github.com/voiceshape/voiceshape/cmd/voiceshape/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
