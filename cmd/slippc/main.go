// slippc decodes Slippi replay files and runs the gameplay analyzer
// over them. Both the replay decoder and the analyzer are pure
// libraries (packages slp and analysis); this command is the file
// I/O, JSON export and CLI plumbing spec.md places outside the core.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	flagConfigPath string
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "slippc",
	Short: "Decode and analyze Slippi replay files",
	Long: `slippc decodes .slp replay files into a structured replay model and
runs a gameplay analyzer over the decoded frames.

Examples:
  slippc decode game.slp
  slippc decode game.slp --out game.json
  slippc analyze game.slp`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to threshold config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(analyzeCmd)
}
