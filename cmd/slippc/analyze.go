package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jimlah42/slippc/analysis"
	"github.com/jimlah42/slippc/internal/config"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.slp>",
	Short: "Decode a replay and print the gameplay analysis as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	replay, err := decodeFile(args[0], flagConfigPath, flagLogLevel)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}

	result, err := analysis.Analyze(replay, thresholdsFromConfig(cfg.Thresholds))
	if err != nil {
		return err
	}

	body, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	fmt.Println(string(body))
	return nil
}

// thresholdsFromConfig converts the CLI's on-disk/env config shape
// into the analyzer's own Thresholds type; the two stay separate types
// so the analysis package never has to know about YAML or env tags.
func thresholdsFromConfig(t config.Thresholds) analysis.Thresholds {
	return analysis.Thresholds{
		SharkFrames:     t.SharkFrames,
		PokeFrames:      t.PokeFrames,
		FootsieDistance: t.FootsieDist,
	}
}
