package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jimlah42/slippc/internal/config"
	"github.com/jimlah42/slippc/internal/logging"
	"github.com/jimlah42/slippc/slp"
)

var flagDecodeOut string

var decodeCmd = &cobra.Command{
	Use:   "decode <file.slp>",
	Short: "Decode a replay file and print or export it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&flagDecodeOut, "out", "", "Write JSON output to this path instead of stdout")
}

// replayJSON is the wire shape produced for the external world; it is
// deliberately separate from slp.Replay so the core model never has
// to know about JSON tags or base64 (spec.md §1's explicit non-goals).
type replayJSON struct {
	VersionMajor  byte   `json:"versionMajor"`
	VersionMinor  byte   `json:"versionMinor"`
	VersionRev    byte   `json:"versionRev"`
	ParserVersion string `json:"parserVersion"`
	Stage         uint16 `json:"stage"`
	Seed          uint32 `json:"seed"`
	Teams         bool   `json:"teams"`
	PAL           bool   `json:"pal"`
	Frozen        bool   `json:"frozen"`
	EndType       byte   `json:"endType"`
	HasEnd        bool   `json:"hasEnd"`
	LastFrame     int32  `json:"lastFrame"`
	FrameCount    int32  `json:"frameCount"`
	GameStartRaw  string `json:"gameStartRaw"` // base64
	StartTime     string `json:"startTime"`
	PlayedOn      string `json:"playedOn"`
	Players       []playerJSON `json:"players"`
}

type playerJSON struct {
	Port        int    `json:"port"`
	ExtCharID   byte   `json:"extCharId"`
	Color       byte   `json:"color"`
	Type        byte   `json:"type"`
	StartStocks byte   `json:"startStocks"`
	CSSTag      string `json:"cssTag"`
	NetplayTag  string `json:"netplayTag"`
	Active      bool   `json:"active"`
}

func toReplayJSON(r *slp.Replay) replayJSON {
	out := replayJSON{
		VersionMajor:  r.VersionMajor,
		VersionMinor:  r.VersionMinor,
		VersionRev:    r.VersionRev,
		ParserVersion: r.ParserVersion,
		Stage:         r.Stage,
		Seed:          r.Seed,
		Teams:         r.Teams,
		PAL:           r.PAL,
		Frozen:        r.Frozen,
		EndType:       byte(r.EndType),
		HasEnd:        r.HasEnd,
		LastFrame:     r.LastFrame,
		FrameCount:    r.FrameCount,
		GameStartRaw:  base64.StdEncoding.EncodeToString(r.GameStartRaw),
		StartTime:     r.StartTime,
		PlayedOn:      r.PlayedOn,
	}
	for p := 0; p < 8; p++ {
		if !r.ActivePlayer(p) {
			continue
		}
		pl := r.Player[p]
		out.Players = append(out.Players, playerJSON{
			Port:        p,
			ExtCharID:   pl.ExtCharID,
			Color:       pl.Color,
			Type:        byte(pl.Type),
			StartStocks: pl.StartStocks,
			CSSTag:      pl.CSSTag,
			NetplayTag:  pl.NetplayTag,
			Active:      pl.Active,
		})
	}
	return out
}

func decodeFile(path, configPath, logLevel string) (*slp.Replay, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	logger := logging.New(pickLevel(logLevel, cfg.LogLevel))
	return slp.Decode(data, logger, cfg.Thresholds.TimerMinutes)
}

func pickLevel(flagVal, cfgVal string) string {
	if flagVal != "" && flagVal != "info" {
		return flagVal
	}
	if cfgVal != "" {
		return cfgVal
	}
	return flagVal
}

func runDecode(cmd *cobra.Command, args []string) error {
	replay, err := decodeFile(args[0], flagConfigPath, flagLogLevel)
	if err != nil {
		return err
	}

	body, err := json.MarshalIndent(toReplayJSON(replay), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal replay: %w", err)
	}

	if flagDecodeOut == "" {
		fmt.Println(string(body))
		return nil
	}
	return os.WriteFile(flagDecodeOut, body, 0o644)
}
