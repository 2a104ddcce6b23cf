// Command d2edit is a CLI front end for the save-file codec core: load,
// inspect, and apply single mutations to a Median XL save file, then
// write it back bit-exact and checksummed (spec §6 operational surface).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/d2edit/saveedit/internal/config"
)

const configPathEnv = "D2EDIT_CONFIG"

var defaultConfigPath = "d2edit.yaml"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfgPath := defaultConfigPath
	if p := os.Getenv(configPathEnv); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("loading config", "err", err)
		os.Exit(1)
	}

	parser := flags.NewParser(&struct{}{}, flags.Default)
	parser.Name = "d2edit"
	parser.LongDescription = "Inspect and mutate Median XL save files"

	addInfoCommand(parser, &cfg)
	addScanCommand(parser, &cfg)
	addMaximizeSocketsCommand(parser, &cfg)
	addShrineBlessCommand(parser, &cfg)
	addClearModsCommand(parser, &cfg)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			if flagsErr.Type == flags.ErrCommandRequired {
				parser.WriteHelp(os.Stderr)
				os.Exit(1)
			}
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
