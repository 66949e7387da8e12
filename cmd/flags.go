// Package cmd defines all the commands for the cli
package cmd

import (
	"fmt"

	"github.com/ChainSafe/isagen/isa"
	"github.com/ChainSafe/isagen/table"
	"github.com/retroenv/retrogolib/log"
	"github.com/urfave/cli/v2"
)

var (
	DebugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug logging",
	}
	QuietFlag = &cli.BoolFlag{
		Name:  "quiet",
		Usage: "only log errors",
	}
	TableFlag = &cli.PathFlag{
		Name:     "table",
		Usage:    "Path to the instruction table (.yaml, .json or .csv)",
		Required: true,
	}
)

// GlobalFlags are the flags accepted before any command.
var GlobalFlags = []cli.Flag{
	DebugFlag,
	QuietFlag,
}

// CreateLogger creates a logger honoring the debug and quiet flags.
func CreateLogger(ctx *cli.Context) *log.Logger {
	cfg := log.DefaultConfig()
	if ctx.Bool(DebugFlag.Name) {
		cfg.Level = log.DebugLevel
	} else if ctx.Bool(QuietFlag.Name) {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// loadTable reads the records of the table given by the table flag.
func loadTable(ctx *cli.Context, logger *log.Logger) ([]isa.InstructionRecord, error) {
	path := ctx.Path(TableFlag.Name)
	records, err := table.New(logger).Load(path)
	if err != nil {
		return nil, fmt.Errorf("error loading table: %w", err)
	}
	logger.Debug("Loaded instruction table",
		log.String("file", path),
		log.Int("records", len(records)))
	return records, nil
}
