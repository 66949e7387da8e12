package main

import (
	"os"

	"github.com/ChainSafe/isagen/cmd"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var version = "dev"

func main() {
	ctx := app.Context()

	err := cmd.NewApp(version).RunContext(ctx, os.Args)
	if err != nil {
		logger := log.NewWithConfig(log.DefaultConfig())
		logger.Error("Command failed", log.Err(err))
		os.Exit(1)
	}
}
