package cmd

import (
	"github.com/urfave/cli/v2"
)

// NewApp assembles the isagen command line application.
func NewApp(version string) *cli.App {
	app := cli.NewApp()
	app.Name = "isagen"
	app.Usage = "FLISP instruction grammar generator"
	app.Description = "Turns a FLISP instruction table into operand grammars, a decision tree and parser match rules"
	app.Version = version
	app.Flags = GlobalFlags
	app.Commands = []*cli.Command{
		GenerateCommand,
		TreeCommand,
		InspectCommand,
	}
	return app
}
