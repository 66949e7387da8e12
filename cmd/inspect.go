package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/ChainSafe/isagen/table"
	"github.com/urfave/cli/v2"
)

var (
	FieldFlag = &cli.StringFlag{
		Name:     "field",
		Usage:    "Record field to count distinct values of. Options: mnemonic, mode, cycles, length",
		Required: false,
		Value:    "mode",
	}
	WhereFlag = &cli.StringFlag{
		Name:     "where",
		Usage:    `Starlark expression selecting records. Ex: mode == "im" and cycles > 2`,
		Required: false,
	}
)

func CreateInspectCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "inspect",
		Usage:       "Lists the distinct values of a field in an instruction table",
		Description: "Lists the distinct values of a field in an instruction table",
		Action:      action,
		Flags: []cli.Flag{
			TableFlag,
			FieldFlag,
			WhereFlag,
		},
	}
}

var InspectCommand = CreateInspectCommand(Inspect)

func Inspect(ctx *cli.Context) error {
	logger := CreateLogger(ctx)
	records, err := loadTable(ctx, logger)
	if err != nil {
		return err
	}

	if expr := ctx.String(WhereFlag.Name); expr != "" {
		records, err = table.Where(records, expr)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}

	counts, err := table.Distinct(records, ctx.String(FieldFlag.Name))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tcount\n", ctx.String(FieldFlag.Name))
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Value, c.Count)
	}
	fmt.Fprintf(tw, "total\t%d\n", len(records))
	return tw.Flush()
}
