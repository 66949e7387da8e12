package cmd

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/isagen/emitter"
	"github.com/ChainSafe/isagen/generator"
	"github.com/ChainSafe/isagen/renderer"
	"github.com/beevik/prefixtree/v2"
	"github.com/urfave/cli/v2"
)

var (
	MnemonicFlag = &cli.StringFlag{
		Name:     "mnemonic",
		Usage:    "Show only the subtree of a mnemonic. Any unique prefix is accepted. Ex: SUB",
		Required: false,
	}
)

func CreateTreeCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "tree",
		Usage:       "Prints the decision tree of an instruction table",
		Description: "Prints the decision tree of an instruction table",
		Action:      action,
		Flags: []cli.Flag{
			TableFlag,
			MnemonicFlag,
		},
	}
}

var TreeCommand = CreateTreeCommand(PrintTree)

func PrintTree(ctx *cli.Context) error {
	logger := CreateLogger(ctx)
	records, err := loadTable(ctx, logger)
	if err != nil {
		return err
	}
	result, err := generator.New(logger).Run(records)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	prefix := ctx.String(MnemonicFlag.Name)
	if prefix == "" {
		return renderer.RenderDecision(result.Decision, ctx.App.Writer)
	}
	arm, err := findMnemonic(result.Decision, prefix)
	if err != nil {
		return err
	}
	return renderer.RenderArm(arm, ctx.App.Writer)
}

// findMnemonic selects the root arm for a mnemonic or a unique prefix of
// one. An exact match wins over longer mnemonics sharing the prefix.
func findMnemonic(root *emitter.Decision, prefix string) (emitter.Arm, error) {
	tree := prefixtree.New[emitter.Arm]()
	for _, arm := range root.Arms {
		if arm.Token.Text == prefix {
			return arm, nil
		}
		tree.Add(arm.Token.Text, arm)
	}

	arm, err := tree.FindValue(prefix)
	switch {
	case errors.Is(err, prefixtree.ErrPrefixAmbiguous):
		return emitter.Arm{}, fmt.Errorf("mnemonic prefix %q is ambiguous", prefix)
	case errors.Is(err, prefixtree.ErrPrefixNotFound):
		return emitter.Arm{}, fmt.Errorf("no mnemonic starts with %q", prefix)
	case err != nil:
		return emitter.Arm{}, err
	}
	return arm, nil
}
