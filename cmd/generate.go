package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChainSafe/isagen/generator"
	"github.com/ChainSafe/isagen/profile"
	"github.com/ChainSafe/isagen/renderer"
	"github.com/retroenv/retrogolib/log"
	"github.com/urfave/cli/v2"
)

var (
	ProfileFlag = &cli.PathFlag{
		Name:     "profile",
		Usage:    "Path to the generator profile (yaml)",
		Required: false,
	}
	FormatFlag = &cli.StringFlag{
		Name:        "format",
		Usage:       "format of the output. Options: go, text, json, yaml",
		Required:    false,
		DefaultText: "go",
	}
	PackageFlag = &cli.StringFlag{
		Name:     "package",
		Usage:    "package name of the generated Go file",
		Required: false,
	}
	OutputFlag = &cli.PathFlag{
		Name:     "output",
		Usage:    "output file path. Default: stdout",
		Required: false,
	}
	WorkersFlag = &cli.IntFlag{
		Name:     "workers",
		Usage:    "number of goroutines building the decision tree",
		Required: false,
	}
)

func CreateGenerateCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "generate",
		Usage:       "Generates the instruction grammar from an instruction table",
		Description: "Normalizes the instruction table, builds the decision tree and renders the match rules",
		Action:      action,
		Flags: []cli.Flag{
			TableFlag,
			ProfileFlag,
			FormatFlag,
			PackageFlag,
			OutputFlag,
			WorkersFlag,
		},
	}
}

var GenerateCommand = CreateGenerateCommand(Generate)

func Generate(ctx *cli.Context) error {
	logger := CreateLogger(ctx)

	prof, err := loadProfile(ctx)
	if err != nil {
		return err
	}

	records, err := loadTable(ctx, logger)
	if err != nil {
		return err
	}

	result, err := generator.New(logger, generator.WithWorkers(prof.Workers)).Run(records)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	outputPath := ctx.Path(OutputFlag.Name)
	if err := writeArtifact(ctx, result, prof, outputPath); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	if outputPath != "" {
		logger.Info("Wrote artifact", log.String("file", outputPath), log.String("format", prof.Format))
	}
	return nil
}

// loadProfile returns the profile file or the defaults, with flags applied
// on top.
func loadProfile(ctx *cli.Context) (*profile.Profile, error) {
	prof := profile.Default()
	if path := ctx.Path(ProfileFlag.Name); path != "" {
		var err error
		prof, err = profile.LoadProfile(path)
		if err != nil {
			return nil, fmt.Errorf("error loading profile: %w", err)
		}
	}

	if ctx.IsSet(FormatFlag.Name) {
		prof.Format = ctx.String(FormatFlag.Name)
	}
	if ctx.IsSet(PackageFlag.Name) {
		prof.Package = ctx.String(PackageFlag.Name)
	}
	if ctx.IsSet(WorkersFlag.Name) {
		prof.Workers = ctx.Int(WorkersFlag.Name)
	}
	if err := prof.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return prof, nil
}

// writeArtifact renders the result completely before touching the output
// file, so a failed render leaves no partial artifact.
func writeArtifact(ctx *cli.Context, result *generator.Result, prof *profile.Profile, outputPath string) error {
	r, err := renderer.New(prof.Format, prof)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := r.Render(result, &buf); err != nil {
		return err
	}
	if err := ctx.Context.Err(); err != nil {
		return err
	}

	if outputPath == "" {
		_, err = ctx.App.Writer.Write(buf.Bytes())
		return err
	}
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("unable to determine absolute path: %w", err)
	}
	return os.WriteFile(absPath, buf.Bytes(), 0644)
}
