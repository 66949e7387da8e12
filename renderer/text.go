package renderer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ChainSafe/isagen/classifier"
	"github.com/ChainSafe/isagen/emitter"
	"github.com/ChainSafe/isagen/generator"
)

// TextRenderer formats the generation result as a structured text report.
type TextRenderer struct{}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer() Renderer {
	return &TextRenderer{}
}

// Render writes the summary, the rule table and the decision tree.
func (r *TextRenderer) Render(result *generator.Result, output io.Writer) error {
	var report strings.Builder

	// Header Section
	report.WriteString("==============================\n")
	report.WriteString("FLISP Instruction Grammar\n")
	report.WriteString("==============================\n\n")
	report.WriteString(fmt.Sprintf("Records: %d\n", len(result.Records)))
	report.WriteString(fmt.Sprintf("Rules: %d\n", len(result.Rules)))
	report.WriteString(fmt.Sprintf("Mnemonics: %d\n", len(result.Decision.Arms)))
	report.WriteString(fmt.Sprintf("Max Lookahead: %d\n\n", result.Tree.MaxDepth()))

	// Rules Section
	report.WriteString("------------------------------\n")
	report.WriteString("Rules\n")
	report.WriteString("------------------------------\n")
	tw := tabwriter.NewWriter(&report, 0, 4, 2, ' ', 0)
	for _, rule := range result.Rules {
		encoding := "-"
		if rule.Encoding != classifier.EncodingNone {
			encoding = rule.Encoding.String()
		}
		fmt.Fprintf(tw, "%02X\t%s\t%s\t%s\t%s\n", rule.Opcode, rule.Mnemonic, rule.Form, encoding, rule.Record.Mode)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Tree Section
	report.WriteString("\n------------------------------\n")
	report.WriteString("Decision Tree\n")
	report.WriteString("------------------------------\n")
	writeDecision(&report, result.Decision, 0)

	_, err := output.Write([]byte(report.String()))
	return err
}

// RenderDecision writes a decision and its nested arms as an indented tree.
func RenderDecision(d *emitter.Decision, output io.Writer) error {
	var sb strings.Builder
	writeDecision(&sb, d, 0)
	_, err := output.Write([]byte(sb.String()))
	return err
}

// RenderArm writes a single arm, as selected by a mnemonic lookup.
func RenderArm(arm emitter.Arm, output io.Writer) error {
	var sb strings.Builder
	writeArm(&sb, arm, 0)
	_, err := output.Write([]byte(sb.String()))
	return err
}

func writeDecision(sb *strings.Builder, d *emitter.Decision, indent int) {
	for _, arm := range d.Arms {
		writeArm(sb, arm, indent)
	}
}

func writeArm(sb *strings.Builder, arm emitter.Arm, indent int) {
	pad := strings.Repeat("  ", indent)
	if arm.IsTerminal() {
		sb.WriteString(fmt.Sprintf("%s%s -> %s\n", pad, arm.Token, arm.Rule))
		return
	}
	sb.WriteString(fmt.Sprintf("%s%s\n", pad, arm.Token))
	writeDecision(sb, arm.Next, indent+1)
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}
