package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ChainSafe/isagen/classifier"
	"github.com/ChainSafe/isagen/emitter"
	"github.com/ChainSafe/isagen/generator"
	"github.com/ChainSafe/isagen/grammar"
	"github.com/ChainSafe/isagen/isa"
	"github.com/ChainSafe/isagen/profile"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"
)

// modeSuffixes name the addressing mode in opcode constants.
var modeSuffixes = map[isa.AddressingMode]string{
	isa.ModeInherent:       "",
	isa.ModeImmediate:      "Imm",
	isa.ModeAbsolute:       "Abs",
	isa.ModeRelative:       "Rel",
	isa.ModeIndexedX:       "NX",
	isa.ModeIndexedSP:      "NSP",
	isa.ModeIndexedY:       "NY",
	isa.ModeAccumulatorX:   "AX",
	isa.ModeAccumulatorY:   "AY",
	isa.ModePostIncrementX: "XPostInc",
	isa.ModePostDecrementX: "XPostDec",
	isa.ModePreIncrementX:  "XPreInc",
	isa.ModePreDecrementX:  "XPreDec",
	isa.ModePostIncrementY: "YPostInc",
	isa.ModePostDecrementY: "YPostDec",
	isa.ModePreIncrementY:  "YPreInc",
	isa.ModePreDecrementY:  "YPreDec",
}

// GoRenderer emits a Go source file with the match table and decoder.
type GoRenderer struct {
	profile *profile.Profile
	title   cases.Caser
}

// NewGoRenderer creates a renderer for the package and names in p.
func NewGoRenderer(p *profile.Profile) Renderer {
	return &GoRenderer{
		profile: p,
		title:   cases.Title(language.Und),
	}
}

// Render writes the formatted Go source. Output depends only on the result
// and the profile.
func (r *GoRenderer) Render(result *generator.Result, output io.Writer) error {
	g := &goWriter{}
	names := r.opcodeNames(result.Rules)

	g.p("// Code generated by isagen. DO NOT EDIT.\n\n")
	g.p("package %s\n\n", r.profile.Package)
	if r.profile.EmitTypes {
		g.p("%s", goSupport)
		g.p("// EndOfStatement is the token seen past the last token of a statement.\n")
		g.p("const EndOfStatement = %q\n\n", grammar.EndOfStatement)
	}

	g.p("// Opcodes of the instruction table.\n")
	g.p("const (\n")
	for _, rule := range result.Rules {
		g.p("\t%s byte = 0x%02X // %s\n", names[rule.Record], rule.Opcode, rule.Record.Mnemonic+" "+rule.Record.Mode.Description())
	}
	g.p(")\n\n")

	g.p("// %s maps a mnemonic and operand form to its encoding.\n", r.profile.RulesVar)
	g.p("var %s = map[RuleKey]Rule{\n", r.profile.RulesVar)
	for _, rule := range result.Rules {
		g.p("\t{Mnemonic: %q, Form: %s}: %s,\n", rule.Mnemonic, goForm(rule.Form), goRule(rule, names))
	}
	g.p("}\n\n")

	g.p("// %s selects an instruction from the tokens of a statement. Operands are\n", r.profile.DecodeFunc)
	g.p("// passed as their placeholder names and empty slots as \"\". Decoding stops\n")
	g.p("// as soon as a single instruction remains.\n")
	g.p("func %s(tokens []string) (Rule, error) {\n", r.profile.DecodeFunc)
	g.p("\tat := func(i int) string {\n")
	g.p("\t\tif i < len(tokens) {\n\t\t\treturn tokens[i]\n\t\t}\n")
	g.p("\t\treturn EndOfStatement\n\t}\n")
	g.decision(result.Decision, names, 1)
	g.p("}\n")

	src, err := imports.Process(r.profile.Package+".go", g.buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return fmt.Errorf("formatting generated source: %w", err)
	}
	_, err = output.Write(src)
	return err
}

// Format returns the format type.
func (r *GoRenderer) Format() string {
	return "go"
}

// opcodeNames derives a constant name per record, such as OpLdaImm or
// OpTfrACc. Clashing names get the opcode appended.
func (r *GoRenderer) opcodeNames(rules []emitter.Rule) map[isa.InstructionRecord]string {
	names := make(map[isa.InstructionRecord]string, len(rules))
	used := make(map[string]bool, len(rules))
	for _, rule := range rules {
		var sb strings.Builder
		sb.WriteString("Op")
		for _, word := range grammar.SplitMnemonic(rule.Record.Mnemonic) {
			sb.WriteString(identifier(r.title.String(word)))
		}
		sb.WriteString(modeSuffixes[rule.Record.Mode])
		name := sb.String()
		if used[name] {
			name = fmt.Sprintf("%s_%02X", name, rule.Opcode)
		}
		used[name] = true
		names[rule.Record] = name
	}
	return names
}

// identifier drops characters that cannot appear in a Go identifier.
func identifier(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

type goWriter struct {
	buf bytes.Buffer
}

func (g *goWriter) p(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

func (g *goWriter) decision(d *emitter.Decision, names map[isa.InstructionRecord]string, indent int) {
	tabs := strings.Repeat("\t", indent)
	g.p("%sswitch at(%d) {\n", tabs, d.Depth)
	for _, arm := range d.Arms {
		g.p("%scase %s:\n", tabs, goToken(arm.Token))
		if arm.IsTerminal() {
			g.p("%s\treturn %s, nil\n", tabs, goRule(*arm.Rule, names))
			continue
		}
		g.decision(arm.Next, names, indent+1)
	}
	g.p("%sdefault:\n", tabs)
	g.p("%s\treturn Rule{}, fmt.Errorf(\"%%w: %%s\", ErrNoMatch, %q)\n", tabs, d.Fallback.Message())
	g.p("%s}\n", tabs)
}

func goToken(t grammar.Token) string {
	switch t.Kind {
	case grammar.KindAbsent:
		return `""`
	case grammar.KindEnd:
		return "EndOfStatement"
	}
	return fmt.Sprintf("%q", t.Text)
}

func goRule(rule emitter.Rule, names map[isa.InstructionRecord]string) string {
	if rule.Encoding == classifier.EncodingNone {
		return fmt.Sprintf("Rule{Opcode: %s}", names[rule.Record])
	}
	return fmt.Sprintf("Rule{Opcode: %s, Encoding: Encoding%s}", names[rule.Record], rule.Encoding)
}

func goForm(f classifier.Form) string {
	switch f.Arity() {
	case 1:
		return fmt.Sprintf("Form{Shape: Shape%s, First: %s}", f.Shape, goAtom(f.First))
	case 2:
		return fmt.Sprintf("Form{Shape: Shape%s, First: %s, Second: %s}", f.Shape, goAtom(f.First), goAtom(f.Second))
	}
	return fmt.Sprintf("Form{Shape: Shape%s}", f.Shape)
}

func goAtom(a classifier.Atom) string {
	switch a.Kind {
	case classifier.AtomReg:
		return fmt.Sprintf("Atom{Kind: AtomReg, Reg: %q}", a.Reg)
	case classifier.AtomNumber:
		return "Atom{Kind: AtomNumber}"
	}
	return "Atom{}"
}

const goSupport = `// AtomKind is the class of a single operand.
type AtomKind uint8

const (
	AtomNone AtomKind = iota
	AtomReg
	AtomNumber
)

// Atom is one classified operand.
type Atom struct {
	Kind AtomKind
	Reg  string
}

// Shape is the aggregate shape of the operands of a statement.
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeImm1
	ShapeImm2
	ShapeOne
	ShapeTwo
)

// Form is the operand form of a statement.
type Form struct {
	Shape  Shape
	First  Atom
	Second Atom
}

// Encoding is how the runtime operand follows the opcode.
type Encoding uint8

const (
	EncodingNone Encoding = iota
	EncodingAbsoluteAddress
	EncodingRelativeOffset
	EncodingPlainValue
	EncodingImmediate
)

// RuleKey is what a statement is matched on.
type RuleKey struct {
	Mnemonic string
	Form     Form
}

// Rule is the encoding selected for a statement.
type Rule struct {
	Opcode   byte
	Encoding Encoding
}

// ErrNoMatch is returned for statements outside the instruction table.
var ErrNoMatch = errors.New("no matching instruction")

`
