package grammar

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/ChainSafe/isagen/isa"
)

// Spec is the normalized operand grammar of one instruction record.
type Spec struct {
	Record   isa.InstructionRecord
	Expected []Token       // mnemonic words, then mode tokens
	Output   []OutputToken // opcode, then runtime operand placeholders
}

// Mnemonic returns the leading mnemonic word.
func (s Spec) Mnemonic() string {
	return s.Expected[0].Text
}

// Opcode returns the opcode byte.
func (s Spec) Opcode() byte {
	return s.Output[0].Opcode
}

// ExpectedStrings returns the expected tokens in their textual form.
func (s Spec) ExpectedStrings() []string {
	out := make([]string, len(s.Expected))
	for i, t := range s.Expected {
		out[i] = t.String()
	}
	return out
}

// OutputStrings returns the output tokens in their textual form.
func (s Spec) OutputStrings() []string {
	out := make([]string, len(s.Output))
	for i, t := range s.Output {
		out[i] = t.String()
	}
	return out
}

func (s Spec) String() string {
	return fmt.Sprintf("[%s] -> [%s]", strings.Join(s.ExpectedStrings(), " "), strings.Join(s.OutputStrings(), " "))
}

// modeTokens holds the tokens a mode appends after the mnemonic words.
type modeTokens struct {
	expected []Token
	output   []string
}

var modes = map[isa.AddressingMode]modeTokens{
	isa.ModeInherent:       {},
	isa.ModeImmediate:      {expected: []Token{Placeholder(PlaceholderImmediate)}, output: []string{PlaceholderImmediate}},
	isa.ModeAbsolute:       {expected: []Token{Placeholder(PlaceholderAbsolute)}, output: []string{PlaceholderAbsolute}},
	isa.ModeRelative:       {expected: []Token{Placeholder(PlaceholderRelative)}, output: []string{PlaceholderRelative}},
	isa.ModeIndexedX:       {expected: []Token{Placeholder(PlaceholderOffset), Register("X")}, output: []string{PlaceholderOffset}},
	isa.ModeIndexedSP:      {expected: []Token{Placeholder(PlaceholderOffset), Register("SP")}, output: []string{PlaceholderOffset}},
	isa.ModeIndexedY:       {expected: []Token{Placeholder(PlaceholderOffset), Register("Y")}, output: []string{PlaceholderOffset}},
	isa.ModeAccumulatorX:   {expected: []Token{Register("A"), Register("X")}},
	isa.ModeAccumulatorY:   {expected: []Token{Register("A"), Register("Y")}},
	isa.ModePostIncrementX: {expected: []Token{Absent, Indexed("X+")}},
	isa.ModePostDecrementX: {expected: []Token{Absent, Indexed("X-")}},
	isa.ModePreIncrementX:  {expected: []Token{Absent, Indexed("+X")}},
	isa.ModePreDecrementX:  {expected: []Token{Absent, Indexed("-X")}},
	isa.ModePostIncrementY: {expected: []Token{Absent, Indexed("Y+")}},
	isa.ModePostDecrementY: {expected: []Token{Absent, Indexed("Y-")}},
	isa.ModePreIncrementY:  {expected: []Token{Absent, Indexed("+Y")}},
	isa.ModePreDecrementY:  {expected: []Token{Absent, Indexed("-Y")}},
}

// SplitMnemonic splits mnemonic text on whitespace and commas.
func SplitMnemonic(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// Normalize derives the operand grammar of a record. An unknown addressing
// mode or a word spelling EndOfStatement is a table integrity error.
func Normalize(record isa.InstructionRecord) (Spec, error) {
	words := SplitMnemonic(record.Mnemonic)
	if len(words) == 0 {
		return Spec{}, &isa.TableIntegrityError{
			Reason:  "record has no mnemonic",
			Records: []isa.InstructionRecord{record},
		}
	}

	if slices.Contains(words, EndOfStatement) {
		return Spec{}, &isa.TableIntegrityError{
			Reason:  fmt.Sprintf("mnemonic uses reserved token %q", EndOfStatement),
			Records: []isa.InstructionRecord{record},
		}
	}

	mode, ok := modes[record.Mode]
	if !ok {
		return Spec{}, &isa.TableIntegrityError{
			Reason:  fmt.Sprintf("unknown addressing mode %q", string(record.Mode)),
			Records: []isa.InstructionRecord{record},
		}
	}

	expected := make([]Token, 0, len(words)+len(mode.expected))
	expected = append(expected, Word(words[0]))
	for _, w := range words[1:] {
		expected = append(expected, ParseToken(w))
	}
	expected = append(expected, mode.expected...)

	output := make([]OutputToken, 0, 1+len(mode.output))
	output = append(output, OutputToken{Opcode: record.Opcode})
	for _, p := range mode.output {
		output = append(output, OutputToken{Placeholder: p})
	}

	return Spec{Record: record, Expected: expected, Output: output}, nil
}

// NormalizeAll normalizes a whole table. The first failing record aborts the
// run; a grammar built from a subset would silently misencode the rest.
func NormalizeAll(records []isa.InstructionRecord) ([]Spec, error) {
	specs := make([]Spec, 0, len(records))
	for _, r := range records {
		spec, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
