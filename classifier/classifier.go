// Package classifier maps operand grammars onto the closed vocabulary a
// parser matches against: atoms, operand forms and operand encodings.
package classifier

import (
	"fmt"

	"github.com/ChainSafe/isagen/grammar"
	"github.com/ChainSafe/isagen/isa"
)

// AtomKind is the class of a single operand token.
type AtomKind uint8

// AtomNone has no runtime value at its slot, AtomReg is a fixed register
// reference and AtomNumber is a value supplied by the program.
//
//go:generate go tool stringer -linecomment -type=AtomKind
const (
	AtomNone   AtomKind = iota // None
	AtomReg                    // Reg
	AtomNumber                 // Number
)

// Atom classifies one operand token.
type Atom struct {
	Kind AtomKind
	Reg  string // register name for AtomReg
}

var (
	None   = Atom{Kind: AtomNone}
	Number = Atom{Kind: AtomNumber}
)

// Reg returns the atom for a register reference.
func Reg(name string) Atom {
	return Atom{Kind: AtomReg, Reg: name}
}

func (a Atom) String() string {
	if a.Kind == AtomReg {
		return fmt.Sprintf("%s(%s)", a.Kind, a.Reg)
	}
	return a.Kind.String()
}

// Shape is the aggregate shape of the operand tokens.
type Shape uint8

//go:generate go tool stringer -linecomment -type=Shape
const (
	ShapeNone Shape = iota // None
	ShapeImm1              // Imm1
	ShapeImm2              // Imm2
	ShapeOne               // One
	ShapeTwo               // Two
)

// Form is the operand form of a statement. Unused atoms are None.
type Form struct {
	Shape  Shape
	First  Atom
	Second Atom
}

// Arity returns how many atoms the form carries.
func (f Form) Arity() int {
	switch f.Shape {
	case ShapeImm1, ShapeOne:
		return 1
	case ShapeImm2, ShapeTwo:
		return 2
	}
	return 0
}

func (f Form) String() string {
	switch f.Arity() {
	case 1:
		return fmt.Sprintf("%s(%s)", f.Shape, f.First)
	case 2:
		return fmt.Sprintf("%s(%s, %s)", f.Shape, f.First, f.Second)
	}
	return f.Shape.String()
}

// Encoding is how the runtime operand is written after the opcode.
type Encoding uint8

// EncodingNone writes the opcode only.
//
//go:generate go tool stringer -linecomment -type=Encoding
const (
	EncodingNone            Encoding = iota // None
	EncodingAbsoluteAddress                 // AbsoluteAddress
	EncodingRelativeOffset                  // RelativeOffset
	EncodingPlainValue                      // PlainValue
	EncodingImmediate                       // Immediate
)

var encodings = map[string]Encoding{
	grammar.PlaceholderAbsolute:  EncodingAbsoluteAddress,
	grammar.PlaceholderRelative:  EncodingRelativeOffset,
	grammar.PlaceholderOffset:    EncodingPlainValue,
	grammar.PlaceholderImmediate: EncodingImmediate,
}

// ClassifyAtom classifies an operand token.
func ClassifyAtom(t grammar.Token) Atom {
	switch {
	case t.Kind == grammar.KindAbsent:
		return None
	case t.IsRegister():
		return Reg(t.Text)
	}
	return Number
}

// ClassifyForm classifies the tokens after the mnemonic. Absent slots carry
// no text, so ",X+" is a single operand. Shapes outside the five forms are
// errors; a new addressing mode has to extend the vocabulary.
func ClassifyForm(expected []grammar.Token) (Form, error) {
	if len(expected) == 0 {
		return Form{}, &isa.UnsupportedShapeError{}
	}

	tail := make([]grammar.Token, 0, len(expected)-1)
	for _, t := range expected[1:] {
		if t.Kind != grammar.KindAbsent {
			tail = append(tail, t)
		}
	}

	switch {
	case len(tail) == 0:
		return Form{Shape: ShapeNone}, nil
	case tail[0] == grammar.Placeholder(grammar.PlaceholderImmediate) && len(tail) == 1:
		return Form{Shape: ShapeImm1, First: Number}, nil
	case tail[0] == grammar.Placeholder(grammar.PlaceholderImmediate) && len(tail) == 2:
		return Form{Shape: ShapeImm2, First: Number, Second: ClassifyAtom(tail[1])}, nil
	case tail[0] == grammar.Placeholder(grammar.PlaceholderImmediate):
		// Immediates take at most one trailing register.
	case len(tail) == 1:
		return Form{Shape: ShapeOne, First: ClassifyAtom(tail[0])}, nil
	case len(tail) == 2:
		return Form{Shape: ShapeTwo, First: ClassifyAtom(tail[0]), Second: ClassifyAtom(tail[1])}, nil
	}

	tokens := make([]string, len(expected))
	for i, t := range expected {
		tokens[i] = t.String()
	}
	return Form{}, &isa.UnsupportedShapeError{Mnemonic: expected[0].Text, Tokens: tokens}
}

// ClassifyOutput returns the opcode and the encoding of the runtime operand,
// EncodingNone when the statement encodes to the opcode alone.
func ClassifyOutput(output []grammar.OutputToken) (byte, Encoding, error) {
	if len(output) == 0 || !output[0].IsOpcode() {
		return 0, EncodingNone, &isa.UnknownOperandEncodingError{Placeholder: "<missing opcode>"}
	}
	opcode := output[0].Opcode
	if len(output) == 1 {
		return opcode, EncodingNone, nil
	}
	enc, ok := encodings[output[1].Placeholder]
	if !ok {
		return opcode, EncodingNone, &isa.UnknownOperandEncodingError{Opcode: opcode, Placeholder: output[1].Placeholder}
	}
	return opcode, enc, nil
}

// Classification is the classified view of a spec.
type Classification struct {
	Form     Form
	Opcode   byte
	Encoding Encoding
}

// Classify classifies both sides of a spec.
func Classify(spec grammar.Spec) (Classification, error) {
	form, err := ClassifyForm(spec.Expected)
	if err != nil {
		return Classification{}, err
	}
	opcode, enc, err := ClassifyOutput(spec.Output)
	if err != nil {
		return Classification{}, err
	}
	return Classification{Form: form, Opcode: opcode, Encoding: enc}, nil
}
