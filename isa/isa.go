// Package isa defines the instruction table records consumed by the generator
// and the error taxonomy shared by every generation stage.
package isa

import "fmt"

// InstructionRecord is one row of the instruction table.
type InstructionRecord struct {
	ID       string         `json:"id" yaml:"id"`             // Opaque key from the source table.
	Opcode   byte           `json:"opcode" yaml:"opcode"`     // Encoded opcode byte.
	Cycles   int            `json:"cycles" yaml:"cycles"`     // Clock cycles.
	Mnemonic string         `json:"mnemonic" yaml:"mnemonic"` // Mnemonic text, e.g. "LDA" or "TFR A,CC".
	Length   int            `json:"length" yaml:"length"`     // Encoded length in bytes.
	Mode     AddressingMode `json:"mode" yaml:"mode"`
}

// String identifies the record in log lines and error messages.
func (r InstructionRecord) String() string {
	if r.ID == "" {
		return fmt.Sprintf("%02X %s (%s)", r.Opcode, r.Mnemonic, r.Mode)
	}
	return fmt.Sprintf("%s: %02X %s (%s)", r.ID, r.Opcode, r.Mnemonic, r.Mode)
}

// AddressingMode is the short addressing-mode code of a record.
type AddressingMode string

const (
	ModeInherent       AddressingMode = "ih"
	ModeImmediate      AddressingMode = "im"
	ModeAbsolute       AddressingMode = "ab"
	ModeRelative       AddressingMode = "pc"
	ModeIndexedX       AddressingMode = "nx"
	ModeIndexedSP      AddressingMode = "ns"
	ModeAccumulatorX   AddressingMode = "ax"
	ModeIndexedY       AddressingMode = "ny"
	ModeAccumulatorY   AddressingMode = "ay"
	ModePostIncrementX AddressingMode = "x+"
	ModePostDecrementX AddressingMode = "x-"
	ModePreIncrementX  AddressingMode = "+x"
	ModePreDecrementX  AddressingMode = "-x"
	ModePostIncrementY AddressingMode = "y+"
	ModePostDecrementY AddressingMode = "y-"
	ModePreIncrementY  AddressingMode = "+y"
	ModePreDecrementY  AddressingMode = "-y"
)

// AddressingModes lists every supported mode in table order.
var AddressingModes = []AddressingMode{
	ModeInherent,
	ModeImmediate,
	ModeAbsolute,
	ModeRelative,
	ModeIndexedX,
	ModeIndexedSP,
	ModeAccumulatorX,
	ModeIndexedY,
	ModeAccumulatorY,
	ModePostIncrementX,
	ModePostDecrementX,
	ModePreIncrementX,
	ModePreDecrementX,
	ModePostIncrementY,
	ModePostDecrementY,
	ModePreIncrementY,
	ModePreDecrementY,
}

var modeNames = map[AddressingMode]string{
	ModeInherent:       "inherent",
	ModeImmediate:      "immediate",
	ModeAbsolute:       "absolute",
	ModeRelative:       "pc-relative",
	ModeIndexedX:       "n,X",
	ModeIndexedSP:      "n,SP",
	ModeAccumulatorX:   "A,X",
	ModeIndexedY:       "n,Y",
	ModeAccumulatorY:   "A,Y",
	ModePostIncrementX: ",X+",
	ModePostDecrementX: ",X-",
	ModePreIncrementX:  ",+X",
	ModePreDecrementX:  ",-X",
	ModePostIncrementY: ",Y+",
	ModePostDecrementY: ",Y-",
	ModePreIncrementY:  ",+Y",
	ModePreDecrementY:  ",-Y",
}

// Valid reports whether m is one of the known addressing-mode codes.
func (m AddressingMode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// Description returns the assembler notation of the mode.
func (m AddressingMode) Description() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}
