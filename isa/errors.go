package isa

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	ErrTableIntegrity         = errors.New("table integrity")
	ErrUnsupportedShape       = errors.New("unsupported operand shape")
	ErrUnknownOperandEncoding = errors.New("unknown operand encoding")
)

// TableIntegrityError reports an instruction table that cannot produce a
// correct grammar: an unknown addressing mode, or two records that would be
// indistinguishable from source text.
type TableIntegrityError struct {
	Reason  string
	Records []InstructionRecord
}

func (e *TableIntegrityError) Error() string {
	if len(e.Records) == 0 {
		return fmt.Sprintf("table integrity: %s", e.Reason)
	}
	records := make([]string, len(e.Records))
	for i, r := range e.Records {
		records[i] = r.String()
	}
	return fmt.Sprintf("table integrity: %s [%s]", e.Reason, strings.Join(records, "; "))
}

func (e *TableIntegrityError) Unwrap() error {
	return ErrTableIntegrity
}

// UnsupportedShapeError reports an expected-token sequence that none of the
// operand forms can represent.
type UnsupportedShapeError struct {
	Mnemonic string
	Tokens   []string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported operand shape for %s: [%s]", e.Mnemonic, strings.Join(e.Tokens, " "))
}

func (e *UnsupportedShapeError) Unwrap() error {
	return ErrUnsupportedShape
}

// UnknownOperandEncodingError reports an output placeholder with no operand
// encoding.
type UnknownOperandEncodingError struct {
	Opcode      byte
	Placeholder string
}

func (e *UnknownOperandEncodingError) Error() string {
	return fmt.Sprintf("unknown operand encoding %q for opcode %02X", e.Placeholder, e.Opcode)
}

func (e *UnknownOperandEncodingError) Unwrap() error {
	return ErrUnknownOperandEncoding
}
