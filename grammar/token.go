// Package grammar turns instruction table records into operand grammars: the
// ordered tokens a statement must contain and the bytes it encodes to.
package grammar

import (
	"fmt"
	"strings"
)

// TokenKind is the role of an expected token.
type TokenKind uint8

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	// KindEnd is the end of statement. It is only used as a tree key.
	KindEnd TokenKind = iota // end
	// KindAbsent is the slot a mode leaves empty, e.g. before ",X+".
	KindAbsent // absent
	// KindWord is a mnemonic word.
	KindWord // word
	// KindRegister is one of A, X, Y, SP, CC.
	KindRegister // register
	// KindIndexed is one of X+, X-, +X, -X, Y+, Y-, +Y, -Y.
	KindIndexed // indexed
	// KindPlaceholder is one of n, AbsAdr, OffsetAdr, #Data.
	KindPlaceholder // placeholder
)

// EndOfStatement is the text form of End. No mnemonic word may spell it.
const EndOfStatement = "<end>"

// Placeholder names.
const (
	PlaceholderOffset    = "n"
	PlaceholderAbsolute  = "AbsAdr"
	PlaceholderRelative  = "OffsetAdr"
	PlaceholderImmediate = "#Data"
)

// Token is one expected token. Tokens are comparable and used directly as
// map keys when grouping.
type Token struct {
	Kind TokenKind
	Text string
}

var (
	// Absent is the empty slot left by auto increment/decrement modes.
	Absent = Token{Kind: KindAbsent}
	// End marks a statement that has no further tokens.
	End = Token{Kind: KindEnd}
)

var (
	registers = map[string]bool{"A": true, "X": true, "Y": true, "SP": true, "CC": true}
	indexed   = map[string]bool{
		"X+": true, "X-": true, "+X": true, "-X": true,
		"Y+": true, "Y-": true, "+Y": true, "-Y": true,
	}
	placeholders = map[string]bool{
		PlaceholderOffset:    true,
		PlaceholderAbsolute:  true,
		PlaceholderRelative:  true,
		PlaceholderImmediate: true,
	}
	// The source tables abbreviate these two registers.
	aliases = map[string]string{"S": "SP", "C": "CC"}
)

// Word returns the token for a mnemonic word.
func Word(text string) Token { return Token{Kind: KindWord, Text: text} }

// Register returns the token for a plain register name.
func Register(name string) Token { return Token{Kind: KindRegister, Text: name} }

// Indexed returns the token for a register with increment/decrement marker.
func Indexed(name string) Token { return Token{Kind: KindIndexed, Text: name} }

// Placeholder returns the token for a numeric operand placeholder.
func Placeholder(name string) Token { return Token{Kind: KindPlaceholder, Text: name} }

// ParseToken classifies a word from mnemonic text. Aliases are resolved
// first, so "S" yields the SP register.
func ParseToken(text string) Token {
	if alias, ok := aliases[text]; ok {
		text = alias
	}
	switch {
	case registers[text]:
		return Register(text)
	case indexed[text]:
		return Indexed(text)
	case placeholders[text]:
		return Placeholder(text)
	}
	return Word(text)
}

// IsRegister reports whether the token names a register, with or without an
// increment/decrement marker.
func (t Token) IsRegister() bool {
	return t.Kind == KindRegister || t.Kind == KindIndexed
}

func (t Token) String() string {
	switch t.Kind {
	case KindAbsent:
		return "None"
	case KindEnd:
		return EndOfStatement
	}
	return t.Text
}

// Compare orders tokens by kind, then text.
func (t Token) Compare(o Token) int {
	if t.Kind != o.Kind {
		if t.Kind < o.Kind {
			return -1
		}
		return 1
	}
	return strings.Compare(t.Text, o.Text)
}

// OutputToken is the opcode byte or a placeholder for a runtime operand.
type OutputToken struct {
	Opcode      byte
	Placeholder string // empty for the opcode itself
}

// IsOpcode reports whether the token is the opcode byte.
func (o OutputToken) IsOpcode() bool { return o.Placeholder == "" }

func (o OutputToken) String() string {
	if o.IsOpcode() {
		return fmt.Sprintf("%02X", o.Opcode)
	}
	return o.Placeholder
}
