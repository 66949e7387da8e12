package emitter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChainSafe/isagen/classifier"
	"github.com/ChainSafe/isagen/decision"
	"github.com/ChainSafe/isagen/grammar"
	"github.com/ChainSafe/isagen/isa"
)

func normalize(t *testing.T, records ...isa.InstructionRecord) []grammar.Spec {
	t.Helper()
	specs, err := grammar.NormalizeAll(records)
	require.NoError(t, err)
	return specs
}

func subaRecords() []isa.InstructionRecord {
	return []isa.InstructionRecord{
		{ID: "d4", Opcode: 0xD4, Mnemonic: "SUBA", Mode: isa.ModeIndexedY},
		{ID: "94", Opcode: 0x94, Mnemonic: "SUBA", Mode: isa.ModeImmediate},
		{ID: "b4", Opcode: 0xB4, Mnemonic: "SUBA", Mode: isa.ModeIndexedSP},
		{ID: "a4", Opcode: 0xA4, Mnemonic: "SUBA", Mode: isa.ModeAbsolute},
		{ID: "c4", Opcode: 0xC4, Mnemonic: "SUBA", Mode: isa.ModeIndexedX},
		{ID: "00", Opcode: 0x00, Mnemonic: "NOP", Mode: isa.ModeInherent},
		{ID: "a6", Opcode: 0xA6, Mnemonic: "LDA", Mode: isa.ModePostIncrementX},
	}
}

func TestEmit(t *testing.T) {
	rules, err := Emit(normalize(t, subaRecords()...))
	require.NoError(t, err)

	got := make([]string, len(rules))
	for i, r := range rules {
		got[i] = r.String()
	}
	assert.Equal(t, []string{
		"NOP None => 00",
		"SUBA Imm1(Number) => 94 Immediate",
		"SUBA One(Number) => A4 AbsoluteAddress",
		"LDA One(Reg(X+)) => A6",
		"SUBA Two(Number, Reg(SP)) => B4 PlainValue",
		"SUBA Two(Number, Reg(X)) => C4 PlainValue",
		"SUBA Two(Number, Reg(Y)) => D4 PlainValue",
	}, got)
}

func TestEmitOneRulePerSpec(t *testing.T) {
	specs := normalize(t, subaRecords()...)
	rules, err := Emit(specs)
	require.NoError(t, err)
	require.Len(t, rules, len(specs))

	for _, spec := range specs {
		found := false
		for _, r := range rules {
			if r.Record == spec.Record {
				assert.Equal(t, spec.Opcode(), r.Opcode)
				assert.Equal(t, spec.Mnemonic(), r.Mnemonic)
				found = true
			}
		}
		assert.True(t, found, "no rule for %s", spec.Record)
	}
}

func TestEmitConflict(t *testing.T) {
	// Absolute and relative addressing both classify as One(Number).
	_, err := Emit(normalize(t,
		isa.InstructionRecord{ID: "j1", Opcode: 0x7A, Mnemonic: "JMP", Mode: isa.ModeAbsolute},
		isa.InstructionRecord{ID: "j2", Opcode: 0x7B, Mnemonic: "JMP", Mode: isa.ModeRelative},
	))
	require.Error(t, err)
	assert.True(t, errors.Is(err, isa.ErrTableIntegrity))

	var integrity *isa.TableIntegrityError
	require.True(t, errors.As(err, &integrity))
	require.Len(t, integrity.Records, 2)
	assert.Equal(t, "j1", integrity.Records[0].ID)
	assert.Equal(t, "j2", integrity.Records[1].ID)
}

func TestEmitPropagatesClassifierErrors(t *testing.T) {
	spec := grammar.Spec{
		Record:   isa.InstructionRecord{ID: "x", Opcode: 0x0A, Mnemonic: "BAD"},
		Expected: []grammar.Token{grammar.Word("BAD")},
		Output:   []grammar.OutputToken{{Opcode: 0x0A}, {Placeholder: "Bogus"}},
	}
	_, err := Emit([]grammar.Spec{spec})
	assert.True(t, errors.Is(err, isa.ErrUnknownOperandEncoding))
}

func TestEmitTree(t *testing.T) {
	specs := normalize(t, subaRecords()...)
	tree, err := decision.Build(specs)
	require.NoError(t, err)

	d, err := EmitTree(tree)
	require.NoError(t, err)

	assert.Equal(t, 0, d.Depth)
	assert.Empty(t, d.Prefix)
	require.Len(t, d.Arms, 3)
	assert.Equal(t, []grammar.Token{grammar.Word("LDA"), grammar.Word("NOP"), grammar.Word("SUBA")},
		[]grammar.Token{d.Arms[0].Token, d.Arms[1].Token, d.Arms[2].Token})

	// Single variants resolve on the mnemonic alone.
	assert.True(t, d.Arms[0].IsTerminal())
	assert.Equal(t, byte(0xA6), d.Arms[0].Rule.Opcode)
	assert.True(t, d.Arms[1].IsTerminal())

	suba := d.Arms[2].Next
	require.NotNil(t, suba)
	assert.Equal(t, 1, suba.Depth)
	assert.Equal(t, []grammar.Token{grammar.Word("SUBA")}, suba.Prefix)
	assert.Equal(t, suba.Prefix, suba.Fallback.Prefix)
	require.Len(t, suba.Arms, 3)

	offset := suba.Arms[2].Next
	require.NotNil(t, offset)
	assert.Equal(t, grammar.Placeholder("n"), suba.Arms[2].Token)
	assert.Equal(t, []grammar.Token{grammar.Word("SUBA"), grammar.Placeholder("n")}, offset.Prefix)
	require.Len(t, offset.Arms, 3)
	assert.Equal(t, grammar.Register("SP"), offset.Arms[0].Token)
	assert.Equal(t, "SUBA Two(Number, Reg(SP)) => B4 PlainValue", offset.Arms[0].Rule.String())
}

func TestEmitTreeMatchesFlatRules(t *testing.T) {
	specs := normalize(t, subaRecords()...)
	flat, err := Emit(specs)
	require.NoError(t, err)

	tree, err := decision.Build(specs)
	require.NoError(t, err)
	d, err := EmitTree(tree)
	require.NoError(t, err)

	var fromTree []Rule
	for _, r := range d.Rules() {
		fromTree = append(fromTree, *r)
	}
	SortRules(fromTree)
	assert.Equal(t, flat, fromTree)
}

func TestEmitTreeConflict(t *testing.T) {
	tree, err := decision.Build(normalize(t,
		isa.InstructionRecord{ID: "j1", Opcode: 0x7A, Mnemonic: "JMP", Mode: isa.ModeAbsolute},
		isa.InstructionRecord{ID: "j2", Opcode: 0x7B, Mnemonic: "JMP", Mode: isa.ModeRelative},
	))
	require.NoError(t, err)

	_, err = EmitTree(tree)
	assert.True(t, errors.Is(err, isa.ErrTableIntegrity))
}

func TestFallbackMessage(t *testing.T) {
	tests := map[string]struct {
		fallback Fallback
		want     string
	}{
		"root": {
			fallback: Fallback{Expected: []grammar.Token{grammar.Word("LDA"), grammar.Word("NOP")}},
			want:     "unknown mnemonic, expected one of LDA, NOP",
		},
		"nested": {
			fallback: Fallback{
				Prefix:   []grammar.Token{grammar.Word("LDA")},
				Expected: []grammar.Token{grammar.Absent, grammar.Placeholder("n")},
			},
			want: "unexpected token after LDA, expected one of None, n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fallback.Message())
		})
	}
}

func TestRuleKey(t *testing.T) {
	r := Rule{Mnemonic: "LDA", Form: classifier.Form{Shape: classifier.ShapeImm1, First: classifier.Number}}
	assert.Equal(t, "LDA Imm1(Number)", r.Key().String())
}
