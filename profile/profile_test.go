package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile("testdata/profile.yaml")
	require.NoError(t, err)

	assert.Equal(t, &Profile{
		Package:    "asm",
		RulesVar:   "matchTable",
		DecodeFunc: "decode",
		EmitTypes:  true,
		Workers:    4,
		Format:     "go",
	}, p)
}

func TestLoadProfileErrors(t *testing.T) {
	tests := map[string]string{
		"testdata/missing.yaml": "failed to open profile",
		"testdata/invalid.yaml": `package "not an ident" is not a Go identifier`,
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			_, err := LoadProfile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), want)
		})
	}
}

func TestIsReserved(t *testing.T) {
	for _, name := range []string{"Form", "RuleKey", "EncodingImmediate", "Op", "OpNop", "OpLdaImm_86", "Op1"} {
		assert.True(t, IsReserved(name), name)
	}
	for _, name := range []string{"rules", "decode", "Opcodes", "Decode", "Forms"} {
		assert.False(t, IsReserved(name), name)
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		modify  func(p *Profile)
		wantErr string
	}{
		"default":      {modify: func(*Profile) {}},
		"bad rules":    {modify: func(p *Profile) { p.RulesVar = "1rules" }, wantErr: "rules_var"},
		"bad decode":   {modify: func(p *Profile) { p.DecodeFunc = "" }, wantErr: "decode_func"},
		"no workers":   {modify: func(p *Profile) { p.Workers = 0 }, wantErr: "workers must be at least 1"},
		"bad format":   {modify: func(p *Profile) { p.Format = "xml" }, wantErr: `unknown format "xml"`},
		"text format":  {modify: func(p *Profile) { p.Format = "text" }},
		"yaml workers": {modify: func(p *Profile) { p.Format = "yaml"; p.Workers = 8 }},
		"blank package": {
			modify:  func(p *Profile) { p.Package = "_" },
			wantErr: "package",
		},
		"main package": {
			modify:  func(p *Profile) { p.Package = "main" },
			wantErr: `package "main"`,
		},
		"decode is support type": {
			modify:  func(p *Profile) { p.DecodeFunc = "Rule" },
			wantErr: `decode_func "Rule" clashes`,
		},
		"rules is support const": {
			modify:  func(p *Profile) { p.RulesVar = "EndOfStatement" },
			wantErr: `rules_var "EndOfStatement" clashes`,
		},
		"decode is error var": {
			modify:  func(p *Profile) { p.DecodeFunc = "ErrNoMatch" },
			wantErr: "clashes",
		},
		"decode is import": {
			modify:  func(p *Profile) { p.DecodeFunc = "fmt" },
			wantErr: `decode_func "fmt" clashes`,
		},
		"rules is opcode": {
			modify:  func(p *Profile) { p.RulesVar = "OpLdaImm" },
			wantErr: `rules_var "OpLdaImm" clashes`,
		},
		"decode shadows builtin": {
			modify:  func(p *Profile) { p.DecodeFunc = "string" },
			wantErr: "predeclared",
		},
		"same names": {
			modify:  func(p *Profile) { p.RulesVar = "table"; p.DecodeFunc = "table" },
			wantErr: `both "table"`,
		},
		"exported names": {modify: func(p *Profile) { p.RulesVar = "Opcodes"; p.DecodeFunc = "Decode" }},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := Default()
			tt.modify(p)
			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
