package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChainSafe/isagen/isa"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp("test")
	app.Writer = &out
	app.ErrWriter = &out
	err := app.RunContext(context.Background(), append([]string{"isagen", "--quiet"}, args...))
	return out.String(), err
}

func TestGenerate(t *testing.T) {
	tests := map[string]struct {
		args []string
		want []string
	}{
		"go to stdout": {
			args: []string{"generate", "--table", "testdata/table.yaml"},
			want: []string{"package flisp", "var rules = map[RuleKey]Rule{", "OpSubaImm"},
		},
		"text": {
			args: []string{"generate", "--table", "testdata/table.yaml", "--format", "text"},
			want: []string{"Records: 18", "Rules: 18", "Mnemonics: 9"},
		},
		"profile and flags": {
			args: []string{"generate", "--table", "testdata/table.yaml", "--profile", "testdata/profile.yaml", "--package", "flispasm", "--workers", "3"},
			want: []string{"package flispasm", "var matchTable = map[RuleKey]Rule{", "func Decode(tokens []string) (Rule, error) {"},
		},
		"json": {
			args: []string{"generate", "--table", "testdata/table.yaml", "--format", "json"},
			want: []string{`"mnemonic": "SUBA"`, `"fallback": "unknown mnemonic`},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestGenerateOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flisp.yaml")
	out, err := run(t, "generate", "--table", "testdata/table.yaml", "--format", "yaml", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "rules:\n"))
}

func TestGenerateErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flisp.go")

	_, err := run(t, "generate", "--table", "testdata/duplicate.yaml", "--output", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, isa.ErrTableIntegrity))
	assert.NoFileExists(t, path)

	_, err = run(t, "generate", "--table", "testdata/table.yaml", "--format", "html")
	assert.ErrorContains(t, err, `unknown format "html"`)

	_, err = run(t, "generate", "--table", "testdata/missing.yaml")
	assert.ErrorContains(t, err, "error loading table")

	_, err = run(t, "generate")
	assert.Error(t, err)
}

func TestTree(t *testing.T) {
	out, err := run(t, "tree", "--table", "testdata/table.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "NOP -> NOP None => 00\n")
	assert.Contains(t, out, "SUBA\n  #Data -> SUBA Imm1(Number) => 94 Immediate\n")

	out, err = run(t, "tree", "--table", "testdata/table.yaml", "--mnemonic", "SUB")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "SUBA\n"))
	assert.NotContains(t, out, "LDA")

	out, err = run(t, "tree", "--table", "testdata/table.yaml", "--mnemonic", "LDA")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "LDA\n"))

	out, err = run(t, "tree", "--table", "testdata/table.yaml", "--mnemonic", "CL")
	require.NoError(t, err)
	assert.Equal(t, "CLRA -> CLRA None => 05\n", out)
}

func TestTreeMnemonicErrors(t *testing.T) {
	_, err := run(t, "tree", "--table", "testdata/table.yaml", "--mnemonic", "LD")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = run(t, "tree", "--table", "testdata/table.yaml", "--mnemonic", "Q")
	assert.ErrorContains(t, err, `no mnemonic starts with "Q"`)
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", "--table", "testdata/table.yaml")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, []string{"mode", "count"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"im", "4"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"total", "18"}, strings.Fields(lines[len(lines)-1]))

	out, err = run(t, "inspect", "--table", "testdata/table.yaml", "--field", "mnemonic", "--where", `mode == "im"`)
	require.NoError(t, err)
	assert.Equal(t, "mnemonic  count\n"+
		"LDA       1\n"+
		"LDSP      1\n"+
		"LDX       1\n"+
		"SUBA      1\n"+
		"total     4\n", out)

	_, err = run(t, "inspect", "--table", "testdata/table.yaml", "--where", "mode ==")
	assert.ErrorContains(t, err, "invalid filter")
}
