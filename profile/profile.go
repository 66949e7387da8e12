// Package profile holds the generator settings that shape the emitted
// artifact.
package profile

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"io"
	"os"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Formats lists the supported artifact formats.
var Formats = []string{"go", "text", "json", "yaml"}

// Profile configures a generation run.
type Profile struct {
	Package    string `yaml:"package"`
	RulesVar   string `yaml:"rules_var"`
	DecodeFunc string `yaml:"decode_func"`
	EmitTypes  bool   `yaml:"emit_types"`
	Workers    int    `yaml:"workers"`
	Format     string `yaml:"format"`
}

// Default returns the profile used when no file is given.
func Default() *Profile {
	return &Profile{
		Package:    "flisp",
		RulesVar:   "rules",
		DecodeFunc: "decode",
		EmitTypes:  true,
		Workers:    1,
		Format:     "go",
	}
}

// LoadProfile loads a profile from a YAML file. Keys missing from the file
// keep their default values.
func LoadProfile(filename string) (*Profile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer file.Close()

	profile := Default()
	if err := yaml.NewDecoder(file).Decode(profile); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", filename, err)
	}
	return profile, nil
}

// reserved holds the package level names of the Go artifact, including the
// imports its decoder uses.
var reserved = map[string]bool{
	"AtomKind": true, "AtomNone": true, "AtomReg": true, "AtomNumber": true,
	"Atom":  true,
	"Shape": true, "ShapeNone": true, "ShapeImm1": true, "ShapeImm2": true, "ShapeOne": true, "ShapeTwo": true,
	"Form":     true,
	"Encoding": true, "EncodingNone": true, "EncodingAbsoluteAddress": true, "EncodingRelativeOffset": true,
	"EncodingPlainValue": true, "EncodingImmediate": true,
	"RuleKey": true, "Rule": true,
	"EndOfStatement": true, "ErrNoMatch": true,
	"errors": true, "fmt": true,
}

// IsReserved reports whether name is declared by the Go artifact itself:
// a support type or constant, an imported package, or an opcode constant
// such as OpLdaImm.
func IsReserved(name string) bool {
	if reserved[name] {
		return true
	}
	rest, ok := strings.CutPrefix(name, "Op")
	if !ok {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return rest == "" || !unicode.IsLower(r)
}

// Validate checks that the profile produces a compilable artifact.
func (p *Profile) Validate() error {
	if !token.IsIdentifier(p.Package) || p.Package == "_" {
		return fmt.Errorf("package %q is not a Go identifier", p.Package)
	}
	if p.Package == "main" {
		return errors.New(`package "main" cannot hold a decoder without a main function`)
	}
	idents := []struct{ name, value string }{
		{"rules_var", p.RulesVar},
		{"decode_func", p.DecodeFunc},
	}
	for _, ident := range idents {
		switch {
		case !token.IsIdentifier(ident.value) || ident.value == "_":
			return fmt.Errorf("%s %q is not a Go identifier", ident.name, ident.value)
		case IsReserved(ident.value):
			return fmt.Errorf("%s %q clashes with a name the artifact declares", ident.name, ident.value)
		case types.Universe.Lookup(ident.value) != nil:
			return fmt.Errorf("%s %q shadows a predeclared identifier", ident.name, ident.value)
		}
	}
	if p.RulesVar == p.DecodeFunc {
		return fmt.Errorf("rules_var and decode_func are both %q", p.RulesVar)
	}
	if p.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", p.Workers)
	}
	if !slices.Contains(Formats, p.Format) {
		return fmt.Errorf("unknown format %q", p.Format)
	}
	return nil
}
