// Package renderer prints generation results in different formats.
package renderer

import (
	"fmt"
	"io"

	"github.com/ChainSafe/isagen/generator"
	"github.com/ChainSafe/isagen/profile"
)

// Renderer defines the interface for rendering generation results.
type Renderer interface {
	// Render writes the rules and decision tree of a result to the provided writer.
	Render(result *generator.Result, output io.Writer) error

	// Format returns the name of the output format (e.g., "go", "json", "text").
	Format() string
}

// New returns the renderer for a format.
func New(format string, p *profile.Profile) (Renderer, error) {
	switch format {
	case "go":
		return NewGoRenderer(p), nil
	case "text":
		return NewTextRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "yaml":
		return NewYAMLRenderer(), nil
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}
