package renderer

import (
	"io"

	"github.com/ChainSafe/isagen/generator"
	"gopkg.in/yaml.v3"
)

// YAMLRenderer renders the rules and decision tree in YAML format.
type YAMLRenderer struct{}

func NewYAMLRenderer() Renderer {
	return &YAMLRenderer{}
}

func (r *YAMLRenderer) Render(result *generator.Result, output io.Writer) error {
	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(2)
	if err := encoder.Encode(newDocument(result)); err != nil {
		return err
	}
	return encoder.Close()
}

func (r *YAMLRenderer) Format() string {
	return "yaml"
}
