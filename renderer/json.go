package renderer

import (
	"encoding/json"
	"io"

	"github.com/ChainSafe/isagen/generator"
)

// JSONRenderer renders the rules and decision tree in JSON format.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(result *generator.Result, output io.Writer) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newDocument(result))
}

func (r *JSONRenderer) Format() string {
	return "json"
}
