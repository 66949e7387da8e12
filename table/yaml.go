package table

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// decodeYAML reads a table keyed by record ID. Scalars decode into string
// fields verbatim, so unquoted opcodes such as 86 or 0x86 keep their text.
func decodeYAML(r io.Reader) ([]rawRecord, error) {
	var keyed map[string]rawRecord
	if err := yaml.NewDecoder(r).Decode(&keyed); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse yaml table: %w", err)
	}
	return flatten(keyed), nil
}
