package table

import (
	"encoding/json"
	"fmt"
	"io"
)

func decodeJSON(r io.Reader) ([]rawRecord, error) {
	var keyed map[string]rawRecord
	if err := json.NewDecoder(r).Decode(&keyed); err != nil {
		return nil, fmt.Errorf("failed to parse json table: %w", err)
	}
	return flatten(keyed), nil
}
