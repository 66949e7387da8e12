package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var csvColumns = []string{"id", "opcode", "cycles", "mnemonic", "length", "mode"}

// decodeCSV reads a table with a header row naming the columns. Column order
// is free; cycles and length may be empty.
func decodeCSV(r io.Reader) ([]rawRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range csvColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("csv header is missing column %q", name)
		}
	}

	var raw []rawRecord
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv table: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rr := rawRecord{
			ID:       fields[index["id"]],
			Opcode:   fields[index["opcode"]],
			Mnemonic: fields[index["mnemonic"]],
			Mode:     fields[index["mode"]],
		}
		if rr.Cycles, err = atoi(fields[index["cycles"]]); err != nil {
			return nil, fmt.Errorf("line %d: invalid cycles: %w", line, err)
		}
		if rr.Length, err = atoi(fields[index["length"]]); err != nil {
			return nil, fmt.Errorf("line %d: invalid length: %w", line, err)
		}
		raw = append(raw, rr)
	}
	return raw, nil
}

func atoi(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
