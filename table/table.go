// Package table loads instruction tables from YAML, JSON or CSV files.
package table

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ChainSafe/isagen/isa"
	"github.com/retroenv/retrogolib/log"
)

// Format is a table file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FormatForPath detects the table format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported table file extension %q", filepath.Ext(path))
}

// Loader reads instruction tables.
type Loader struct {
	logger *log.Logger
}

// New creates a table loader.
func New(logger *log.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the table at path.
func (l *Loader) Load(path string) ([]isa.InstructionRecord, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer file.Close()

	records, err := l.Read(file, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load table %s: %w", path, err)
	}
	return records, nil
}

// Read decodes a table. Records without a mnemonic are unused opcode slots
// and are dropped. The result is sorted by record ID.
func (l *Loader) Read(r io.Reader, format Format) ([]isa.InstructionRecord, error) {
	var (
		raw []rawRecord
		err error
	)
	switch format {
	case FormatYAML:
		raw, err = decodeYAML(r)
	case FormatJSON:
		raw, err = decodeJSON(r)
	case FormatCSV:
		raw, err = decodeCSV(r)
	default:
		return nil, fmt.Errorf("unsupported table format %q", format)
	}
	if err != nil {
		return nil, err
	}

	records := make([]isa.InstructionRecord, 0, len(raw))
	for _, rr := range raw {
		if strings.TrimSpace(rr.Mnemonic) == "" {
			l.logger.Debug("Skipping unused opcode slot", log.String("id", rr.ID))
			continue
		}
		record, err := rr.record()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	slices.SortFunc(records, func(a, b isa.InstructionRecord) int {
		return strings.Compare(a.ID, b.ID)
	})
	return records, nil
}

// rawRecord is a table row before validation.
type rawRecord struct {
	ID       string `json:"-" yaml:"-"`
	Opcode   string `json:"opcode" yaml:"opcode"`
	Cycles   int    `json:"cycles" yaml:"cycles"`
	Mnemonic string `json:"mnemonic" yaml:"mnemonic"`
	Length   int    `json:"length" yaml:"length"`
	Mode     string `json:"mode" yaml:"mode"`
}

func (rr rawRecord) record() (isa.InstructionRecord, error) {
	opcode, err := ParseOpcode(rr.Opcode)
	if err != nil {
		return isa.InstructionRecord{}, fmt.Errorf("record %s: %w", rr.ID, err)
	}
	return isa.InstructionRecord{
		ID:       rr.ID,
		Opcode:   opcode,
		Cycles:   rr.Cycles,
		Mnemonic: strings.TrimSpace(rr.Mnemonic),
		Length:   rr.Length,
		Mode:     isa.AddressingMode(strings.TrimSpace(rr.Mode)),
	}, nil
}

// ParseOpcode parses a hex opcode byte written as 86, 0x86 or $86.
func ParseOpcode(s string) (byte, error) {
	text := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		text = text[2:]
	case strings.HasPrefix(text, "$"):
		text = text[1:]
	}
	v, err := strconv.ParseUint(text, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid opcode %q: %w", s, err)
	}
	return byte(v), nil
}

func sortedIDs(m map[string]rawRecord) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func flatten(keyed map[string]rawRecord) []rawRecord {
	raw := make([]rawRecord, 0, len(keyed))
	for _, id := range sortedIDs(keyed) {
		rr := keyed[id]
		rr.ID = id
		raw = append(raw, rr)
	}
	return raw
}
