package table

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/ChainSafe/isagen/isa"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Fields lists the record fields Distinct can group by.
var Fields = []string{"mnemonic", "mode", "cycles", "length"}

// Count is a distinct field value and how many records carry it.
type Count struct {
	Value string
	Count int
}

// Distinct counts the records per value of field, most frequent first.
func Distinct(records []isa.InstructionRecord, field string) ([]Count, error) {
	counts := make(map[string]int)
	for _, r := range records {
		var value string
		switch field {
		case "mnemonic":
			value = r.Mnemonic
		case "mode":
			value = string(r.Mode)
		case "cycles":
			value = strconv.Itoa(r.Cycles)
		case "length":
			value = strconv.Itoa(r.Length)
		default:
			return nil, fmt.Errorf("unknown field %q", field)
		}
		counts[value]++
	}

	out := make([]Count, 0, len(counts))
	for value, n := range counts {
		out = append(out, Count{Value: value, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Value, b.Value))
	})
	return out, nil
}

// Where keeps the records for which the Starlark expression is true. The
// record fields are predeclared, e.g. `mode == "im" and cycles > 2`.
func Where(records []isa.InstructionRecord, expr string) ([]isa.InstructionRecord, error) {
	prog := "rc=" + expr + "\n"
	opts := syntax.FileOptions{}

	var out []isa.InstructionRecord
	for _, r := range records {
		thread := starlark.Thread{Name: "where"}
		pred := starlark.StringDict{
			"id":       starlark.String(r.ID),
			"opcode":   starlark.MakeInt(int(r.Opcode)),
			"cycles":   starlark.MakeInt(r.Cycles),
			"mnemonic": starlark.String(r.Mnemonic),
			"length":   starlark.MakeInt(r.Length),
			"mode":     starlark.String(r.Mode),
		}
		dict, err := starlark.ExecFileOptions(&opts, &thread, "where", prog, pred)
		if err != nil {
			return nil, fmt.Errorf("evaluating %q: %w", expr, err)
		}
		rc, ok := dict["rc"]
		if !ok {
			return nil, fmt.Errorf("evaluating %q: no result", expr)
		}
		if rc.Truth() {
			out = append(out, r)
		}
	}
	return out, nil
}
