// Package emitter derives the match-arm IR from operand grammars. Renderers
// print the IR; nothing here produces text for a particular target.
package emitter

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/ChainSafe/isagen/classifier"
	"github.com/ChainSafe/isagen/decision"
	"github.com/ChainSafe/isagen/grammar"
	"github.com/ChainSafe/isagen/isa"
)

// Key is what the consuming matcher dispatches on.
type Key struct {
	Mnemonic string
	Form     classifier.Form
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s", k.Mnemonic, k.Form)
}

// Rule maps a mnemonic and operand form to the opcode and operand encoding.
type Rule struct {
	Mnemonic string
	Form     classifier.Form
	Opcode   byte
	Encoding classifier.Encoding
	Record   isa.InstructionRecord
}

// Key returns the dispatch key of the rule.
func (r Rule) Key() Key {
	return Key{Mnemonic: r.Mnemonic, Form: r.Form}
}

func (r Rule) String() string {
	if r.Encoding == classifier.EncodingNone {
		return fmt.Sprintf("%s => %02X", r.Key(), r.Opcode)
	}
	return fmt.Sprintf("%s => %02X %s", r.Key(), r.Opcode, r.Encoding)
}

// RuleFor classifies a single spec.
func RuleFor(spec grammar.Spec) (Rule, error) {
	c, err := classifier.Classify(spec)
	if err != nil {
		return Rule{}, fmt.Errorf("classifying %s: %w", spec.Record, err)
	}
	return Rule{
		Mnemonic: spec.Mnemonic(),
		Form:     c.Form,
		Opcode:   c.Opcode,
		Encoding: c.Encoding,
		Record:   spec.Record,
	}, nil
}

// Emit returns one rule per spec, ordered by opcode. Two rules sharing a
// dispatch key are a table integrity error.
func Emit(specs []grammar.Spec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		rule, err := RuleFor(spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	SortRules(rules)
	if err := checkConflicts(rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// SortRules orders rules by opcode, then by key.
func SortRules(rules []Rule) {
	slices.SortStableFunc(rules, func(a, b Rule) int {
		return cmp.Or(
			cmp.Compare(a.Opcode, b.Opcode),
			strings.Compare(a.Mnemonic, b.Mnemonic),
			strings.Compare(a.Form.String(), b.Form.String()),
		)
	})
}

func checkConflicts(rules []Rule) error {
	seen := make(map[Key]Rule, len(rules))
	for _, r := range rules {
		if prev, ok := seen[r.Key()]; ok {
			return &isa.TableIntegrityError{
				Reason:  fmt.Sprintf("conflicting rules for %s", r.Key()),
				Records: []isa.InstructionRecord{prev.Record, r.Record},
			}
		}
		seen[r.Key()] = r
	}
	return nil
}

// Decision is one level of the nested matcher: it inspects the token at
// Depth after Prefix has been consumed.
type Decision struct {
	Depth    int
	Prefix   []grammar.Token
	Arms     []Arm
	Fallback Fallback
}

// Arm is one case of a decision. Exactly one of Next and Rule is set.
type Arm struct {
	Token grammar.Token
	Next  *Decision
	Rule  *Rule
}

// IsTerminal reports whether the arm selects a rule.
func (a Arm) IsTerminal() bool {
	return a.Rule != nil
}

// Fallback is the default arm of a decision. The tree only covers tokens
// seen in the table, so any other token is a parse failure.
type Fallback struct {
	Prefix   []grammar.Token
	Expected []grammar.Token
}

// Message describes the parse failure.
func (f Fallback) Message() string {
	expected := make([]string, len(f.Expected))
	for i, t := range f.Expected {
		expected[i] = t.String()
	}
	if len(f.Prefix) == 0 {
		return fmt.Sprintf("unknown mnemonic, expected one of %s", strings.Join(expected, ", "))
	}
	prefix := make([]string, len(f.Prefix))
	for i, t := range f.Prefix {
		prefix[i] = t.String()
	}
	return fmt.Sprintf("unexpected token after %s, expected one of %s",
		strings.Join(prefix, " "), strings.Join(expected, ", "))
}

// Rules returns the terminal rules reachable from d in depth-first arm order.
func (d *Decision) Rules() []*Rule {
	var rules []*Rule
	for _, arm := range d.Arms {
		if arm.IsTerminal() {
			rules = append(rules, arm.Rule)
			continue
		}
		rules = append(rules, arm.Next.Rules()...)
	}
	return rules
}

// EmitTree converts a decision tree into nested decisions. Leaves carry the
// same rule the flat path emits for their spec.
func EmitTree(root *decision.Node) (*Decision, error) {
	if root.IsLeaf() {
		return nil, fmt.Errorf("emitting tree: root must be a branch, got leaf %s", root.Spec.Record)
	}
	d, err := emitNode(root, nil)
	if err != nil {
		return nil, err
	}

	var flat []Rule
	for _, r := range d.Rules() {
		flat = append(flat, *r)
	}
	SortRules(flat)
	if err := checkConflicts(flat); err != nil {
		return nil, err
	}
	return d, nil
}

func emitNode(node *decision.Node, prefix []grammar.Token) (*Decision, error) {
	keys := node.Keys()
	d := &Decision{
		Depth:    node.Depth,
		Prefix:   prefix,
		Arms:     make([]Arm, 0, len(keys)),
		Fallback: Fallback{Prefix: prefix, Expected: keys},
	}
	for _, key := range keys {
		child := node.Children[key]
		if child.IsLeaf() {
			rule, err := RuleFor(*child.Spec)
			if err != nil {
				return nil, err
			}
			d.Arms = append(d.Arms, Arm{Token: key, Rule: &rule})
			continue
		}

		next, err := emitNode(child, append(slices.Clip(prefix), key))
		if err != nil {
			return nil, err
		}
		d.Arms = append(d.Arms, Arm{Token: key, Next: next})
	}
	return d, nil
}
