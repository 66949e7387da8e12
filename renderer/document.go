package renderer

import (
	"fmt"

	"github.com/ChainSafe/isagen/classifier"
	"github.com/ChainSafe/isagen/emitter"
	"github.com/ChainSafe/isagen/generator"
	"github.com/ChainSafe/isagen/grammar"
)

// document is the serialized form shared by the JSON and YAML renderers.
type document struct {
	Rules []ruleDoc    `json:"rules" yaml:"rules"`
	Tree  *decisionDoc `json:"tree" yaml:"tree"`
}

type ruleDoc struct {
	ID       string `json:"id" yaml:"id"`
	Mnemonic string `json:"mnemonic" yaml:"mnemonic"`
	Form     string `json:"form" yaml:"form"`
	Opcode   string `json:"opcode" yaml:"opcode"`
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Mode     string `json:"mode" yaml:"mode"`
	Cycles   int    `json:"cycles" yaml:"cycles"`
	Length   int    `json:"length" yaml:"length"`
}

type decisionDoc struct {
	Depth    int      `json:"depth" yaml:"depth"`
	Prefix   []string `json:"prefix" yaml:"prefix,flow"`
	Arms     []armDoc `json:"arms" yaml:"arms"`
	Fallback string   `json:"fallback" yaml:"fallback"`
}

type armDoc struct {
	Token string       `json:"token" yaml:"token"`
	Kind  string       `json:"kind" yaml:"kind"`
	Rule  *ruleDoc     `json:"rule,omitempty" yaml:"rule,omitempty"`
	Next  *decisionDoc `json:"next,omitempty" yaml:"next,omitempty"`
}

func newDocument(result *generator.Result) document {
	doc := document{
		Rules: make([]ruleDoc, len(result.Rules)),
		Tree:  newDecisionDoc(result.Decision),
	}
	for i, r := range result.Rules {
		doc.Rules[i] = newRuleDoc(r)
	}
	return doc
}

func newRuleDoc(r emitter.Rule) ruleDoc {
	doc := ruleDoc{
		ID:       r.Record.ID,
		Mnemonic: r.Mnemonic,
		Form:     r.Form.String(),
		Opcode:   fmt.Sprintf("%02X", r.Opcode),
		Mode:     string(r.Record.Mode),
		Cycles:   r.Record.Cycles,
		Length:   r.Record.Length,
	}
	if r.Encoding != classifier.EncodingNone {
		doc.Encoding = r.Encoding.String()
	}
	return doc
}

func newDecisionDoc(d *emitter.Decision) *decisionDoc {
	doc := &decisionDoc{
		Depth:    d.Depth,
		Prefix:   tokenStrings(d.Prefix),
		Arms:     make([]armDoc, len(d.Arms)),
		Fallback: d.Fallback.Message(),
	}
	for i, arm := range d.Arms {
		a := armDoc{Token: arm.Token.String(), Kind: arm.Token.Kind.String()}
		if arm.IsTerminal() {
			rule := newRuleDoc(*arm.Rule)
			a.Rule = &rule
		} else {
			a.Next = newDecisionDoc(arm.Next)
		}
		doc.Arms[i] = a
	}
	return doc
}

func tokenStrings(tokens []grammar.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.String()
	}
	return out
}
