// Package generator runs the table generation pass: normalize the records,
// build the decision tree, classify and emit the match-arm IR.
package generator

import (
	"fmt"

	"github.com/ChainSafe/isagen/decision"
	"github.com/ChainSafe/isagen/emitter"
	"github.com/ChainSafe/isagen/grammar"
	"github.com/ChainSafe/isagen/isa"
	"github.com/retroenv/retrogolib/log"
)

// Result holds everything derived from one table.
type Result struct {
	Records  []isa.InstructionRecord
	Specs    []grammar.Spec
	Tree     *decision.Node
	Rules    []emitter.Rule
	Decision *emitter.Decision
}

// Generator runs generation passes.
type Generator struct {
	logger  *log.Logger
	workers int
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers sets how many goroutines build the decision tree.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// New creates a generator.
func New(logger *log.Logger, opts ...Option) *Generator {
	g := &Generator{
		logger:  logger,
		workers: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run derives the grammar, tree and rules for records. Any error aborts the
// pass; no partial result is returned.
func (g *Generator) Run(records []isa.InstructionRecord) (*Result, error) {
	specs, err := grammar.NormalizeAll(records)
	if err != nil {
		return nil, fmt.Errorf("normalizing table: %w", err)
	}
	g.logger.Debug("Normalized records", log.Int("specs", len(specs)))

	tree, err := decision.Build(specs, decision.WithWorkers(g.workers))
	if err != nil {
		return nil, fmt.Errorf("building decision tree: %w", err)
	}
	g.logger.Debug("Built decision tree",
		log.Int("mnemonics", len(tree.Children)),
		log.Int("max_lookahead", tree.MaxDepth()),
		log.Int("workers", g.workers))

	rules, err := emitter.Emit(specs)
	if err != nil {
		return nil, fmt.Errorf("emitting rules: %w", err)
	}
	g.logger.Debug("Emitted rules", log.Int("rules", len(rules)))

	d, err := emitter.EmitTree(tree)
	if err != nil {
		return nil, fmt.Errorf("emitting decision tree: %w", err)
	}

	g.logger.Info("Generated instruction grammar",
		log.Int("records", len(records)),
		log.Int("rules", len(rules)),
		log.Int("mnemonics", len(d.Arms)))

	return &Result{
		Records:  records,
		Specs:    specs,
		Tree:     tree,
		Rules:    rules,
		Decision: d,
	}, nil
}
