// Package decision groups operand grammars into a decision tree keyed by
// expected tokens. A parser walks the tree one token at a time and stops as
// soon as a single instruction variant remains.
package decision

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ChainSafe/isagen/common/lifo"
	"github.com/ChainSafe/isagen/grammar"
	"github.com/ChainSafe/isagen/isa"
	"golang.org/x/sync/errgroup"
)

// Node is either a leaf holding exactly one spec or a branch mapping the
// token at index Depth to child nodes. For a leaf, Depth is the number of
// tokens consumed before it was selected.
type Node struct {
	Depth    int
	Spec     *grammar.Spec
	Children map[grammar.Token]*Node
}

// IsLeaf reports whether the node selects a single spec.
func (n *Node) IsLeaf() bool {
	return n.Spec != nil
}

// Keys returns the branch keys in token order.
func (n *Node) Keys() []grammar.Token {
	keys := make([]grammar.Token, 0, len(n.Children))
	for k := range n.Children {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, grammar.Token.Compare)
	return keys
}

// Lookup follows tokens from n and returns the node reached.
func (n *Node) Lookup(tokens ...grammar.Token) (*Node, bool) {
	cur := n
	for _, t := range tokens {
		if cur.IsLeaf() {
			return nil, false
		}
		next, ok := cur.Children[t]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Path is a root-to-leaf walk: the tokens consumed and the spec selected.
type Path struct {
	Tokens []grammar.Token
	Spec   *grammar.Spec
}

func (p Path) String() string {
	parts := make([]string, len(p.Tokens))
	for i, t := range p.Tokens {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s => %02X", strings.Join(parts, " "), p.Spec.Opcode())
}

// Paths returns every root-to-leaf path in depth-first key order.
func (n *Node) Paths() []Path {
	var (
		paths []Path
		stack lifo.Stack[grammar.Token]
	)
	var visit func(node *Node)
	visit = func(node *Node) {
		for _, key := range node.Keys() {
			child := node.Children[key]
			stack.Push(key)
			if child.IsLeaf() {
				paths = append(paths, Path{Tokens: stack.Slice(), Spec: child.Spec})
			} else {
				visit(child)
			}
			stack.Pop()
		}
	}
	if n.IsLeaf() {
		return []Path{{Spec: n.Spec}}
	}
	visit(n)
	return paths
}

// Leaves returns the leaf specs in depth-first key order.
func (n *Node) Leaves() []*grammar.Spec {
	paths := n.Paths()
	specs := make([]*grammar.Spec, len(paths))
	for i, p := range paths {
		specs[i] = p.Spec
	}
	return specs
}

// MaxDepth returns the longest lookahead, in tokens, needed to reach a leaf.
func (n *Node) MaxDepth() int {
	longest := 0
	for _, p := range n.Paths() {
		longest = max(longest, len(p.Tokens))
	}
	return longest
}

type options struct {
	workers int
}

// Option configures Build.
type Option func(*options)

// WithWorkers builds the first-token partitions on up to n goroutines. Each
// partition is independent, so the result matches the serial build.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Build groups specs into a decision tree. The root is always a branch keyed
// by mnemonic. Two specs with identical expected tokens are a table integrity
// error.
func Build(specs []grammar.Spec, opts ...Option) (*Node, error) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers > 1 {
		return buildParallel(specs, o.workers)
	}
	return build(specs, 0)
}

func build(specs []grammar.Spec, depth int) (*Node, error) {
	keys, groups := partition(specs, depth)
	node := &Node{Depth: depth, Children: make(map[grammar.Token]*Node, len(keys))}
	for _, key := range keys {
		child, err := buildGroup(key, groups[key], depth)
		if err != nil {
			return nil, err
		}
		node.Children[key] = child
	}
	return node, nil
}

func buildGroup(key grammar.Token, group []grammar.Spec, depth int) (*Node, error) {
	if len(group) == 1 {
		return &Node{Depth: depth + 1, Spec: &group[0]}, nil
	}
	if key == grammar.End {
		return nil, ambiguity(group)
	}
	return build(group, depth+1)
}

func buildParallel(specs []grammar.Spec, workers int) (*Node, error) {
	keys, groups := partition(specs, 0)
	children := make([]*Node, len(keys))
	errs := make([]error, len(keys))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, key := range keys {
		g.Go(func() error {
			children[i], errs[i] = buildGroup(key, groups[key], 0)
			return errs[i]
		})
	}
	if err := g.Wait(); err != nil {
		// Wait returns whichever partition failed first in time. Report the
		// first failure in key order so errors are reproducible.
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
	}

	node := &Node{Children: make(map[grammar.Token]*Node, len(keys))}
	for i, key := range keys {
		node.Children[key] = children[i]
	}
	return node, nil
}

// partition splits specs by the token at depth. Keys come back sorted.
func partition(specs []grammar.Spec, depth int) ([]grammar.Token, map[grammar.Token][]grammar.Spec) {
	groups := make(map[grammar.Token][]grammar.Spec)
	for _, s := range specs {
		key := grammar.End
		if depth < len(s.Expected) {
			key = s.Expected[depth]
		}
		groups[key] = append(groups[key], s)
	}
	keys := make([]grammar.Token, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, grammar.Token.Compare)
	return keys, groups
}

func ambiguity(group []grammar.Spec) error {
	records := make([]isa.InstructionRecord, len(group))
	for i, s := range group {
		records[i] = s.Record
	}
	return &isa.TableIntegrityError{
		Reason:  fmt.Sprintf("identical expected tokens [%s]", strings.Join(group[0].ExpectedStrings(), " ")),
		Records: records,
	}
}
