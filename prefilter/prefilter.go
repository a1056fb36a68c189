// Package prefilter is a fast-reject accelerator that sits in front of
// runtime.Match: for any top-level conjunct whose AST provably requires
// an exact literal substring to appear somewhere in the input, it uses
// github.com/coregx/ahocorasick to check that substring's presence
// before the full NFA pass runs. It never changes a verdict, only
// skips work — grounded on nex's domain (regex compilation) but
// adapted to a use nex never needed, since nex never accelerates
// matching itself.
package prefilter

import (
	"fmt"

	"github.com/coregx/ahocorasick"

	"nfacc/ast"
)

// Conjunct is one top-level sub-expression together with the invert
// flag it would be registered under by nfa.Builder.
type Conjunct struct {
	Node   *ast.Node
	Invert bool
}

// Conjuncts walks top the same way nfa.Builder's CONCAT/NOTREGEX
// handling does, without building any states, to recover the original
// per-conjunct AST nodes.
func Conjuncts(top *ast.Node) []Conjunct {
	var out []Conjunct
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case ast.Concat:
			walk(n.Left)
			walk(n.Right)
		case ast.NotRegex:
			out = append(out, Conjunct{Node: n.Left, Invert: true})
		default:
			out = append(out, Conjunct{Node: n, Invert: false})
		}
	}
	walk(top)
	return out
}

// RequiredLiteral reports an exact byte string that must appear in any
// input node accepts, when one can be proven from the shape of node
// alone. exact additionally reports that every input node accepts is
// that string and nothing more; only then may SEQ join its two sides'
// literals into one. It is deliberately conservative: ALT, RANGE,
// NEGRANGE, WILD, SUBSTITUTE and REPEAT's '*'/'?' forms can all match
// without any particular literal present, so none of those contribute
// one, and a SEQ with such a side still requires the other side's.
func RequiredLiteral(node *ast.Node) (lit string, exact, ok bool) {
	if node == nil {
		return "", false, false
	}
	switch node.Kind {
	case ast.Char:
		return node.Value, true, true
	case ast.Seq, ast.Literal:
		l, lexact, lok := RequiredLiteral(node.Left)
		r, rexact, rok := RequiredLiteral(node.Right)
		switch {
		case lok && rok && lexact && rexact:
			return l + r, true, true
		case lok && (!rok || len(l) >= len(r)):
			return l, false, true
		case rok:
			return r, false, true
		}
		return "", false, false
	case ast.Paren:
		return RequiredLiteral(node.Left)
	case ast.Repeat:
		if node.Value == "+" {
			lit, _, ok := RequiredLiteral(node.Left)
			return lit, false, ok
		}
		return "", false, false
	default:
		return "", false, false
	}
}

// Filter holds one single-pattern Aho-Corasick automaton per provably
// required literal across a program's non-inverted top-level
// conjuncts.
type Filter struct {
	required []*ahocorasick.Automaton
}

// Build constructs a Filter for a parsed program's top-level tree. It
// never fails on a program that simply has no provable literals — it
// just ends up with nothing to check, and CanReject always returns
// false for it.
func Build(top *ast.Node) (*Filter, error) {
	f := &Filter{}
	for _, c := range Conjuncts(top) {
		if c.Invert {
			continue
		}
		lit, _, ok := RequiredLiteral(c.Node)
		if !ok || lit == "" {
			continue
		}
		builder := ahocorasick.NewBuilder()
		builder.AddPattern([]byte(lit))
		auto, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("prefilter: building automaton for %q: %w", lit, err)
		}
		f.required = append(f.required, auto)
	}
	return f, nil
}

// CanReject reports whether input is guaranteed to be rejected by the
// full matcher: true means at least one literal every accepting input
// must contain is absent. False is not a promise of acceptance, only
// that the short cut doesn't apply and runtime.Match must run.
func (f *Filter) CanReject(input []byte) bool {
	for _, auto := range f.required {
		if !auto.IsMatch(input) {
			return true
		}
	}
	return false
}
