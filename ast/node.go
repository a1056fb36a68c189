// Package ast defines the tree the nfa builder walks, grounded on the
// original ASTNode/Symbol structures in original_source/lib/AST.h and
// lib/Symbol.h.
package ast

import (
	"fmt"
	"strings"
)

// Kind discriminates an AST node the way the original C code used a
// node->type string; we use a small enum instead of string comparisons.
type Kind int

const (
	Alt          Kind = iota // A|B
	Seq                      // A·B
	Repeat                   // A* A+ A?, operator in Value
	Paren                    // (A)
	Range                    // [...]
	NegRange                 // [^...]
	Substitute               // ${name}
	Wild                     // .
	Literal                  // two-node literal pair (left, right)
	System                   // wraps a single right child
	Concat                   // top-level conjunction: left CONCAT right
	NotRegex                 // top-level negation: !left
	RangeVal                 // range-list cons cell
	Minus                    // literal '-' promoted to a binary-tree marker
	Unicode                  // %xHHHH;
	ID                       // bare identifier, used under Substitute
	Char                     // leaf: raw byte string in Value
)

func (k Kind) String() string {
	switch k {
	case Alt:
		return "ALT"
	case Seq:
		return "SEQ"
	case Repeat:
		return "REPEAT"
	case Paren:
		return "PAREN"
	case Range:
		return "RANGE"
	case NegRange:
		return "NEGRANGE"
	case Substitute:
		return "SUBSTITUTE"
	case Wild:
		return "WILD"
	case Literal:
		return "LITERAL"
	case System:
		return "SYSTEM"
	case Concat:
		return "CONCAT"
	case NotRegex:
		return "NOTREGEX"
	case RangeVal:
		return "RANGE_VAL"
	case Minus:
		return "MINUS"
	case Unicode:
		return "UNICODE"
	case ID:
		return "ID"
	case Char:
		return "CHAR"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is an immutable-after-construction AST node. Only Kind is
// required; which of Value/Left/Right are populated depends on Kind.
type Node struct {
	Kind  Kind
	Value string
	Left  *Node
	Right *Node
}

// New builds a node. Nodes are never mutated after construction, so
// there is no separate builder type.
func New(kind Kind, value string, left, right *Node) *Node {
	return &Node{Kind: kind, Value: value, Left: left, Right: right}
}

// Leaf builds a childless value-bearing node (CHAR, ID, UNICODE, MINUS).
func Leaf(kind Kind, value string) *Node {
	return New(kind, value, nil, nil)
}

// Dump renders the tree the way original_source/lib/AST.h's printAST
// does, for debugging and for tests that want to assert shape without
// reaching into private fields.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("|-")
	b.WriteString(n.Kind.String())
	if n.Value != "" {
		b.WriteString(" -")
		b.WriteString(n.Value)
	}
	b.WriteByte('\n')
	n.Left.dump(b, depth+1)
	n.Right.dump(b, depth+1)
}
