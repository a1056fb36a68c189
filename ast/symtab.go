package ast

// SymbolTable maps a rule name to the AST of its definition. It mirrors
// original_source/lib/Symbol.h's singly-linked list: insertion order is
// preserved and a later Define of the same name shadows the earlier one
// on lookup (Get walks from the most recent head, exactly like the C
// checkSymbol/getSymbol scan), rather than erroring.
type SymbolTable struct {
	head *symbol
}

type symbol struct {
	name string
	node *Node
	next *symbol
}

// Define inserts name -> node at the head of the table.
func (t *SymbolTable) Define(name string, node *Node) {
	t.head = &symbol{name: name, node: node, next: t.head}
}

// Has reports whether name has a definition.
func (t *SymbolTable) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Get looks up name, returning its AST and whether it was found.
func (t *SymbolTable) Get(name string) (*Node, bool) {
	for s := t.head; s != nil; s = s.next {
		if s.name == name {
			return s.node, true
		}
	}
	return nil, false
}

// Names returns defined names, most recently defined first.
func (t *SymbolTable) Names() []string {
	var names []string
	for s := t.head; s != nil; s = s.next {
		names = append(names, s.name)
	}
	return names
}
