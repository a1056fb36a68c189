package nfa

import (
	"fmt"
	"io"
	"strconv"
)

// WriteDot renders arena in Graphviz DOT format rooted at every entry,
// adapted from nex's graph.WriteDotGraph for this package's Transition
// shape.
//
//	$ dot -Tps nfa.dot -o nfa.ps
func WriteDot(out io.Writer, arena *Arena, entries []Entry) {
	fmt.Fprintln(out, "digraph nfa {")
	for _, s := range arena.States() {
		if s.Accept {
			fmt.Fprintf(out, "  %d[style=filled,color=green];\n", s.ID)
		}
	}
	for i, e := range entries {
		style := ""
		if e.Invert {
			style = "[color=red]"
		}
		fmt.Fprintf(out, "  entry%d[shape=box%s];\n", i, style)
		fmt.Fprintf(out, "  entry%d -> %d;\n", i, e.Start)
	}
	for _, s := range arena.States() {
		for _, t := range s.Trans {
			fmt.Fprintf(out, "  %d -> %d%s;\n", s.ID, t.Target, dotLabel(t))
		}
	}
	fmt.Fprintln(out, "}")
}

func dotLabel(t Transition) string {
	runeLabel := func(r rune) string {
		if strconv.IsPrint(r) {
			return string(r)
		}
		return fmt.Sprintf("U+%X", r)
	}
	switch t.Kind {
	case Lit:
		return fmt.Sprintf("[label=%q]", t.Literal)
	case Wildcard:
		return "[color=blue]"
	case UnicodeScalar:
		return fmt.Sprintf("[label=%q,color=purple]", runeLabel(rune(t.Scalar)))
	default:
		return ""
	}
}
