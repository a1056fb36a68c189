// Package runtime executes the NFA nfa.Builder produces: a single
// forward pass over the input with no backtracking, grounded on
// original_source/lib/lib.h's emitted match()/step()/
// add_epsilon_closure_to() functions.
package runtime

import (
	"errors"

	"nfacc/nfa"
)

// ErrNoTopLevelAutomaton is returned when a program built down to zero
// registered sub-automata, which nfa.Builder.BuildProgram should never
// produce — every source folds to at least one entry.
var ErrNoTopLevelAutomaton = errors.New("runtime: program has no top-level automaton")

// Match runs every entry's automaton independently against input and
// combines their verdicts with an AND-of-XORs rule: the overall result
// accepts iff every sub-automaton's (accept XOR invert) is true.
func Match(arena *nfa.Arena, entries []nfa.Entry, input []byte) (bool, error) {
	if len(entries) == 0 {
		return false, ErrNoTopLevelAutomaton
	}
	for _, e := range entries {
		accepted := runOne(arena, e.Start, input)
		if accepted == e.Invert {
			return false, nil
		}
	}
	return true, nil
}

// runOne matches input against the single automaton rooted at start,
// with no cross-automaton combination applied.
func runOne(arena *nfa.Arena, start int, input []byte) bool {
	frontier := epsilonClosure(arena, start)
	pos := 0
	for pos < len(input) {
		next, consumed, ok := step(arena, frontier, input, pos)
		if !ok {
			return false
		}
		frontier = next
		pos += consumed
	}
	for _, id := range frontier {
		if arena.State(id).Accept {
			return true
		}
	}
	return false
}

// step scans frontier in order; the first transition on the first
// frontier state that can consume input at pos wins, and every other
// frontier state is discarded without being inspected. Reproduced from
// lib.h's emitted step(), whose two nested loops both carry a
// `!consumed` guard that stops the scan dead the moment one transition
// fires.
func step(arena *nfa.Arena, frontier []int, input []byte, pos int) (next []int, consumed int, ok bool) {
	for _, id := range frontier {
		s := arena.State(id)
		for _, t := range s.Trans {
			switch t.Kind {
			case nfa.Wildcard:
				if pos < len(input) {
					return epsilonClosure(arena, t.Target), 1, true
				}
			case nfa.UnicodeScalar:
				// Compares a single input byte to the low byte of
				// t.Scalar, so any code point above U+00FF can never
				// match the byte that encodes it. Reproduced as-is
				// rather than silently corrected; see DESIGN.md.
				if pos < len(input) && input[pos] == byte(t.Scalar) {
					return epsilonClosure(arena, t.Target), 1, true
				}
			case nfa.Lit:
				m := len(t.Literal)
				if pos+m <= len(input) && string(input[pos:pos+m]) == t.Literal {
					return epsilonClosure(arena, t.Target), m, true
				}
			}
		}
	}
	return nil, 0, false
}

// epsilonClosure returns every state reachable from start by following
// zero or more epsilon transitions, in first-visited order (a DFS
// preorder, matching add_epsilon_closure_to's recursion).
func epsilonClosure(arena *nfa.Arena, start int) []int {
	seen := make(map[int]bool)
	var order []int
	var visit func(id int)
	visit = func(id int) {
		if seen[id] {
			return
		}
		seen[id] = true
		order = append(order, id)
		for _, t := range arena.State(id).Trans {
			if t.Kind == nfa.Epsilon {
				visit(t.Target)
			}
		}
	}
	visit(start)
	return order
}
