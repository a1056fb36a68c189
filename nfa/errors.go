package nfa

import "errors"

// The error taxonomy that belongs to the builder (as opposed to the
// ones langparser raises while reading source text).
var (
	// ErrUnknownSymbol: a SUBSTITUTE node names a rule absent from the
	// symbol table. Fatal; the builder stops.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrCapacityExceeded: more than maxSubNFAs top-level sub-automata
	// were registered. The original C silently drops the overflow
	// (original_source/lib/lib.h's MAX_SUBNFAS); this implementation
	// surfaces it as a build error instead.
	ErrCapacityExceeded = errors.New("top-level sub-automaton capacity exceeded")

	// ErrRecursiveSubstitute: a ${name} expansion is already in
	// progress while expanding name again. lib.h would simply recurse
	// until the C call stack overflowed; this guard turns that crash
	// into a reported build error instead.
	ErrRecursiveSubstitute = errors.New("recursive rule substitution")

	// ErrInvalidUnicodeEscape: a UNICODE leaf's value isn't a well-formed
	// %xHHHH; literal. langparser validates every escape it parses, so
	// this only fires against a hand-built AST that skipped that check.
	ErrInvalidUnicodeEscape = errors.New("invalid unicode escape")
)

// maxSubNFAs mirrors lib.h's MAX_SUBNFAS.
const maxSubNFAs = 100
