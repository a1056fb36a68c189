package nfa

import (
	"fmt"
	"strconv"

	"nfacc/ast"
)

// carry is the rightmost single character emitted by the current
// subtree that has not yet been committed to a transition, and which
// is a candidate to become the low end of a range if the next sibling
// is a MINUS. unicode marks whether it came from a %xHHHH; leaf rather
// than a plain byte.
type carry struct {
	valid   bool
	unicode bool
	scalar  int
}

// compileClass walks the range-list tree under a RANGE or NEGRANGE node
// and adds one transition per class member from start to target. It is
// shared by both callers and always performs the same final boundary
// flush for any residual carry or pending trailing MINUS; see
// DESIGN.md for why NEGRANGE needs that flush applied too.
func compileClass(a *Arena, list *ast.Node, start, target *State) {
	c, minusPending := compileRangeList(a, list, start, target)
	if c.valid {
		emitSingle(a, start, target, c)
	}
	if minusPending {
		start.AddLiteral("-", target.ID)
	}
}

// compileRangeList walks one level of the range-list cons tree and
// returns the residual carry plus whether a trailing MINUS is still
// pending so the caller (compileClass) can apply the final flush.
func compileRangeList(a *Arena, node *ast.Node, start, target *State) (carry, bool) {
	if node == nil {
		return carry{}, false
	}
	if node.Kind != ast.RangeVal {
		// A class with exactly one member: the range-list degenerates
		// to a bare leaf, matching lib.h's non-RANGE_VAL base case.
		return leafPrefix(a, start, target, node), false
	}

	var left carry
	var minusPending bool
	if node.Left.Kind == ast.RangeVal {
		left, minusPending = compileRangeList(a, node.Left, start, target)
	} else {
		left = leafPrefix(a, start, target, node.Left)
	}

	right := node.Right
	if right.Kind == ast.Minus {
		// Rule 3: remember the low end, emit nothing yet.
		return left, true
	}
	if minusPending {
		// Rule 4 + rule 5.
		return emitRangeAndTrailing(a, start, target, left, right), false
	}
	// Rule 6: no MINUS between siblings — flush left immediately, then
	// start a fresh carry from right.
	if left.valid {
		emitSingle(a, start, target, left)
	}
	return leafPrefix(a, start, target, right), false
}

// leafPrefix handles a single CHAR/UNICODE/MINUS-as-literal leaf: every
// character but the last becomes its own transition (rule 1), and the
// last becomes the returned carry. A UNICODE leaf commits nothing and
// returns its scalar as a unicode carry (rule 2).
func leafPrefix(a *Arena, start, target *State, leaf *ast.Node) carry {
	if leaf.Kind == ast.Unicode {
		scalar, err := parseUnicodeScalar(leaf.Value)
		if err != nil {
			// langparser already validates every %xHHHH; literal
			// before it reaches the builder; this would only fire on
			// a hand-built AST that skipped that validation.
			return carry{}
		}
		return carry{valid: true, unicode: true, scalar: scalar}
	}
	runes := []rune(leaf.Value)
	if len(runes) == 0 {
		return carry{}
	}
	for _, r := range runes[:len(runes)-1] {
		start.AddLiteral(string(r), target.ID)
	}
	return carry{valid: true, scalar: int(runes[len(runes)-1])}
}

// emitRangeAndTrailing implements rules 4 and 5: emit the closed
// interval [low, hi] (hi coming from right's first character or its
// sole scalar), then emit every right-hand character beyond the first
// individually, with the last becoming the new carry.
func emitRangeAndTrailing(a *Arena, start, target *State, low carry, right *ast.Node) carry {
	if right.Kind == ast.Unicode {
		hi, err := parseUnicodeScalar(right.Value)
		if err != nil {
			return carry{}
		}
		emitInterval(a, start, target, low.scalar, hi, true)
		return carry{} // a UNICODE leaf has no trailing characters.
	}

	runes := []rune(right.Value)
	if len(runes) == 0 {
		emitInterval(a, start, target, low.scalar, low.scalar, low.unicode)
		return carry{}
	}
	hi := int(runes[0])
	emitInterval(a, start, target, low.scalar, hi, low.unicode || hi > 0xFF)

	if len(runes) > 1 {
		for _, r := range runes[1 : len(runes)-1] {
			start.AddLiteral(string(r), target.ID)
		}
	}
	return carry{valid: true, scalar: int(runes[len(runes)-1])}
}

// emitInterval adds one transition per code point in [lo, hi], tagged
// UnicodeScalar when either endpoint is unicode-origin. A reversed
// bound (lo > hi) emits nothing, leaving the caller's hi character to
// surface only through the residual carry it returns.
func emitInterval(a *Arena, start, target *State, lo, hi int, unicode bool) {
	for cp := lo; cp <= hi; cp++ {
		if unicode || cp > 0xFF {
			start.AddUnicode(cp, target.ID)
		} else {
			start.AddLiteral(string(rune(cp)), target.ID)
		}
	}
}

// emitSingle commits a pending carry as its own transition (used at
// rule 6's flush point and rule 7's boundary flush).
func emitSingle(a *Arena, start, target *State, c carry) {
	if !c.valid {
		return
	}
	if c.unicode {
		start.AddUnicode(c.scalar, target.ID)
	} else {
		start.AddLiteral(string(rune(c.scalar)), target.ID)
	}
}

// parseUnicodeScalar parses a %xHHHH; literal, case-insensitive hex.
func parseUnicodeScalar(lit string) (int, error) {
	if len(lit) < 4 || lit[0] != '%' || (lit[1] != 'x' && lit[1] != 'X') || lit[len(lit)-1] != ';' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnicodeEscape, lit)
	}
	v, err := strconv.ParseUint(lit[2:len(lit)-1], 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidUnicodeEscape, lit, err)
	}
	return int(v), nil
}
