package nfa

import (
	"fmt"

	"nfacc/ast"
)

// Builder walks an ast.Node tree against an ast.SymbolTable and grows an
// Arena one fragment at a time, grounded on original_source/lib/lib.h's
// generateStates. Every case below returns a (start, end) pair except
// CONCAT and NOTREGEX, which register directly with the composer and
// return (nil, nil), matching lib.h's generateStates returning NULL for
// those two.
type Builder struct {
	Arena     *Arena
	Symbols   *ast.SymbolTable
	composer  composer
	expanding map[string]bool
}

// NewBuilder returns a builder backed by a fresh arena.
func NewBuilder(symbols *ast.SymbolTable) *Builder {
	return &Builder{
		Arena:     NewArena(),
		Symbols:   symbols,
		expanding: map[string]bool{},
	}
}

// BuildProgram builds every fragment reachable from top and returns the
// registered top-level sub-automaton list. top is the root of a parsed
// source file — typically a chain of CONCAT nodes, one conjunct per
// top-level line, but may be any expression node when the source has
// exactly one top-level line and it isn't negated.
func (b *Builder) BuildProgram(top *ast.Node) ([]Entry, error) {
	start, end, err := b.Build(top)
	if err != nil {
		return nil, err
	}
	if len(b.composer.entries) == 0 {
		// top was neither CONCAT nor NOTREGEX: register its own
		// fragment directly.
		end.Accept = true
		if err := b.composer.register(start.ID, false); err != nil {
			return nil, err
		}
	}
	return b.composer.entries, nil
}

// Build constructs the fragment for node and returns its paired
// entry/exit states. CONCAT and NOTREGEX are the two exceptions: they
// register their operand(s) as top-level sub-automata and return
// (nil, nil).
func (b *Builder) Build(node *ast.Node) (*State, *State, error) {
	if node == nil {
		return nil, nil, nil
	}

	switch node.Kind {
	case ast.Alt:
		return b.buildAlt(node)
	case ast.Seq:
		return b.buildSeq(node)
	case ast.Repeat:
		return b.buildRepeat(node)
	case ast.Paren:
		return b.buildParen(node)
	case ast.Range:
		return b.buildRange(node)
	case ast.NegRange:
		return b.buildNegRange(node)
	case ast.Substitute:
		return b.buildSubstitute(node)
	case ast.Wild:
		start, end := b.Arena.NewPair()
		start.AddWildcard(end.ID)
		return start, end, nil
	case ast.Literal:
		return b.buildLiteralPair(node)
	case ast.System:
		return b.buildSystem(node)
	case ast.Concat:
		return b.buildConcat(node)
	case ast.NotRegex:
		return b.buildNotRegex(node)
	case ast.Char:
		start, end := b.Arena.NewPair()
		start.AddLiteral(node.Value, end.ID)
		return start, end, nil
	case ast.Unicode:
		scalar, err := parseUnicodeScalar(node.Value)
		if err != nil {
			return nil, nil, err
		}
		start, end := b.Arena.NewPair()
		start.AddUnicode(scalar, end.ID)
		return start, end, nil
	case ast.Minus:
		start, end := b.Arena.NewPair()
		start.AddLiteral("-", end.ID)
		return start, end, nil
	default:
		return nil, nil, fmt.Errorf("nfa: cannot build a fragment for %s", node.Kind)
	}
}

func (b *Builder) buildAlt(node *ast.Node) (*State, *State, error) {
	start, end := b.Arena.NewPair()
	l, lend, err := b.Build(node.Left)
	if err != nil {
		return nil, nil, err
	}
	r, rend, err := b.Build(node.Right)
	if err != nil {
		return nil, nil, err
	}
	start.AddEpsilon(l.ID)
	start.AddEpsilon(r.ID)
	lend.AddEpsilon(end.ID)
	rend.AddEpsilon(end.ID)
	return start, end, nil
}

// buildSeq wires left·right and, when left is a wildcard repetition
// immediately followed by a flat literal continuation, installs a
// greedy-termination shortcut: a literal transition that lets the
// single-pass, no-backtracking matcher escape the wildcard loop the
// first time the continuation's literal text actually appears, instead
// of running the wildcard to the end of input. The shortcut
// transitions are prepended so they are considered ahead of the
// loop-back when a frontier state's transitions are scanned.
func (b *Builder) buildSeq(node *ast.Node) (*State, *State, error) {
	start, end := b.Arena.NewPair()

	isWildRepeat := node.Left.Kind == ast.Repeat &&
		(node.Left.Value == "*" || node.Left.Value == "+") &&
		node.Left.Left.Kind == ast.Wild

	var l, lend, loopEnd *State
	var err error
	if isWildRepeat {
		l, lend, loopEnd, err = b.buildWildRepeat(node.Left)
	} else {
		l, lend, err = b.Build(node.Left)
	}
	if err != nil {
		return nil, nil, err
	}

	r, rend, err := b.Build(node.Right)
	if err != nil {
		return nil, nil, err
	}

	start.AddEpsilon(l.ID)
	lend.AddEpsilon(r.ID)
	rend.AddEpsilon(end.ID)

	if isWildRepeat {
		if lit, ok := leadingLiteral(node.Right); ok && lit != "" {
			loopEnd.PrependLiteral(lit, rend.ID)
			if node.Left.Value == "*" {
				l.PrependLiteral(lit, rend.ID)
			}
		}
	}

	return start, end, nil
}

// buildRepeat wires the plain '*', '+' and '?' operators around a
// single operand fragment.
func (b *Builder) buildRepeat(node *ast.Node) (*State, *State, error) {
	start, end := b.Arena.NewPair()
	f, fend, err := b.Build(node.Left)
	if err != nil {
		return nil, nil, err
	}
	switch node.Value {
	case "*":
		start.AddEpsilon(f.ID)
		start.AddEpsilon(end.ID)
		fend.AddEpsilon(f.ID)
		fend.AddEpsilon(end.ID)
	case "+":
		start.AddEpsilon(f.ID)
		fend.AddEpsilon(f.ID)
		fend.AddEpsilon(end.ID)
	case "?":
		start.AddEpsilon(f.ID)
		start.AddEpsilon(end.ID)
		fend.AddEpsilon(end.ID)
	default:
		return nil, nil, fmt.Errorf("nfa: unknown repeat operator %q", node.Value)
	}
	return start, end, nil
}

// buildWildRepeat is buildRepeat's '*'/'+' cases specialized to a WILD
// operand, additionally returning the wildcard fragment's own exit
// state — the loop point buildSeq needs to attach the greedy-
// termination shortcut to.
func (b *Builder) buildWildRepeat(node *ast.Node) (start, end, loopEnd *State, err error) {
	start, end = b.Arena.NewPair()
	wildStart, wildEnd, err := b.Build(node.Left)
	if err != nil {
		return nil, nil, nil, err
	}
	switch node.Value {
	case "*":
		start.AddEpsilon(wildStart.ID)
		start.AddEpsilon(end.ID)
		wildEnd.AddEpsilon(wildStart.ID)
		wildEnd.AddEpsilon(end.ID)
	case "+":
		start.AddEpsilon(wildStart.ID)
		wildEnd.AddEpsilon(wildStart.ID)
		wildEnd.AddEpsilon(end.ID)
	}
	return start, end, wildEnd, nil
}

// leadingLiteral reports the exact byte string node matches when node
// reduces entirely to a flat run of literal characters (no
// alternation, class, repetition or substitution anywhere in it). Used
// only to decide whether buildSeq's greedy-termination shortcut
// applies; ok is false for anything richer, and the shortcut is simply
// skipped.
func leadingLiteral(node *ast.Node) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Kind {
	case ast.Char:
		return node.Value, true
	case ast.Seq, ast.Literal:
		l, ok := leadingLiteral(node.Left)
		if !ok {
			return "", false
		}
		r, ok := leadingLiteral(node.Right)
		if !ok {
			return "", false
		}
		return l + r, true
	case ast.Paren:
		return leadingLiteral(node.Left)
	default:
		return "", false
	}
}

func (b *Builder) buildParen(node *ast.Node) (*State, *State, error) {
	start, end := b.Arena.NewPair()
	c, cend, err := b.Build(node.Left)
	if err != nil {
		return nil, nil, err
	}
	start.AddEpsilon(c.ID)
	cend.AddEpsilon(end.ID)
	return start, end, nil
}

// buildRange compiles the class body straight from start to end.
func (b *Builder) buildRange(node *ast.Node) (*State, *State, error) {
	start, end := b.Arena.NewPair()
	compileClass(b.Arena, node.Left, start, end)
	return start, end, nil
}

// buildNegRange builds a sink state that collects every class member
// (so it is never reached on a class hit), plus a single wildcard
// transition that covers everything else straight through to end.
// The sink's transitions are added first, so they are always ordered
// ahead of the wildcard on start's transition list.
func (b *Builder) buildNegRange(node *ast.Node) (*State, *State, error) {
	start, end := b.Arena.NewPair()
	sink := b.Arena.New()
	compileClass(b.Arena, node.Left, start, sink)
	start.AddWildcard(end.ID)
	return start, end, nil
}

func (b *Builder) buildSubstitute(node *ast.Node) (*State, *State, error) {
	name := node.Left.Value
	def, ok := b.Symbols.Get(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, name)
	}
	if b.expanding[name] {
		return nil, nil, fmt.Errorf("%w: %s", ErrRecursiveSubstitute, name)
	}
	b.expanding[name] = true
	frag, fragEnd, err := b.Build(def)
	delete(b.expanding, name)
	if err != nil {
		return nil, nil, err
	}
	start, end := b.Arena.NewPair()
	start.AddEpsilon(frag.ID)
	fragEnd.AddEpsilon(end.ID)
	return start, end, nil
}

// buildLiteralPair wires a two-node LITERAL chain exactly like SEQ but
// without the wildcard-shortcut special case (lib.h's LITERAL branch
// never calls addSequenceTransitions).
func (b *Builder) buildLiteralPair(node *ast.Node) (*State, *State, error) {
	start, end := b.Arena.NewPair()
	l, lend, err := b.Build(node.Left)
	if err != nil {
		return nil, nil, err
	}
	r, rend, err := b.Build(node.Right)
	if err != nil {
		return nil, nil, err
	}
	start.AddEpsilon(l.ID)
	lend.AddEpsilon(r.ID)
	rend.AddEpsilon(end.ID)
	return start, end, nil
}

func (b *Builder) buildSystem(node *ast.Node) (*State, *State, error) {
	start, end := b.Arena.NewPair()
	r, rend, err := b.Build(node.Right)
	if err != nil {
		return nil, nil, err
	}
	start.AddEpsilon(r.ID)
	rend.AddEpsilon(end.ID)
	return start, end, nil
}

// buildConcat builds both children and registers each as an
// independent top-level sub-automaton with invert=false. A CONCAT node
// itself never yields a usable fragment to its caller.
func (b *Builder) buildConcat(node *ast.Node) (*State, *State, error) {
	l, lend, err := b.Build(node.Left)
	if err != nil {
		return nil, nil, err
	}
	r, rend, err := b.Build(node.Right)
	if err != nil {
		return nil, nil, err
	}
	if l != nil {
		lend.Accept = true
		if err := b.composer.register(l.ID, false); err != nil {
			return nil, nil, err
		}
	}
	if r != nil {
		rend.Accept = true
		if err := b.composer.register(r.ID, false); err != nil {
			return nil, nil, err
		}
	}
	return nil, nil, nil
}

// buildNotRegex registers its operand as a top-level sub-automaton with
// invert=true.
func (b *Builder) buildNotRegex(node *ast.Node) (*State, *State, error) {
	inner, innerEnd, err := b.Build(node.Left)
	if err != nil {
		return nil, nil, err
	}
	if inner != nil {
		innerEnd.Accept = true
		if err := b.composer.register(inner.ID, true); err != nil {
			return nil, nil, err
		}
	}
	return nil, nil, nil
}
