// Package nfa is the core of nfacc: it walks an ast.Node tree and a
// ast.SymbolTable and produces a Thompson-style NFA, grounded on
// original_source/lib/lib.h's State/Transition arena and shaped after
// nex's graph.go Node/Edge split.
package nfa

// Kind discriminates a Transition the way original_source/lib/lib.h's
// `enum TYPE` does (TYPE_DEFAULT/TYPE_WILDCARD/TYPE_UNICODE), plus an
// explicit epsilon kind instead of a nil match string.
type Kind int

const (
	Epsilon Kind = iota
	Lit
	Wildcard
	UnicodeScalar
)

// Transition is one out-edge of a State. Target is a state id into the
// owning Arena rather than a pointer, so the arena can be walked and
// freed as a unit.
type Transition struct {
	Kind    Kind
	Literal string // Lit: the exact byte string to match.
	Scalar  int    // UnicodeScalar: the code point. A low-byte-compare caveat applies at exec time, not here; see runtime.
	Target  int
}

// State is a uniquely numbered NFA node. Pair names the partner
// entry/exit state of the fragment that introduced it; -1 means
// unpaired (never the case for a fragment-returning build, always the
// case for NEGRANGE's sink).
type State struct {
	ID      int
	Accept  bool
	Trans   []Transition
	Pair    int
}

// Arena owns every State allocated during a build. Its lifetime spans
// construction through execution/emission.
type Arena struct {
	states []*State
}

// NewArena returns an empty, ready-to-use arena.
func NewArena() *Arena {
	return &Arena{}
}

// New allocates a fresh, unpaired state.
func (a *Arena) New() *State {
	s := &State{ID: len(a.states), Pair: -1}
	a.states = append(a.states, s)
	return s
}

// NewPair allocates a (start, end) fragment boundary and pairs them, as
// every builder rule needs for its returned fragment.
func (a *Arena) NewPair() (start, end *State) {
	start, end = a.New(), a.New()
	start.Pair = end.ID
	end.Pair = start.ID
	return start, end
}

// State looks up a state by id.
func (a *Arena) State(id int) *State {
	return a.states[id]
}

// States returns every allocated state, in allocation order (dense,
// id-ordered).
func (a *Arena) States() []*State {
	return a.states
}

// Len reports how many states have been allocated.
func (a *Arena) Len() int {
	return len(a.states)
}

// AddEpsilon, AddLiteral, AddWildcard and AddUnicode append a
// transition to from's out-edge list in construction order (FIFO); see
// DESIGN.md for why FIFO-append plus the two explicit Prepend call
// sites below satisfy the ordering this implementation needs, without
// reproducing the original C code's LIFO-prepend-by-default
// convention.
func (s *State) AddEpsilon(target int) {
	s.Trans = append(s.Trans, Transition{Kind: Epsilon, Target: target})
}

func (s *State) AddLiteral(lit string, target int) {
	s.Trans = append(s.Trans, Transition{Kind: Lit, Literal: lit, Target: target})
}

func (s *State) AddWildcard(target int) {
	s.Trans = append(s.Trans, Transition{Kind: Wildcard, Target: target})
}

func (s *State) AddUnicode(scalar int, target int) {
	s.Trans = append(s.Trans, Transition{Kind: UnicodeScalar, Scalar: scalar, Target: target})
}

// PrependLiteral inserts a literal transition at the front of s's
// out-edge list. Used only by buildSeq's wildcard-repeat-then-literal
// shortcut, where the literal must be tried before an already-installed
// wildcard self-loop.
func (s *State) PrependLiteral(lit string, target int) {
	s.Trans = append([]Transition{{Kind: Lit, Literal: lit, Target: target}}, s.Trans...)
}
