package nfa_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nfacc/ast"
	"nfacc/langparser"
	"nfacc/nfa"
	"nfacc/runtime"
)

// compile parses src as a whole program and builds its NFA, returning
// a ready-to-use matcher closure for table-driven scenarios below.
func compile(t *testing.T, src string) func(input string) bool {
	t.Helper()
	prog, err := langparser.Parse(strings.NewReader(src))
	require.NoError(t, err)

	b := nfa.NewBuilder(prog.Symbols)
	entries, err := b.BuildProgram(prog.Top)
	require.NoError(t, err)

	return func(input string) bool {
		ok, err := runtime.Match(b.Arena, entries, []byte(input))
		require.NoError(t, err)
		return ok
	}
}

func TestSeedScenarios(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		input  string
		accept bool
	}{
		{"alternation a", "a|b", "a", true},
		{"alternation b", "a|b", "b", true},
		{"alternation miss", "a|b", "c", false},
		{"grouped repeat", "(ab)+", "ababab", true},
		{"grouped repeat odd tail", "(ab)+", "ababa", false},
		{"mixed class hit", "[a-c0-2]", "b", true},
		{"mixed class miss", "[a-c0-2]", "9", false},
		{"negated class hit", "[^xyz]", "a", true},
		{"negated class miss", "[^xyz]", "y", false},
		{"unicode escape", "%x0041;", "A", true},
		{"wildcard then literal", ".*end", "the end", true},
		{"wildcard then literal no tail", ".*end", "the middle", false},
		{"conjunction", "[a-z]+\n....", "abcd", true},
		{"conjunction length mismatch", "[a-z]+\n....", "abc", false},
		{"negation accepts non-match", "!foo", "bar", true},
		{"negation rejects match", "!foo", "foo", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			match := compile(t, c.src)
			require.Equal(t, c.accept, match(c.input))
		})
	}
}

func TestNamedRuleSubstitution(t *testing.T) {
	match := compile(t, "digit=[0-9]\n${digit}+")
	require.True(t, match("42"))
	require.False(t, match("4a"))
}

func TestUnknownSymbolIsFatal(t *testing.T) {
	prog, err := langparser.Parse(strings.NewReader("${missing}"))
	require.NoError(t, err)
	b := nfa.NewBuilder(prog.Symbols)
	_, err = b.BuildProgram(prog.Top)
	require.ErrorIs(t, err, nfa.ErrUnknownSymbol)
}

func TestCapacityExceededIsAFatalBuildError(t *testing.T) {
	symbols := &ast.SymbolTable{}
	top := ast.Leaf(ast.Char, "a")
	for i := 0; i < 150; i++ {
		top = ast.New(ast.Concat, "", top, ast.Leaf(ast.Char, "a"))
	}
	b := nfa.NewBuilder(symbols)
	_, err := b.BuildProgram(top)
	require.ErrorIs(t, err, nfa.ErrCapacityExceeded)
}

func TestEmptyClassAcceptsNothing(t *testing.T) {
	match := compile(t, "[]")
	require.False(t, match(""))
	require.False(t, match("a"))
}

func TestTrailingDashIsLiteral(t *testing.T) {
	match := compile(t, "[a-]")
	require.True(t, match("a"))
	require.True(t, match("-"))
	require.False(t, match("b"))
}

func TestReversedRangeDegeneratesToItsHighCharacter(t *testing.T) {
	match := compile(t, "[z-a]")
	require.True(t, match("a"))
	require.False(t, match("z"))
	require.False(t, match("m"))
}
