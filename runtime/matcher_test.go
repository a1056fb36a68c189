package runtime_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nfacc/langparser"
	"nfacc/nfa"
	"nfacc/runtime"
)

func compile(t *testing.T, src string) (*nfa.Arena, []nfa.Entry) {
	t.Helper()
	prog, err := langparser.Parse(strings.NewReader(src))
	require.NoError(t, err)
	b := nfa.NewBuilder(prog.Symbols)
	entries, err := b.BuildProgram(prog.Top)
	require.NoError(t, err)
	return b.Arena, entries
}

func TestMatchSingleConjunct(t *testing.T) {
	t.Parallel()
	arena, entries := compile(t, "a|b")

	ok, err := runtime.Match(arena, entries, []byte("a"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = runtime.Match(arena, entries, []byte("b"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = runtime.Match(arena, entries, []byte("c"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMatchCombinesPlainAndNegatedConjuncts(t *testing.T) {
	t.Parallel()
	arena, entries := compile(t, "a\n!b")

	ok, err := runtime.Match(arena, entries, []byte("a"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = runtime.Match(arena, entries, []byte("b"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMatchWithNoEntriesIsAnError(t *testing.T) {
	t.Parallel()
	_, err := runtime.Match(nfa.NewArena(), nil, []byte("x"))
	require.ErrorIs(t, err, runtime.ErrNoTopLevelAutomaton)
}

func TestMatchWildcardRepeatThenLiteral(t *testing.T) {
	t.Parallel()
	arena, entries := compile(t, ".*end")

	ok, err := runtime.Match(arena, entries, []byte("the very end"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = runtime.Match(arena, entries, []byte("the middle"))
	require.NoError(t, err)
	require.False(t, ok)
}
