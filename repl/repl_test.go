package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nfacc/langparser"
	"nfacc/nfa"
	"nfacc/repl"
)

func compile(t *testing.T, src string) (*langparser.Program, *nfa.Arena, []nfa.Entry) {
	t.Helper()
	prog, err := langparser.Parse(strings.NewReader(src))
	require.NoError(t, err)
	b := nfa.NewBuilder(prog.Symbols)
	entries, err := b.BuildProgram(prog.Top)
	require.NoError(t, err)
	return prog, b.Arena, entries
}

func TestRunBatchPrintsAVerdictPerLine(t *testing.T) {
	t.Parallel()
	prog, arena, entries := compile(t, "a|b")

	input := strings.NewReader("a\nc\nb\n")
	var out bytes.Buffer
	err := repl.Run(prog, arena, entries, input, &out, &out)
	require.NoError(t, err)
	require.Equal(t, "ACCEPTS\nREJECTS\nACCEPTS\n", out.String())
}

func TestRunBatchHonorsPrefilterBeforeFullMatch(t *testing.T) {
	t.Parallel()
	prog, arena, entries := compile(t, ".*end")

	input := strings.NewReader("the middle\nthe end\n")
	var out bytes.Buffer
	err := repl.Run(prog, arena, entries, input, &out, &out)
	require.NoError(t, err)
	require.Equal(t, "REJECTS\nACCEPTS\n", out.String())
}
