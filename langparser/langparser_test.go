package langparser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nfacc/ast"
	"nfacc/langparser"
)

func TestParseRuleDefinitionAndSubstitution(t *testing.T) {
	t.Parallel()
	prog, err := langparser.Parse(strings.NewReader("digit = [0-9]\n${digit}+"))
	require.NoError(t, err)

	def, ok := prog.Symbols.Get("digit")
	require.True(t, ok)
	require.Equal(t, ast.Range, def.Kind)

	require.Equal(t, ast.Repeat, prog.Top.Kind)
	require.Equal(t, "+", prog.Top.Value)
	require.Equal(t, ast.Substitute, prog.Top.Left.Kind)
	require.Equal(t, "digit", prog.Top.Left.Left.Value)
}

func TestParseMultipleTopLevelLinesFoldIntoConcat(t *testing.T) {
	t.Parallel()
	prog, err := langparser.Parse(strings.NewReader("[a-z]+\n...."))
	require.NoError(t, err)
	require.Equal(t, ast.Concat, prog.Top.Kind)
	require.Equal(t, ast.Repeat, prog.Top.Left.Kind)
	require.Equal(t, ast.Seq, prog.Top.Right.Kind)
}

func TestParseNegatedTopLevelConjunct(t *testing.T) {
	t.Parallel()
	prog, err := langparser.Parse(strings.NewReader("!foo"))
	require.NoError(t, err)
	require.Equal(t, ast.NotRegex, prog.Top.Kind)
}

func TestParseLeadingAndTrailingDashAreLiteral(t *testing.T) {
	t.Parallel()
	prog, err := langparser.Parse(strings.NewReader("[-ab]"))
	require.NoError(t, err)
	require.Equal(t, ast.Range, prog.Top.Kind)
	// a lone leading '-' never becomes a MINUS node.
	require.NotEqual(t, ast.Minus, prog.Top.Left.Kind)

	prog, err = langparser.Parse(strings.NewReader("[ab-]"))
	require.NoError(t, err)
	// nor does a trailing one: it stays part of the literal run.
	require.Equal(t, ast.Char, prog.Top.Left.Kind)
	require.Equal(t, "ab-", prog.Top.Left.Value)
}

func TestParseCommentsAndBlankLinesAreSkipped(t *testing.T) {
	t.Parallel()
	prog, err := langparser.Parse(strings.NewReader("# a comment\n\na\n"))
	require.NoError(t, err)
	require.Equal(t, ast.Char, prog.Top.Kind)
}

func TestParseUnmatchedParenIsReported(t *testing.T) {
	t.Parallel()
	_, err := langparser.Parse(strings.NewReader("(a"))
	require.ErrorIs(t, err, langparser.ErrUnmatchedLparen)
}

func TestParseInvalidUnicodeEscapeIsReported(t *testing.T) {
	t.Parallel()
	_, err := langparser.Parse(strings.NewReader("%xZZ;"))
	require.ErrorIs(t, err, langparser.ErrInvalidUnicodeEscape)
}
