package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nfacc/ast"
)

func TestSymbolTableShadowing(t *testing.T) {
	t.Parallel()
	var tab ast.SymbolTable

	require.False(t, tab.Has("digit"))

	first := ast.Leaf(ast.Char, "1")
	tab.Define("digit", first)
	node, ok := tab.Get("digit")
	require.True(t, ok)
	require.Same(t, first, node)

	second := ast.Leaf(ast.Char, "2")
	tab.Define("digit", second)
	node, ok = tab.Get("digit")
	require.True(t, ok)
	require.Same(t, second, node, "the most recent definition shadows the earlier one")

	require.Equal(t, []string{"digit", "digit"}, tab.Names())
}

func TestNodeDump(t *testing.T) {
	t.Parallel()
	n := ast.New(ast.Alt, "", ast.Leaf(ast.Char, "a"), ast.Leaf(ast.Char, "b"))
	dump := n.Dump()
	require.Contains(t, dump, "ALT")
	require.Contains(t, dump, "CHAR -a")
	require.Contains(t, dump, "CHAR -b")
}
