// Package codegen emits a standalone Go matcher program: a single main
// package with no dependency on nfacc itself, embedding one compiled
// program's states and top-level entries as plain data and a copy of
// runtime's step/epsilon-closure loop.
// Grounded on nex/nex.go's Process/formatCode pipeline: render a
// template, then run it through go/format and golang.org/x/tools/imports
// exactly as nex does for its generated lexers.
package codegen

import (
	"bytes"
	_ "embed"
	"fmt"
	"go/format"
	"text/template"

	"golang.org/x/tools/imports"

	"nfacc/nfa"
)

//go:embed templates/matcher.go.tmpl
var matcherTemplate string

var tmpl = template.Must(template.New("matcher").Parse(matcherTemplate))

// templateState and templateTransition mirror nfa.State/nfa.Transition
// but with a KindConst method so the template can emit the generated
// program's own transKind constant names instead of nfa package values
// the generated program has no access to.
type templateTransition struct {
	Literal string
	Scalar  int
	Target  int
	kind    nfa.Kind
}

func (t templateTransition) KindConst() string {
	switch t.kind {
	case nfa.Epsilon:
		return "transEpsilon"
	case nfa.Wildcard:
		return "transWildcard"
	case nfa.UnicodeScalar:
		return "transUnicode"
	default:
		return "transLiteral"
	}
}

type templateState struct {
	Accept bool
	Trans  []templateTransition
}

type templateEntry struct {
	Start  int
	Invert bool
}

type templateData struct {
	States  []templateState
	Entries []templateEntry
}

// Generate renders a complete, independently runnable Go source file
// implementing arena/entries, formatted and import-resolved the same
// way nex's Process does for its own generated lexers.
func Generate(arena *nfa.Arena, entries []nfa.Entry) ([]byte, error) {
	data := templateData{}
	for _, s := range arena.States() {
		ts := templateState{Accept: s.Accept}
		for _, t := range s.Trans {
			ts.Trans = append(ts.Trans, templateTransition{
				Literal: t.Literal,
				Scalar:  t.Scalar,
				Target:  t.Target,
				kind:    t.Kind,
			})
		}
		data.States = append(data.States, ts)
	}
	for _, e := range entries {
		data.Entries = append(data.Entries, templateEntry{Start: e.Start, Invert: e.Invert})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("codegen: rendering template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("codegen: formatting generated source: %w", err)
	}
	return imports.Process("matcher.go", src, &imports.Options{
		TabWidth:  8,
		TabIndent: true,
		Comments:  true,
		Fragment:  true,
	})
}
