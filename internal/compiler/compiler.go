// Package compiler defines the opaque "parse source into an AST"
// boundary this driver consumes and never implements: the lexer,
// sequencer, parser and IR stages of the language's actual compiler
// pipeline are out-of-scope external collaborators (spec.md §1). This
// package is that contractual interface plus a minimal stub
// implementation sufficient to drive the format/minify/parse commands
// without a real frontend attached.
package compiler

import "fmt"

// Diagnostic is one parser-reported problem, carrying a 1-based source
// position.
type Diagnostic struct {
	Message string
	Line    int
	Column  int
}

// Node is a generic, language-agnostic syntax tree node. A real
// frontend would return a richly-typed AST; this stub's Frontend
// returns a single leaf node wrapping the unparsed source text, which
// is all the format pipeline needs when no language-aware
// transformation is available.
type Node struct {
	Kind     string
	Text     string
	Line     int
	Column   int
	Children []*Node
}

// Program is the result of parsing one source file.
type Program struct {
	Filename    string
	Root        *Node
	Diagnostics []Diagnostic
}

// HasErrors reports whether Diagnostics contains any entry.
func (p *Program) HasErrors() bool {
	return len(p.Diagnostics) > 0
}

// Frontend parses source text into a Program. Implementations are free
// to attach a real compiler pipeline; StubFrontend is the only
// implementation this repository ships.
type Frontend interface {
	Parse(filename string, src []byte) (*Program, error)
}

// StubFrontend is a Frontend that performs no real lexing or parsing:
// it wraps the entire input as a single "SourceFile" leaf node. It lets
// the format pipeline, and the `impl parse` subcommand, exercise the
// Frontend seam end-to-end while the real language frontend remains an
// external collaborator.
type StubFrontend struct{}

// NewStubFrontend returns a Frontend with no language awareness.
func NewStubFrontend() *StubFrontend {
	return &StubFrontend{}
}

// Parse returns a single root node containing the raw source text. It
// fails only when filename is empty; src is never inspected for errors.
func (StubFrontend) Parse(filename string, src []byte) (*Program, error) {
	if filename == "" {
		return nil, fmt.Errorf("compiler: empty filename")
	}

	return &Program{
		Filename: filename,
		Root: &Node{
			Kind: "SourceFile",
			Text: string(src),
			Line: 1, Column: 1,
		},
	}, nil
}
