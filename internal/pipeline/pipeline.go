// Package pipeline threads a single source file through the lex and
// parse phases, producing the ast.Node tree the checker and evaluator
// consume. It is reused both for the program named on the command
// line and for every file `import()` pulls in at runtime, so the two
// entry points can never drift (§4.9).
package pipeline

import (
	"fmt"
	"os"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
	"github.com/dibsonthis/Glide/internal/parser"
)

// Context is the accumulated state of one file's lex+parse pass.
// RunID is a fresh correlation id per Context (§1 ambient logging):
// cmd/glide logs the main program's id once, and every nested import
// gets an id of its own; it never affects error formatting.
type Context struct {
	File    string
	Source  string
	Program *ast.Node
	Errors  []*diagnostics.Error
	RunID   string
}

// Run reads file from disk and parses it into a Context. A read
// failure is returned as a plain wrapped error, not a diagnostic; the
// caller decides how to classify and report it.
func Run(file string) (*Context, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return RunSource(file, string(src)), nil
}

// RunSource parses already-loaded source text, useful for the
// builtins bootstrap (embedded, not read from the filesystem) and for
// tests that don't want to touch disk.
func RunSource(file, src string) *Context {
	prog, errs := parser.Parse(file, src)
	return &Context{File: file, Source: src, Program: prog, Errors: errs, RunID: diagnostics.NewRunID()}
}

// OK reports whether the parse phase produced no diagnostics.
func (c *Context) OK() bool { return len(c.Errors) == 0 }
