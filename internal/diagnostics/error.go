// Package diagnostics classifies and formats the fatal errors every
// phase of the pipeline can raise (§7). Every error is reported with a
// single-line tag and terminates the process with status 1 — Glide's
// core never recovers from a classified error (§7).
package diagnostics

import (
	"fmt"

	"github.com/google/uuid"
)

// Class is the failure classification §7 names.
type Class string

const (
	SyntaxError  Class = "SyntaxError"
	TypeError    Class = "TypeError"
	ArgTypeError Class = "ArgTypeError"
	RuntimeError Class = "RuntimeError"
	ImportError  Class = "ImportError"
)

// Error is a single classified, positioned diagnostic. FuncChain is
// the call chain active when the error was raised, rendered
// "file/func1/func2" per §6.
type Error struct {
	Class     Class
	File      string
	FuncChain []string
	Line      int
	Column    int
	Message   string
	// Wrapped carries the inner error an ImportError reports, so the
	// original file/position survives the wrap (§4.9).
	Wrapped *Error
}

func (e *Error) Error() string {
	chain := e.File
	for _, f := range e.FuncChain {
		chain += "/" + f
	}
	return fmt.Sprintf("%s %s @ (%d, %d): %s", e.Class, chain, e.Line, e.Column, e.Message)
}

// New builds a classified error at a source position.
func New(class Class, file string, chain []string, line, col int, format string, args ...any) *Error {
	return &Error{
		Class: class, File: file, FuncChain: chain,
		Line: line, Column: col, Message: fmt.Sprintf(format, args...),
	}
}

// NewRunID returns a fresh correlation id for one pipeline invocation
// (one CLI run, or one nested import), used only for trace logging —
// it never appears inside Error()'s contractual one-line tag.
func NewRunID() string {
	return uuid.NewString()
}

// WrapImport classifies inner as the cause of an ImportError raised
// while evaluating path, preserving inner's own file/position (§4.9).
func WrapImport(path string, inner *Error) *Error {
	return &Error{
		Class: ImportError, File: inner.File, FuncChain: inner.FuncChain,
		Line: inner.Line, Column: inner.Column,
		Message: fmt.Sprintf("while importing %q: %s", path, inner.Message),
		Wrapped: inner,
	}
}
