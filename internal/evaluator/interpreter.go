// Package evaluator walks the ast.Node tree produced by the parser (or
// reconstructed from a cached import) and executes it: the concrete
// half of the spec's "abstract interpreter, same tree, two modes"
// design (the type checker is the other half, in internal/checker).
package evaluator

import (
	"path/filepath"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
)

// MaxCallDepth bounds recursion so a runaway Glide program raises a
// classified RuntimeError instead of crashing the host process with a
// Go stack overflow.
const MaxCallDepth = 2000

// signalKind marks a control-flow escape propagating up through Eval's
// recursive calls: a `ret`, `break`, or `continue` that hasn't yet
// reached the construct that catches it (function body, loop).
type signalKind int

const (
	signalNone signalKind = iota
	signalReturn
	signalBreak
	signalContinue
)

type signal struct {
	kind  signalKind
	value *ast.Node
}

// Interpreter holds the state threaded through one program's
// evaluation: its source file (for diagnostics and relative import
// resolution), the active call chain (for the "file/func1/func2"
// diagnostic tag), and the cache of already-imported modules.
type Interpreter struct {
	File     string
	Global   *Environment
	chain    []string
	depth    int
	imports  map[string]*ast.Node
	BaseDir  string // directory imports resolve relative paths against
}

// New builds an Interpreter rooted at file, with env as the global
// scope (already seeded with the builtins bootstrap).
func New(file string, env *Environment) *Interpreter {
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	return &Interpreter{
		File:    file,
		Global:  env,
		imports: map[string]*ast.Node{},
		BaseDir: filepath.Dir(abs),
	}
}

func (it *Interpreter) pushFrame(name string) (func(), *diagnostics.Error) {
	it.depth++
	if it.depth > MaxCallDepth {
		it.depth--
		return func() {}, it.errf(diagnostics.RuntimeError, 0, 0, "maximum call depth (%d) exceeded", MaxCallDepth)
	}
	it.chain = append(it.chain, name)
	return func() {
		it.chain = it.chain[:len(it.chain)-1]
		it.depth--
	}, nil
}

func (it *Interpreter) errf(class diagnostics.Class, line, col int, format string, args ...any) *diagnostics.Error {
	chain := append([]string(nil), it.chain...)
	return diagnostics.New(class, it.File, chain, line, col, format, args...)
}

// Eval dispatches on n.Kind, threading env (the active scope) through
// every recursive call. It returns the resulting value, any in-flight
// control-flow signal (return/break/continue), and a classified error
// if evaluation failed.
func (it *Interpreter) Eval(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	if n == nil {
		return ast.MakeEmpty(ast.Pos{}), signal{}, nil
	}
	switch n.Kind {
	case ast.Int, ast.Float, ast.Bool, ast.String, ast.Empty, ast.Any, ast.Type:
		return n, signal{}, nil
	case ast.Id:
		return it.evalIdentifier(n, env)
	case ast.List:
		return it.evalList(n, env)
	case ast.Object:
		return it.evalObject(n, env)
	case ast.Function:
		return it.evalFunctionLiteral(n, env)
	case ast.CommaList:
		return it.evalCommaList(n, env)
	case ast.Range:
		return it.evalRange(n, env)
	case ast.Copy:
		return it.evalCopy(n, env)
	case ast.Op, ast.PartialOp:
		return it.evalOp(n, env)
	case ast.Block:
		return it.evalBlock(n, env)
	case ast.FuncCall:
		return it.evalFuncCall(n, env)
	case ast.IfStatement:
		return it.evalIfStatement(n, env)
	case ast.IfBlock:
		return it.evalIfBlock(n, env)
	case ast.MatchBlock:
		return it.evalMatchBlock(n, env)
	case ast.ForLoop:
		return it.evalForLoop(n, env)
	case ast.WhileLoop:
		return it.evalWhileLoop(n, env)
	case ast.Return:
		val, sig, err := it.evalOrEmpty(n.Left, env)
		if err != nil || sig.kind != signalNone {
			return val, sig, err
		}
		return val, signal{kind: signalReturn, value: val}, nil
	case ast.Break:
		return ast.MakeEmpty(ast.Pos{Line: n.Line, Column: n.Column}), signal{kind: signalBreak}, nil
	case ast.Continue:
		return ast.MakeEmpty(ast.Pos{Line: n.Line, Column: n.Column}), signal{kind: signalContinue}, nil
	case ast.Error:
		msg := "error"
		if len(n.Errors) > 0 {
			msg = n.Errors[0]
		}
		return nil, signal{}, it.errf(diagnostics.SyntaxError, n.Line, n.Column, "%s", msg)
	default:
		return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "cannot evaluate node of kind %s", n.Kind)
	}
}

func (it *Interpreter) evalOrEmpty(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	if n == nil {
		return ast.MakeEmpty(ast.Pos{}), signal{}, nil
	}
	return it.Eval(n, env)
}

func (it *Interpreter) evalIdentifier(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	if val, ok := env.Get(n.Name); ok {
		return val, signal{}, nil
	}
	return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "undefined symbol %q", n.Name)
}

func (it *Interpreter) evalCommaList(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	out := make([]*ast.Node, len(n.Elements))
	for i, e := range n.Elements {
		v, sig, err := it.Eval(e, env)
		if err != nil || sig.kind != signalNone {
			return v, sig, err
		}
		out[i] = v
	}
	return ast.MakeCommaList(ast.Pos{Line: n.Line, Column: n.Column}, out), signal{}, nil
}

func (it *Interpreter) evalBlock(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	var last *ast.Node = ast.MakeEmpty(ast.Pos{Line: n.Line, Column: n.Column})
	for _, stmt := range n.Elements {
		val, sig, err := it.Eval(stmt, env)
		if err != nil {
			return nil, signal{}, err
		}
		if sig.kind != signalNone {
			return val, sig, nil
		}
		last = val
	}
	return last, signal{}, nil
}
