package evaluator

import (
	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
)

func (it *Interpreter) evalIfStatement(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	cond, sig, err := it.Eval(n.Left, env)
	if err != nil || sig.kind != signalNone {
		return cond, sig, err
	}
	if !isTruthy(cond) {
		if n.Right == nil {
			return ast.MakeEmpty(ast.Pos{Line: n.Line, Column: n.Column}), signal{}, nil
		}
		return it.Eval(n.Right, NewEnclosed(env))
	}
	return it.Eval(n.Body, NewEnclosed(env))
}

// evalIfBlock runs the sequential-guard form: the first case whose
// guard is truthy wins; a nil Cond is the trailing `else` (§4.4).
func (it *Interpreter) evalIfBlock(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	for _, c := range n.Cases {
		if c.Cond == nil {
			return it.Eval(c.Body, NewEnclosed(env))
		}
		cond, sig, err := it.Eval(c.Cond, env)
		if err != nil || sig.kind != signalNone {
			return cond, sig, err
		}
		if isTruthy(cond) {
			return it.Eval(c.Body, NewEnclosed(env))
		}
	}
	return ast.MakeEmpty(ast.Pos{Line: n.Line, Column: n.Column}), signal{}, nil
}

func (it *Interpreter) evalWhileLoop(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	last := ast.MakeEmpty(ast.Pos{Line: n.Line, Column: n.Column})
	for {
		cond, sig, err := it.Eval(n.Left, env)
		if err != nil || sig.kind != signalNone {
			return cond, sig, err
		}
		if !isTruthy(cond) {
			return last, signal{}, nil
		}
		val, sig, err := it.Eval(n.Body, NewEnclosed(env))
		if err != nil {
			return nil, signal{}, err
		}
		switch sig.kind {
		case signalBreak:
			return val, signal{}, nil
		case signalReturn:
			return val, sig, nil
		}
		last = val
	}
}

// evalForLoop iterates a materialized List, String (by character), or
// Object (by value), binding `[iter]`, `[iter, i]`, or
// `[iter, i, x]` per §4.4.
func (it *Interpreter) evalForLoop(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	iterable, sig, err := it.Eval(n.Left, env)
	if err != nil || sig.kind != signalNone {
		return iterable, sig, err
	}

	var items []*ast.Node
	switch iterable.Kind {
	case ast.List:
		items = iterable.Elements
	case ast.String:
		pos := ast.Pos{Line: n.Line, Column: n.Column}
		for _, r := range iterable.StrVal {
			items = append(items, ast.MakeString(pos, string(r), true))
		}
	case ast.Object:
		for _, k := range iterable.PropOrder {
			items = append(items, iterable.Props[k])
		}
	default:
		return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "cannot iterate over %s", iterable.Kind)
	}

	last := ast.MakeEmpty(ast.Pos{Line: n.Line, Column: n.Column})
	for idx, item := range items {
		scope := NewEnclosed(env)
		if len(n.LoopVars) > 0 {
			scope.Define(n.LoopVars[0], item)
		}
		if len(n.LoopVars) > 1 {
			scope.Define(n.LoopVars[1], ast.MakeInt(ast.Pos{}, int64(idx), true))
		}
		if len(n.LoopVars) > 2 {
			scope.Define(n.LoopVars[2], iterable)
		}
		val, sig, err := it.Eval(n.Body, scope)
		if err != nil {
			return nil, signal{}, err
		}
		switch sig.kind {
		case signalBreak:
			return val, signal{}, nil
		case signalReturn:
			return val, sig, nil
		}
		last = val
	}
	return last, signal{}, nil
}

// isTruthy treats non-bool conditions the same way the original
// Glide's abstract interpreter does: only `false` and `null` are
// falsy, everything else (including `0`) is truthy.
func isTruthy(n *ast.Node) bool {
	switch n.Kind {
	case ast.Bool:
		return n.BoolVal
	case ast.Empty:
		return false
	default:
		return true
	}
}
