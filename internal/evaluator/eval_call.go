package evaluator

import (
	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
)

// evalFuncCall evaluates the callee and every argument, then applies
// them (§4.3 overload resolution; §4.1 partial application via holes).
// `delete(a, b, ...)` (§6) is a special form: its arguments name
// bindings to erase and must not be evaluated like ordinary call
// arguments, so it is intercepted here before the general path.
func (it *Interpreter) evalFuncCall(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	if n.Left.Kind == ast.Id && n.Left.Name == "delete" {
		return it.evalDelete(n, env)
	}

	callee, sig, err := it.Eval(n.Left, env)
	if err != nil || sig.kind != signalNone {
		return callee, sig, err
	}
	positional, keyword, sig, err := it.evalCallArgs(n.Args, env)
	if err != nil || sig.kind != signalNone {
		return nil, sig, err
	}
	return it.applyCall(callee, positional, keyword, n.Line, n.Column, env)
}

// evalDelete implements the `delete` built-in (§6): each argument must
// be a bare identifier or string literal naming a binding, read off
// the raw (unevaluated) argument node, grounded on original Glide's
// builtin_delete.
func (it *Interpreter) evalDelete(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	pos := ast.Pos{Line: n.Line, Column: n.Column}
	for _, a := range n.Args {
		var name string
		switch a.Kind {
		case ast.Id:
			name = a.Name
		case ast.String:
			name = a.StrVal
		default:
			return nil, signal{}, it.errf(diagnostics.ArgTypeError, n.Line, n.Column, "delete expects identifiers or strings, got %s", a.Kind)
		}
		env.Delete(name)
	}
	return ast.MakeEmpty(pos), signal{}, nil
}

// evalCallArgs evaluates a call's argument list, separating keyword
// bindings (`name: expr`, parsed as an Op(":") node) and expanding
// `...expr` splices (a list's elements fill the remaining positions).
func (it *Interpreter) evalCallArgs(args []*ast.Node, env *Environment) ([]*ast.Node, map[string]*ast.Node, signal, *diagnostics.Error) {
	var positional []*ast.Node
	keyword := map[string]*ast.Node{}
	for _, a := range args {
		if a.Kind == ast.Op && a.OpSymbol == ":" && a.Left != nil && a.Left.Kind == ast.Id {
			val, sig, err := it.Eval(a.Right, env)
			if err != nil || sig.kind != signalNone {
				return nil, nil, sig, err
			}
			keyword[a.Left.Name] = val
			continue
		}
		if a.Kind == ast.Op && a.OpSymbol == "..." && a.Left == nil {
			val, sig, err := it.Eval(a.Right, env)
			if err != nil || sig.kind != signalNone {
				return nil, nil, sig, err
			}
			if val.Kind != ast.List {
				return nil, nil, signal{}, it.errf(diagnostics.ArgTypeError, a.Line, a.Column, "splice argument must be a list, got %s", val.Kind)
			}
			positional = append(positional, val.Elements...)
			continue
		}
		val, sig, err := it.Eval(a, env)
		if err != nil || sig.kind != signalNone {
			return nil, nil, sig, err
		}
		if val.Kind == ast.Empty {
			positional = append(positional, nil) // explicit `_` hole
		} else {
			positional = append(positional, val)
		}
	}
	return positional, keyword, signal{}, nil
}

// applyCall binds positional/keyword arguments to callee. An overload
// set resolves via ast.ResolveOverload; a plain function either fully
// binds (and runs) or, when holes remain, returns the partially
// applied function value itself (§4.1).
func (it *Interpreter) applyCall(callee *ast.Node, positional []*ast.Node, keyword map[string]*ast.Node, line, col int, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	switch callee.Kind {
	case ast.FuncList:
		concrete := make([]*ast.Node, 0, len(positional))
		for _, a := range positional {
			if a != nil {
				concrete = append(concrete, a)
			}
		}
		target, rerr := ast.ResolveOverload(callee, concrete, ast.MatchOptions{Invoker: it})
		if rerr != nil {
			return nil, signal{}, it.errf(diagnostics.ArgTypeError, line, col, "%s", rerr.Error())
		}
		return it.bindAndInvoke(target, positional, keyword, line, col)
	case ast.Function:
		return it.bindAndInvoke(callee, positional, keyword, line, col)
	default:
		return nil, signal{}, it.errf(diagnostics.RuntimeError, line, col, "value of kind %s is not callable", callee.Kind)
	}
}

func (it *Interpreter) bindAndInvoke(fn *ast.Node, positional []*ast.Node, keyword map[string]*ast.Node, line, col int) (*ast.Node, signal, *diagnostics.Error) {
	bound := ast.Clone(fn)
	if bound.Args == nil {
		bound.Args = make([]*ast.Node, len(bound.Params))
	}

	variadicAt := -1
	if n := len(bound.Params); n > 0 && bound.Params[n-1].Variadic {
		variadicAt = n - 1
	}

	slot, pi := 0, 0
	for pi < len(positional) {
		if variadicAt >= 0 && slot >= variadicAt {
			break
		}
		for slot < len(bound.Params) && bound.Args[slot] != nil {
			slot++
		}
		if slot >= len(bound.Params) || (variadicAt >= 0 && slot >= variadicAt) {
			break
		}
		if positional[pi] != nil {
			bound.Args[slot] = positional[pi]
		}
		slot++
		pi++
	}
	if variadicAt >= 0 && bound.Args[variadicAt] == nil {
		tail := ast.MakeList(ast.Pos{Line: line, Column: col}, append([]*ast.Node(nil), positional[pi:]...), true)
		bound.Args[variadicAt] = tail
	}

	for name, v := range keyword {
		for i, p := range bound.Params {
			if p.Name == name {
				bound.Args[i] = v
			}
		}
	}
	for i, p := range bound.Params {
		if bound.Args[i] == nil && p.Default != nil {
			bound.Args[i] = p.Default
		}
	}

	for _, a := range bound.Args {
		if a == nil {
			return bound, signal{}, nil // still partially applied
		}
	}
	return it.invokeFunction(bound, line, col)
}

// invokeFunction runs a fully-bound function body in a fresh scope
// enclosed by its closure snapshot, type-checking each bound argument
// against its parameter's declared type (§4.2) and the result against
// the declared return type, if any.
func (it *Interpreter) invokeFunction(fn *ast.Node, line, col int) (*ast.Node, signal, *diagnostics.Error) {
	if fn.NativeName != "" {
		return it.callNative(fn, line, col)
	}

	pop, errf := it.pushFrame(fn.FuncName)
	if errf != nil {
		return nil, signal{}, errf
	}
	defer pop()

	scope := FromClosure(fn.Closure, it.Global)
	for i, p := range fn.Params {
		val := ast.MakeEmpty(ast.Pos{Line: line, Column: col})
		if i < len(fn.Args) && fn.Args[i] != nil {
			val = fn.Args[i]
		}
		if p.Type != nil {
			if ok, msg := ast.Match(p.Type, val, ast.MatchOptions{Invoker: it}); !ok {
				return nil, signal{}, it.errf(diagnostics.ArgTypeError, line, col, "argument %q: %s", p.Name, msg)
			}
		}
		scope.Define(p.Name, val)
	}

	result, sig, err := it.Eval(fn.Body, scope)
	if err != nil {
		return nil, signal{}, err
	}
	if sig.kind == signalReturn {
		result = sig.value
	}
	if fn.ReturnType != nil {
		if ok, msg := ast.Match(fn.ReturnType, result, ast.MatchOptions{Invoker: it}); !ok {
			return nil, signal{}, it.errf(diagnostics.TypeError, line, col, "return value: %s", msg)
		}
	}
	return result, signal{}, nil
}

// CallRefinement implements ast.RefinementInvoker so the structural
// matcher can call a refinement predicate without importing the
// evaluator (§4.2 rule 4).
func (it *Interpreter) CallRefinement(fn, arg *ast.Node) (bool, string, error) {
	result, _, err := it.applyCall(fn, []*ast.Node{arg}, nil, fn.Line, fn.Column, it.Global)
	if err != nil {
		return false, "", err
	}
	if result.Kind != ast.Bool {
		return false, "", nil
	}
	if !result.BoolVal {
		if msg, ok := ast.RefinementMessage(fn); ok {
			return false, msg, nil
		}
	}
	return result.BoolVal, "", nil
}
