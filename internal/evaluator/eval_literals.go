package evaluator

import (
	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
)

func (it *Interpreter) evalList(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	elems := make([]*ast.Node, len(n.Elements))
	for i, e := range n.Elements {
		v, sig, err := it.Eval(e, env)
		if err != nil || sig.kind != signalNone {
			return v, sig, err
		}
		elems[i] = v
	}
	return ast.MakeList(ast.Pos{Line: n.Line, Column: n.Column}, elems, true), signal{}, nil
}

// evalObject evaluates each property and, for function-valued ones,
// binds "this" in their closure to the object itself (grounded on
// original Glide's OBJECT eval, which seeds FUNCTION.closure["this"]
// before evaluating the property), so a method literal can mutate its
// own object via `this.prop = ...`.
func (it *Interpreter) evalObject(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	obj := ast.MakeObject(ast.Pos{Line: n.Line, Column: n.Column}, true)
	for _, key := range n.PropOrder {
		v, sig, err := it.Eval(n.Props[key], env)
		if err != nil || sig.kind != signalNone {
			return v, sig, err
		}
		if v.Kind == ast.Function {
			if v.Closure == nil {
				v.Closure = map[string]*ast.Node{}
			}
			v.Closure["this"] = obj
		}
		obj.AddProp(key, v)
	}
	return obj, signal{}, nil
}

// evalFunctionLiteral builds the closure snapshot (§3) and resolves
// each parameter's declared type annotation against the *defining*
// scope, so `x::Positive` resolves Positive where the function was
// written, not where it's later called.
func (it *Interpreter) evalFunctionLiteral(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	fn := ast.Clone(n)
	fn.Closure = env.Snapshot()
	for _, p := range fn.Params {
		if p.Type != nil {
			resolved, sig, err := it.Eval(p.Type, env)
			if err != nil || sig.kind != signalNone {
				return resolved, sig, err
			}
			p.Type = typeView(resolved)
		}
		if p.Default != nil {
			resolved, sig, err := it.Eval(p.Default, env)
			if err != nil || sig.kind != signalNone {
				return resolved, sig, err
			}
			p.Default = resolved
		}
	}
	if fn.ReturnType != nil {
		resolved, sig, err := it.Eval(fn.ReturnType, env)
		if err != nil || sig.kind != signalNone {
			return resolved, sig, err
		}
		fn.ReturnType = typeView(resolved)
	}
	return fn, signal{}, nil
}

// evalRange eagerly materializes the inclusive-start/exclusive-end
// integer sequence into a concrete List (diverging from the lazy
// original).
func (it *Interpreter) evalRange(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	pos := ast.Pos{Line: n.Line, Column: n.Column}
	var elems []*ast.Node
	if n.RangeEnd >= n.RangeStart {
		for i := n.RangeStart; i < n.RangeEnd; i++ {
			elems = append(elems, ast.MakeInt(pos, i, true))
		}
	} else {
		for i := n.RangeStart; i > n.RangeEnd; i-- {
			elems = append(elems, ast.MakeInt(pos, i, true))
		}
	}
	return ast.MakeList(pos, elems, true), signal{}, nil
}

func (it *Interpreter) evalCopy(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	val, sig, err := it.Eval(n.Left, env)
	if err != nil || sig.kind != signalNone {
		return val, sig, err
	}
	return ast.Clone(val), signal{}, nil
}
