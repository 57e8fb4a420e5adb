package evaluator

import (
	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
)

// evalMatchBlock tries each case's pattern against the discriminant in
// order, binding names the pattern introduces into a fresh scope
// before evaluating that case's body (§4.7). A nil Cond is the
// trailing `else`, which always matches.
func (it *Interpreter) evalMatchBlock(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	value, sig, err := it.Eval(n.Left, env)
	if err != nil || sig.kind != signalNone {
		return value, sig, err
	}
	for _, c := range n.Cases {
		if c.Cond == nil {
			return it.Eval(c.Body, NewEnclosed(env))
		}
		scope := NewEnclosed(env)
		if matchPattern(c.Cond, value, scope) {
			return it.Eval(c.Body, scope)
		}
	}
	return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "no match case for %s", ast.Repr(value))
}

// matchPattern reports whether pattern accepts value, binding any
// names the pattern introduces into scope as a side effect.
func matchPattern(pattern, value *ast.Node, scope *Environment) bool {
	switch pattern.Kind {
	case ast.Empty:
		return true
	case ast.Id:
		scope.Define(pattern.Name, value)
		return true
	case ast.Int, ast.Float, ast.Bool, ast.String:
		ok, _ := ast.Match(pattern, value, ast.MatchOptions{})
		return ok
	case ast.Op:
		switch pattern.OpSymbol {
		case "..":
			return matchRangePattern(pattern, value)
		case "...":
			scope.Define(pattern.Right.Name, value)
			return true
		}
		return false
	case ast.List:
		return matchListPattern(pattern, value, scope)
	case ast.Object:
		return matchObjectPattern(pattern, value, scope)
	default:
		ok, _ := ast.Match(pattern, value, ast.MatchOptions{})
		return ok
	}
}

func matchRangePattern(pattern, value *ast.Node) bool {
	lo, hi := pattern.Left, pattern.Right
	switch value.Kind {
	case ast.Int:
		return int64OrFloat(lo) <= float64(value.IntVal) && float64(value.IntVal) < int64OrFloat(hi)
	case ast.Float:
		return int64OrFloat(lo) <= value.FloatVal && value.FloatVal < int64OrFloat(hi)
	default:
		return false
	}
}

func int64OrFloat(n *ast.Node) float64 {
	if n.Kind == ast.Float {
		return n.FloatVal
	}
	return float64(n.IntVal)
}

func matchListPattern(pattern, value *ast.Node, scope *Environment) bool {
	if value.Kind != ast.List {
		return false
	}
	elems := pattern.Elements
	vals := value.Elements
	for i, p := range elems {
		if p.Kind == ast.Op && p.OpSymbol == "..." {
			rest := vals[i:]
			if i > len(vals) {
				rest = nil
			}
			scope.Define(p.Right.Name, ast.MakeList(ast.Pos{}, append([]*ast.Node(nil), rest...), true))
			return true
		}
		if i >= len(vals) {
			return false
		}
		if !matchPattern(p, vals[i], scope) {
			return false
		}
	}
	return len(elems) == len(vals)
}

func matchObjectPattern(pattern, value *ast.Node, scope *Environment) bool {
	if value.Kind != ast.Object {
		return false
	}
	for _, key := range pattern.PropOrder {
		val, ok := value.Props[key]
		if !ok {
			return false
		}
		if !matchPattern(pattern.Props[key], val, scope) {
			return false
		}
	}
	return true
}
