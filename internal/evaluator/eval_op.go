package evaluator

import (
	"strings"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
)

// evalOp dispatches every Op/PartialOp node: arithmetic, comparison,
// logical short-circuit, member access, indexing, assignment, and the
// pipe-injection operator (§4.4). A PartialOp reaching Eval directly
// (not via pipe) denotes a standalone partial-application value and
// evaluates to itself with its holes left unresolved.
func (it *Interpreter) evalOp(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	pos := ast.Pos{Line: n.Line, Column: n.Column}

	if n.Kind == ast.PartialOp {
		return n, signal{}, nil
	}

	switch n.OpSymbol {
	case "=":
		return it.evalAssign(n, env)
	case ".":
		return it.evalMember(n, env)
	case "[]":
		return it.evalIndex(n, env)
	case ">>":
		return it.evalPipe(n, env)
	case "&&", "||":
		return it.evalLogical(n, env)
	}

	if !n.IsBinary {
		return it.evalUnary(n, env)
	}

	left, sig, err := it.Eval(n.Left, env)
	if err != nil || sig.kind != signalNone {
		return left, sig, err
	}
	right, sig, err := it.Eval(n.Right, env)
	if err != nil || sig.kind != signalNone {
		return right, sig, err
	}
	return it.evalBinaryValues(n.OpSymbol, left, right, pos)
}

func (it *Interpreter) evalLogical(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	left, sig, err := it.Eval(n.Left, env)
	if err != nil || sig.kind != signalNone {
		return left, sig, err
	}
	if n.OpSymbol == "&&" && !isTruthy(left) {
		return left, signal{}, nil
	}
	if n.OpSymbol == "||" && isTruthy(left) {
		return left, signal{}, nil
	}
	return it.Eval(n.Right, env)
}

func (it *Interpreter) evalUnary(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	pos := ast.Pos{Line: n.Line, Column: n.Column}
	operand, sig, err := it.Eval(n.Right, env)
	if err != nil || sig.kind != signalNone {
		return operand, sig, err
	}
	switch n.OpSymbol {
	case "!":
		return ast.MakeBool(pos, !isTruthy(operand), true), signal{}, nil
	case "-":
		switch operand.Kind {
		case ast.Int:
			return ast.MakeInt(pos, -operand.IntVal, true), signal{}, nil
		case ast.Float:
			return ast.MakeFloat(pos, -operand.FloatVal, true), signal{}, nil
		}
	case "+":
		switch operand.Kind {
		case ast.Int, ast.Float:
			return operand, signal{}, nil
		}
	}
	return nil, signal{}, it.errf(diagnostics.TypeError, n.Line, n.Column, "unary %q not defined for %s", n.OpSymbol, operand.Kind)
}

func isNumeric(n *ast.Node) bool { return n.Kind == ast.Int || n.Kind == ast.Float }

func asFloat(n *ast.Node) float64 {
	if n.Kind == ast.Float {
		return n.FloatVal
	}
	return float64(n.IntVal)
}

// evalBinaryValues implements the arithmetic/comparison cross-product
// over already-evaluated operands (§4.4): int op int stays int when
// both sides are int, any float operand promotes the result to float,
// `+` additionally concatenates strings and lists.
func (it *Interpreter) evalBinaryValues(op string, left, right *ast.Node, pos ast.Pos) (*ast.Node, signal, *diagnostics.Error) {
	switch op {
	case "==":
		return ast.MakeBool(pos, valuesEqual(left, right), true), signal{}, nil
	case "!=":
		return ast.MakeBool(pos, !valuesEqual(left, right), true), signal{}, nil
	}

	if op == "+" && left.Kind == ast.String && right.Kind == ast.String {
		return ast.MakeString(pos, left.StrVal+right.StrVal, true), signal{}, nil
	}
	if op == "+" && left.Kind == ast.List && right.Kind == ast.List {
		out := append([]*ast.Node(nil), left.Elements...)
		out = append(out, right.Elements...)
		return ast.MakeList(pos, out, true), signal{}, nil
	}

	switch op {
	case "<", "<=", ">", ">=":
		if left.Kind == ast.String && right.Kind == ast.String {
			return ast.MakeBool(pos, compareStrings(op, left.StrVal, right.StrVal), true), signal{}, nil
		}
	}

	if !isNumeric(left) || !isNumeric(right) {
		return nil, signal{}, it.errf(diagnostics.TypeError, pos.Line, pos.Column, "operator %q not defined for %s and %s", op, left.Kind, right.Kind)
	}

	bothInt := left.Kind == ast.Int && right.Kind == ast.Int
	a, b := asFloat(left), asFloat(right)

	switch op {
	case "+", "-", "*", "/", "%":
		var r float64
		switch op {
		case "+":
			r = a + b
		case "-":
			r = a - b
		case "*":
			r = a * b
		case "/":
			if b == 0 {
				return nil, signal{}, it.errf(diagnostics.RuntimeError, pos.Line, pos.Column, "division by zero")
			}
			r = a / b
		case "%":
			if bothInt {
				if right.IntVal == 0 {
					return nil, signal{}, it.errf(diagnostics.RuntimeError, pos.Line, pos.Column, "division by zero")
				}
				return ast.MakeInt(pos, left.IntVal%right.IntVal, true), signal{}, nil
			}
			return nil, signal{}, it.errf(diagnostics.TypeError, pos.Line, pos.Column, "%% requires int operands")
		}
		if bothInt && op != "/" {
			return ast.MakeInt(pos, int64(r), true), signal{}, nil
		}
		return ast.MakeFloat(pos, r, true), signal{}, nil
	case "<":
		return ast.MakeBool(pos, a < b, true), signal{}, nil
	case "<=":
		return ast.MakeBool(pos, a <= b, true), signal{}, nil
	case ">":
		return ast.MakeBool(pos, a > b, true), signal{}, nil
	case ">=":
		return ast.MakeBool(pos, a >= b, true), signal{}, nil
	}
	return nil, signal{}, it.errf(diagnostics.RuntimeError, pos.Line, pos.Column, "unknown operator %q", op)
}

func compareStrings(op, a, b string) bool {
	switch op {
	case "<":
		return strings.Compare(a, b) < 0
	case "<=":
		return strings.Compare(a, b) <= 0
	case ">":
		return strings.Compare(a, b) > 0
	default:
		return strings.Compare(a, b) >= 0
	}
}

func valuesEqual(a, b *ast.Node) bool {
	if isNumeric(a) && isNumeric(b) {
		return asFloat(a) == asFloat(b)
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ast.Bool:
		return a.BoolVal == b.BoolVal
	case ast.String:
		return a.StrVal == b.StrVal
	case ast.Empty:
		return true
	case ast.List:
		if len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if !valuesEqual(a.Elements[i], b.Elements[i]) {
				return false
			}
		}
		return true
	case ast.Object:
		if len(a.PropOrder) != len(b.PropOrder) {
			return false
		}
		for _, k := range a.PropOrder {
			bv, ok := b.Props[k]
			if !ok || !valuesEqual(a.Props[k], bv) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// evalIndex implements `[]` indexing on lists (by position, negative
// indices counting from the end), strings (by rune position), and
// objects (by computed string key, §4.5's computed-name assignment
// counterpart).
func (it *Interpreter) evalIndex(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	left, sig, err := it.Eval(n.Left, env)
	if err != nil || sig.kind != signalNone {
		return left, sig, err
	}
	idx, sig, err := it.Eval(n.Right, env)
	if err != nil || sig.kind != signalNone {
		return idx, sig, err
	}
	pos := ast.Pos{Line: n.Line, Column: n.Column}

	switch left.Kind {
	case ast.List:
		if idx.Kind != ast.Int {
			return nil, signal{}, it.errf(diagnostics.ArgTypeError, n.Line, n.Column, "list index must be int, got %s", idx.Kind)
		}
		i := idx.IntVal
		if i < 0 {
			i += int64(len(left.Elements))
		}
		if i < 0 || i >= int64(len(left.Elements)) {
			return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "list index %d out of range", idx.IntVal)
		}
		return left.Elements[i], signal{}, nil
	case ast.String:
		if idx.Kind != ast.Int {
			return nil, signal{}, it.errf(diagnostics.ArgTypeError, n.Line, n.Column, "string index must be int, got %s", idx.Kind)
		}
		runes := []rune(left.StrVal)
		i := idx.IntVal
		if i < 0 {
			i += int64(len(runes))
		}
		if i < 0 || i >= int64(len(runes)) {
			return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "string index %d out of range", idx.IntVal)
		}
		return ast.MakeString(pos, string(runes[i]), true), signal{}, nil
	case ast.Object:
		if idx.Kind != ast.String {
			return nil, signal{}, it.errf(diagnostics.ArgTypeError, n.Line, n.Column, "object key must be string, got %s", idx.Kind)
		}
		val, ok := left.Props[idx.StrVal]
		if !ok {
			return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "object has no property %q", idx.StrVal)
		}
		return val, signal{}, nil
	default:
		return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "cannot index %s", left.Kind)
	}
}

// typeView converts a resolved annotation expression into the shape a
// type position holds it as: literal payloads collapse to their kind
// carrier (IsLiteral false), and a Function becomes a refinement
// (IsType true) — any function value used where a type is expected is
// itself the type, per §4.8's "types ARE values".
func typeView(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	cp := *n
	cp.IsLiteral = false
	if n.Kind == ast.Function {
		cp.IsType = true
	}
	return &cp
}

// bindTyped implements the identifier branch of §4.5's allowed_type
// rule: it resolves id's `::` annotation (if any) against env,
// refuses to re-annotate an already-typed binding with anything but
// Any, checks val against whichever allowed_type applies (the fresh
// annotation, or the one already carried by the existing binding),
// and returns val tagged with that allowed_type so later re-
// assignments without a repeated annotation still get checked.
func (it *Interpreter) bindTyped(id *ast.Node, val *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	existing, hasExisting := env.Get(id.Name)

	var allowedType *ast.Node
	if hasExisting {
		allowedType = existing.AllowedType
	}

	if id.AllowedType != nil {
		raw, sig, err := it.Eval(id.AllowedType, env)
		if err != nil || sig.kind != signalNone {
			return raw, sig, err
		}
		resolved := typeView(raw)
		if allowedType != nil && resolved.Kind != ast.Any {
			return nil, signal{}, it.errf(diagnostics.TypeError, id.Line, id.Column,
				"%q is already annotated as %s; re-annotation is forbidden", id.Name, ast.TypeRepr(allowedType))
		}
		allowedType = resolved
	}

	if allowedType == nil {
		return val, signal{}, nil
	}

	if ok, msg := ast.Match(allowedType, val, ast.MatchOptions{Invoker: it}); !ok {
		return nil, signal{}, it.errf(diagnostics.TypeError, id.Line, id.Column,
			"%s does not satisfy %s: %s", ast.Repr(val), ast.TypeRepr(allowedType), msg)
	}

	bound := *val
	bound.AllowedType = allowedType
	return &bound, signal{}, nil
}

// evalAssign implements §4.5: plain identifier binding (an anonymous
// function takes the identifier as its name), computed-name binding
// `[expr] = rhs`, member assignment (mutates the shared Object in
// place; a function assigned over a function property joins it in a
// FuncList), and indexed assignment (mutates the shared List/Object in
// place).
func (it *Interpreter) evalAssign(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	val, sig, err := it.Eval(n.Right, env)
	if err != nil || sig.kind != signalNone {
		return val, sig, err
	}

	switch {
	case n.Left.Kind == ast.Id:
		if val.Kind == ast.Function && val.FuncName == "lambda" {
			named := *val
			named.FuncName = n.Left.Name
			val = &named
		}
		bound, sig, err := it.bindTyped(n.Left, val, env)
		if err != nil || sig.kind != signalNone {
			return bound, sig, err
		}
		if !env.Update(n.Left.Name, bound) {
			env.Define(n.Left.Name, bound)
		}
		return bound, signal{}, nil

	case n.Left.Kind == ast.List && len(n.Left.Elements) == 1:
		key, sig, err := it.Eval(n.Left.Elements[0], env)
		if err != nil || sig.kind != signalNone {
			return key, sig, err
		}
		if key.Kind != ast.String {
			return nil, signal{}, it.errf(diagnostics.TypeError, n.Line, n.Column, "computed binding name must be a string, got %s", key.Kind)
		}
		if !env.Update(key.StrVal, val) {
			env.Define(key.StrVal, val)
		}
		return val, signal{}, nil

	case n.Left.Kind == ast.Op && n.Left.OpSymbol == ".":
		obj, sig, err := it.Eval(n.Left.Left, env)
		if err != nil || sig.kind != signalNone {
			return obj, sig, err
		}
		if obj.Kind != ast.Object {
			return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "cannot assign property on %s", obj.Kind)
		}
		name := n.Left.Right.Name
		if prev, ok := obj.Props[name]; ok && val.Kind == ast.Function && (prev.Kind == ast.Function || prev.Kind == ast.FuncList) {
			alts := []*ast.Node{prev}
			if prev.Kind == ast.FuncList {
				alts = append([]*ast.Node{}, prev.Elements...)
			}
			val = ast.MakeFuncList(ast.Pos{Line: n.Line, Column: n.Column}, append(alts, val))
		}
		obj.AddProp(name, val)
		return val, signal{}, nil

	case n.Left.Kind == ast.Op && n.Left.OpSymbol == "[]":
		target, sig, err := it.Eval(n.Left.Left, env)
		if err != nil || sig.kind != signalNone {
			return target, sig, err
		}
		idx, sig, err := it.Eval(n.Left.Right, env)
		if err != nil || sig.kind != signalNone {
			return idx, sig, err
		}
		switch target.Kind {
		case ast.List:
			if idx.Kind != ast.Int {
				return nil, signal{}, it.errf(diagnostics.ArgTypeError, n.Line, n.Column, "list index must be int, got %s", idx.Kind)
			}
			i := idx.IntVal
			if i < 0 {
				i += int64(len(target.Elements))
			}
			if i < 0 || i >= int64(len(target.Elements)) {
				return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "list index %d out of range", idx.IntVal)
			}
			target.Elements[i] = val
			return val, signal{}, nil
		case ast.Object:
			if idx.Kind != ast.String {
				return nil, signal{}, it.errf(diagnostics.ArgTypeError, n.Line, n.Column, "object key must be string, got %s", idx.Kind)
			}
			target.AddProp(idx.StrVal, val)
			return val, signal{}, nil
		default:
			return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "cannot index-assign on %s", target.Kind)
		}

	default:
		return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "invalid assignment target")
	}
}

// evalPipe implements `>>` injection (§4.4): the left value fills the
// next open hole of the right-hand PartialOp or (possibly already
// partially applied) Function.
func (it *Interpreter) evalPipe(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	left, sig, err := it.Eval(n.Left, env)
	if err != nil || sig.kind != signalNone {
		return left, sig, err
	}
	right, sig, err := it.Eval(n.Right, env)
	if err != nil || sig.kind != signalNone {
		return right, sig, err
	}

	pos := ast.Pos{Line: n.Line, Column: n.Column}
	fill := left
	if left.Kind == ast.CommaList && len(left.Elements) > 0 {
		fill = left.Elements[0]
	}
	switch right.Kind {
	case ast.PartialOp:
		l, r := right.Left, right.Right
		if l != nil && l.Kind == ast.Empty {
			l = fill
		} else if r != nil && r.Kind == ast.Empty {
			r = fill
		} else {
			return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "partial operator has no open hole")
		}
		if l == nil || r == nil {
			return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "partial operator is missing an operand")
		}
		return it.evalBinaryValues(right.OpSymbol, l, r, pos)
	case ast.Function, ast.FuncList:
		args := []*ast.Node{left}
		if left.Kind == ast.CommaList {
			args = left.Elements
		}
		return it.applyCall(right, args, nil, n.Line, n.Column, env)
	default:
		return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "cannot pipe into %s", right.Kind)
	}
}
