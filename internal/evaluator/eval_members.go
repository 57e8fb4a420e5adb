package evaluator

import (
	"strings"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
)

// methodParams builds a native method's parameter list; optional
// parameters (cmp?, deep?, sep?) get a pre-resolved Empty default so
// bindAndInvoke never treats the call as partially applied just
// because the caller omitted them.
func methodParams(pos ast.Pos, names ...string) []*ast.Param {
	params := make([]*ast.Param, 0, len(names))
	for _, raw := range names {
		name := raw
		optional := strings.HasSuffix(raw, "?")
		if optional {
			name = strings.TrimSuffix(raw, "?")
		}
		p := &ast.Param{Name: name}
		if optional {
			p.Default = ast.MakeEmpty(pos)
		}
		params = append(params, p)
	}
	return params
}

func boundMethod(pos ast.Pos, self *ast.Node, nativeName string, names ...string) *ast.Node {
	fn := ast.MakeFunction(pos)
	fn.NativeName = nativeName
	fn.FuncName = nativeName
	fn.Params = methodParams(pos, names...)
	fn.Closure = map[string]*ast.Node{"__self": self}
	return fn
}

// evalMember implements `.` property/method access on every kind
// (§4.6): List/String/Object/Object properties resolve to a concrete
// value; method names resolve to a bound native Function that reads
// its receiver back out of Closure["__self"] when invoked. PipeList
// distributes access across every alternative and de-duplicates.
func (it *Interpreter) evalMember(n *ast.Node, env *Environment) (*ast.Node, signal, *diagnostics.Error) {
	left, sig, err := it.Eval(n.Left, env)
	if err != nil || sig.kind != signalNone {
		return left, sig, err
	}
	name := n.Right.Name
	pos := ast.Pos{Line: n.Line, Column: n.Column}

	switch left.Kind {
	case ast.List:
		return it.memberList(left, name, pos)
	case ast.String:
		return it.memberString(left, name, pos)
	case ast.Object:
		return it.memberObject(left, name, pos, n)
	case ast.Function, ast.FuncList:
		return it.memberFunction(left, name, pos)
	case ast.PipeList:
		return it.memberPipeList(left, name, pos)
	default:
		return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "cannot access property %q of %s", name, left.Kind)
	}
}

func (it *Interpreter) memberList(self *ast.Node, name string, pos ast.Pos) (*ast.Node, signal, *diagnostics.Error) {
	switch name {
	case "length":
		return ast.MakeInt(pos, int64(len(self.Elements)), true), signal{}, nil
	case "empty":
		return ast.MakeBool(pos, len(self.Elements) == 0, true), signal{}, nil
	case "first":
		if len(self.Elements) == 0 {
			return ast.MakeEmpty(pos), signal{}, nil
		}
		return self.Elements[0], signal{}, nil
	case "last":
		if len(self.Elements) == 0 {
			return ast.MakeEmpty(pos), signal{}, nil
		}
		return self.Elements[len(self.Elements)-1], signal{}, nil
	case "map", "filter", "foreach", "flatmap":
		return boundMethod(pos, self, "List."+name, "f"), signal{}, nil
	case "sort":
		return boundMethod(pos, self, "List.sort", "cmp?"), signal{}, nil
	case "flatten":
		return boundMethod(pos, self, "List.flatten", "deep?"), signal{}, nil
	case "append":
		return boundMethod(pos, self, "List.append", "x"), signal{}, nil
	case "prepend":
		return boundMethod(pos, self, "List.prepend", "x"), signal{}, nil
	case "insert":
		return boundMethod(pos, self, "List.insert", "i", "x"), signal{}, nil
	case "remove":
		return boundMethod(pos, self, "List.remove", "i"), signal{}, nil
	case "clear":
		return boundMethod(pos, self, "List.clear"), signal{}, nil
	case "subsection":
		return boundMethod(pos, self, "List.subsection", "i", "j"), signal{}, nil
	}
	return nil, signal{}, it.errf(diagnostics.RuntimeError, pos.Line, pos.Column, "list has no property %q", name)
}

func (it *Interpreter) memberString(self *ast.Node, name string, pos ast.Pos) (*ast.Node, signal, *diagnostics.Error) {
	runes := []rune(self.StrVal)
	switch name {
	case "length":
		return ast.MakeInt(pos, int64(len(runes)), true), signal{}, nil
	case "empty":
		return ast.MakeBool(pos, len(runes) == 0, true), signal{}, nil
	case "first":
		if len(runes) == 0 {
			return ast.MakeEmpty(pos), signal{}, nil
		}
		return ast.MakeString(pos, string(runes[0]), true), signal{}, nil
	case "last":
		if len(runes) == 0 {
			return ast.MakeEmpty(pos), signal{}, nil
		}
		return ast.MakeString(pos, string(runes[len(runes)-1]), true), signal{}, nil
	case "is_alpha":
		return ast.MakeBool(pos, self.StrVal != "" && isAllFunc(runes, isAlphaRune), true), signal{}, nil
	case "is_digit":
		return ast.MakeBool(pos, self.StrVal != "" && isAllFunc(runes, isDigitRune), true), signal{}, nil
	case "chars":
		return boundMethod(pos, self, "String.chars"), signal{}, nil
	case "lower":
		return boundMethod(pos, self, "String.lower"), signal{}, nil
	case "upper":
		return boundMethod(pos, self, "String.upper"), signal{}, nil
	case "split":
		return boundMethod(pos, self, "String.split", "sep?"), signal{}, nil
	case "trim":
		return boundMethod(pos, self, "String.trim"), signal{}, nil
	case "append":
		return boundMethod(pos, self, "String.append", "x"), signal{}, nil
	case "prepend":
		return boundMethod(pos, self, "String.prepend", "x"), signal{}, nil
	case "insert":
		return boundMethod(pos, self, "String.insert", "i", "x"), signal{}, nil
	case "replace_at":
		return boundMethod(pos, self, "String.replace_at", "i", "x"), signal{}, nil
	case "remove":
		return boundMethod(pos, self, "String.remove", "i"), signal{}, nil
	case "replace":
		return boundMethod(pos, self, "String.replace", "old", "new"), signal{}, nil
	case "replace_all":
		return boundMethod(pos, self, "String.replace_all", "old", "new"), signal{}, nil
	case "subsection":
		return boundMethod(pos, self, "String.subsection", "i", "j"), signal{}, nil
	}
	return nil, signal{}, it.errf(diagnostics.RuntimeError, pos.Line, pos.Column, "string has no property %q", name)
}

func isAllFunc(runes []rune, pred func(rune) bool) bool {
	for _, r := range runes {
		if !pred(r) {
			return false
		}
	}
	return true
}

func isAlphaRune(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }

func (it *Interpreter) memberObject(self *ast.Node, name string, pos ast.Pos, n *ast.Node) (*ast.Node, signal, *diagnostics.Error) {
	if val, ok := self.Props[name]; ok {
		return val, signal{}, nil
	}
	switch name {
	case "_keys":
		keys := make([]*ast.Node, 0, len(self.PropOrder))
		for _, k := range self.PropOrder {
			keys = append(keys, ast.MakeString(pos, k, true))
		}
		return ast.MakeList(pos, keys, true), signal{}, nil
	case "_values":
		vals := make([]*ast.Node, 0, len(self.PropOrder))
		for _, k := range self.PropOrder {
			vals = append(vals, self.Props[k])
		}
		return ast.MakeList(pos, vals, true), signal{}, nil
	case "_items":
		items := make([]*ast.Node, 0, len(self.PropOrder))
		for _, k := range self.PropOrder {
			pair := ast.MakeList(pos, []*ast.Node{ast.MakeString(pos, k, true), self.Props[k]}, true)
			items = append(items, pair)
		}
		return ast.MakeList(pos, items, true), signal{}, nil
	case "add":
		return boundMethod(pos, self, "Object.add", "k", "v"), signal{}, nil
	case "delete":
		return boundMethod(pos, self, "Object.delete", "k"), signal{}, nil
	case "clear":
		return boundMethod(pos, self, "Object.clear"), signal{}, nil
	}
	return nil, signal{}, it.errf(diagnostics.RuntimeError, n.Line, n.Column, "object has no property %q", name)
}

func (it *Interpreter) memberFunction(self *ast.Node, name string, pos ast.Pos) (*ast.Node, signal, *diagnostics.Error) {
	switch name {
	case "name":
		return ast.MakeString(pos, self.FuncName, true), signal{}, nil
	case "params":
		names := make([]*ast.Node, 0, len(self.Params))
		for _, p := range self.Params {
			names = append(names, ast.MakeString(pos, p.Name, true))
		}
		return ast.MakeList(pos, names, true), signal{}, nil
	case "args":
		args := make([]*ast.Node, 0, len(self.Args))
		for _, a := range self.Args {
			if a == nil {
				args = append(args, ast.MakeEmpty(pos))
			} else {
				args = append(args, a)
			}
		}
		return ast.MakeList(pos, args, true), signal{}, nil
	case "patch":
		return boundMethod(pos, self, "Function.patch", "body"), signal{}, nil
	}
	return nil, signal{}, it.errf(diagnostics.RuntimeError, pos.Line, pos.Column, "function has no property %q", name)
}

// memberPipeList implements `(A|B).x` distribution (§4.6): access each
// alternative, canonicalize, and de-duplicate by structural match.
func (it *Interpreter) memberPipeList(self *ast.Node, name string, pos ast.Pos) (*ast.Node, signal, *diagnostics.Error) {
	var out []*ast.Node
	for _, alt := range self.Elements {
		val, sig, err := it.evalMemberOn(alt, name, pos)
		if err != nil || sig.kind != signalNone {
			return val, sig, err
		}
		out = append(out, val)
	}
	return ast.Canonicalize(ast.MakePipeList(pos, out)), signal{}, nil
}

func (it *Interpreter) evalMemberOn(val *ast.Node, name string, pos ast.Pos) (*ast.Node, signal, *diagnostics.Error) {
	switch val.Kind {
	case ast.List:
		return it.memberList(val, name, pos)
	case ast.String:
		return it.memberString(val, name, pos)
	case ast.Object:
		return it.memberObject(val, name, pos, &ast.Node{Line: pos.Line, Column: pos.Column})
	case ast.Function, ast.FuncList:
		return it.memberFunction(val, name, pos)
	default:
		return nil, signal{}, it.errf(diagnostics.RuntimeError, pos.Line, pos.Column, "cannot access property %q of %s", name, val.Kind)
	}
}

// callMethodArg invokes a user-supplied callback during a List method
// (map/filter/foreach/flatmap/sort), accepting a Function, FuncList, or
// PartialOp. A plain Function silently drops any trailing args its
// arity doesn't use (bindAndInvoke stops at the last parameter); a
// FuncList is resolved against all of args, so an arm with fewer
// parameters is not chosen; a PartialOp only has its single hole filled.
func (it *Interpreter) callMethodArg(fn *ast.Node, args []*ast.Node, pos ast.Pos) (*ast.Node, *diagnostics.Error) {
	if fn.Kind == ast.PartialOp {
		l, r := fn.Left, fn.Right
		if l != nil && l.Kind == ast.Empty {
			l = args[0]
		} else if r != nil && r.Kind == ast.Empty {
			r = args[0]
		}
		val, _, err := it.evalBinaryValues(fn.OpSymbol, l, r, pos)
		return val, err
	}
	val, _, err := it.applyCall(fn, args, nil, pos.Line, pos.Column, it.Global)
	return val, err
}
