package evaluator

import (
	"sort"
	"strings"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
)

// callBoundMethod runs one of the per-kind collection built-ins (§4.6)
// bound earlier by evalMember. args mirrors fn.Args: an optional
// parameter the caller omitted arrives as its Empty default (a nil
// entry is treated the same way).
func (it *Interpreter) callBoundMethod(nativeName string, self *ast.Node, args []*ast.Node, pos ast.Pos) (*ast.Node, signal, *diagnostics.Error) {
	arg := func(i int) *ast.Node {
		if i < len(args) && args[i] != nil {
			return args[i]
		}
		return ast.MakeEmpty(pos)
	}

	switch nativeName {

	// --- List ---
	case "List.map":
		out := make([]*ast.Node, len(self.Elements))
		for i, el := range self.Elements {
			v, err := it.callMethodArg(arg(0), []*ast.Node{el, ast.MakeInt(pos, int64(i), true), self}, pos)
			if err != nil {
				return nil, signal{}, err
			}
			out[i] = v
		}
		return ast.MakeList(pos, out, true), signal{}, nil

	case "List.flatmap":
		var out []*ast.Node
		for i, el := range self.Elements {
			v, err := it.callMethodArg(arg(0), []*ast.Node{el, ast.MakeInt(pos, int64(i), true), self}, pos)
			if err != nil {
				return nil, signal{}, err
			}
			if v.Kind == ast.List {
				out = append(out, v.Elements...)
			} else {
				out = append(out, v)
			}
		}
		return ast.MakeList(pos, out, true), signal{}, nil

	case "List.filter":
		var out []*ast.Node
		for i, el := range self.Elements {
			v, err := it.callMethodArg(arg(0), []*ast.Node{el, ast.MakeInt(pos, int64(i), true), self}, pos)
			if err != nil {
				return nil, signal{}, err
			}
			if isTruthy(v) {
				out = append(out, el)
			}
		}
		return ast.MakeList(pos, out, true), signal{}, nil

	case "List.foreach":
		for i, el := range self.Elements {
			if _, err := it.callMethodArg(arg(0), []*ast.Node{el, ast.MakeInt(pos, int64(i), true), self}, pos); err != nil {
				return nil, signal{}, err
			}
		}
		return ast.MakeEmpty(pos), signal{}, nil

	case "List.sort":
		out := append([]*ast.Node(nil), self.Elements...)
		cmp := arg(0)
		var sortErr *diagnostics.Error
		sort.SliceStable(out, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			if cmp.Kind == ast.Empty {
				return defaultLess(out[i], out[j])
			}
			v, err := it.callMethodArg(cmp, []*ast.Node{out[i], out[j]}, pos)
			if err != nil {
				sortErr = err
				return false
			}
			return isTruthy(v)
		})
		if sortErr != nil {
			return nil, signal{}, sortErr
		}
		self.Elements = out
		return self, signal{}, nil

	case "List.flatten":
		deep := isTruthy(arg(0))
		return ast.MakeList(pos, flattenList(self.Elements, deep), true), signal{}, nil

	case "List.append":
		self.Elements = append(self.Elements, arg(0))
		return self, signal{}, nil

	case "List.prepend":
		self.Elements = append([]*ast.Node{arg(0)}, self.Elements...)
		return self, signal{}, nil

	case "List.insert":
		i := clampIndex(arg(0).IntVal, len(self.Elements))
		self.Elements = append(self.Elements[:i], append([]*ast.Node{arg(1)}, self.Elements[i:]...)...)
		return self, signal{}, nil

	case "List.remove":
		i := clampIndex(arg(0).IntVal, len(self.Elements))
		if i >= len(self.Elements) {
			return self, signal{}, nil
		}
		self.Elements = append(self.Elements[:i], self.Elements[i+1:]...)
		return self, signal{}, nil

	case "List.clear":
		self.Elements = nil
		return self, signal{}, nil

	case "List.subsection":
		i := clampIndex(arg(0).IntVal, len(self.Elements))
		j := clampIndex(arg(1).IntVal, len(self.Elements))
		if j < i {
			j = i
		}
		return ast.MakeList(pos, append([]*ast.Node(nil), self.Elements[i:j]...), true), signal{}, nil

	// --- String ---
	case "String.chars":
		runes := []rune(self.StrVal)
		out := make([]*ast.Node, len(runes))
		for i, r := range runes {
			out[i] = ast.MakeString(pos, string(r), true)
		}
		return ast.MakeList(pos, out, true), signal{}, nil

	case "String.lower":
		return ast.MakeString(pos, strings.ToLower(self.StrVal), true), signal{}, nil

	case "String.upper":
		return ast.MakeString(pos, strings.ToUpper(self.StrVal), true), signal{}, nil

	case "String.split":
		sep := arg(0)
		var parts []string
		if sep.Kind == ast.Empty {
			parts = strings.Fields(self.StrVal)
		} else {
			parts = strings.Split(self.StrVal, sep.StrVal)
		}
		out := make([]*ast.Node, len(parts))
		for i, p := range parts {
			out[i] = ast.MakeString(pos, p, true)
		}
		return ast.MakeList(pos, out, true), signal{}, nil

	case "String.trim":
		return ast.MakeString(pos, strings.TrimSpace(self.StrVal), true), signal{}, nil

	case "String.append":
		self.StrVal = self.StrVal + arg(0).StrVal
		return self, signal{}, nil

	case "String.prepend":
		self.StrVal = arg(0).StrVal + self.StrVal
		return self, signal{}, nil

	case "String.insert":
		runes := []rune(self.StrVal)
		i := clampIndex(arg(0).IntVal, len(runes))
		out := append([]rune(nil), runes[:i]...)
		out = append(out, []rune(arg(1).StrVal)...)
		out = append(out, runes[i:]...)
		self.StrVal = string(out)
		return self, signal{}, nil

	case "String.replace_at":
		runes := []rune(self.StrVal)
		i := clampIndex(arg(0).IntVal, len(runes))
		if i < len(runes) {
			out := append([]rune(nil), runes[:i]...)
			out = append(out, []rune(arg(1).StrVal)...)
			out = append(out, runes[i+1:]...)
			self.StrVal = string(out)
		}
		return self, signal{}, nil

	case "String.remove":
		runes := []rune(self.StrVal)
		i := clampIndex(arg(0).IntVal, len(runes))
		if i < len(runes) {
			self.StrVal = string(append(append([]rune(nil), runes[:i]...), runes[i+1:]...))
		}
		return self, signal{}, nil

	case "String.replace":
		self.StrVal = strings.Replace(self.StrVal, arg(0).StrVal, arg(1).StrVal, 1)
		return self, signal{}, nil

	case "String.replace_all":
		self.StrVal = strings.ReplaceAll(self.StrVal, arg(0).StrVal, arg(1).StrVal)
		return self, signal{}, nil

	case "String.subsection":
		runes := []rune(self.StrVal)
		i := clampIndex(arg(0).IntVal, len(runes))
		j := clampIndex(arg(1).IntVal, len(runes))
		if j < i {
			j = i
		}
		return ast.MakeString(pos, string(runes[i:j]), true), signal{}, nil

	// --- Object ---
	case "Object.add":
		self.AddProp(arg(0).StrVal, arg(1))
		return self, signal{}, nil

	case "Object.delete":
		self.DeleteProp(arg(0).StrVal)
		return self, signal{}, nil

	case "Object.clear":
		for _, k := range append([]string(nil), self.PropOrder...) {
			self.DeleteProp(k)
		}
		return self, signal{}, nil

	// --- Function ---
	case "Function.patch":
		body := arg(0)
		if body.Kind == ast.Function && body.Body != nil && self.Body != nil {
			self.Body.Elements = append(self.Body.Elements, body.Body.Elements...)
		}
		return self, signal{}, nil
	}

	return nil, signal{}, it.errf(diagnostics.RuntimeError, pos.Line, pos.Column, "unknown method %q", nativeName)
}

func clampIndex(i int64, length int) int {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 {
		return 0
	}
	if i > int64(length) {
		return length
	}
	return int(i)
}

func defaultLess(a, b *ast.Node) bool {
	if isNumeric(a) && isNumeric(b) {
		return asFloat(a) < asFloat(b)
	}
	if a.Kind == ast.String && b.Kind == ast.String {
		return a.StrVal < b.StrVal
	}
	return false
}

func flattenList(elements []*ast.Node, deep bool) []*ast.Node {
	var out []*ast.Node
	for _, el := range elements {
		if el.Kind == ast.List {
			if deep {
				out = append(out, flattenList(el.Elements, true)...)
			} else {
				out = append(out, el.Elements...)
			}
		} else {
			out = append(out, el)
		}
	}
	return out
}
