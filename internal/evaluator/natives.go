package evaluator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
	"github.com/dibsonthis/Glide/internal/pipeline"
)

// nativeBuiltins lists the host functions the bootstrap file's
// double-underscore symbols resolve to (§4.9/§6), grounded on
// original Glide's builtin_exit/error/range/print/delete/read/write/
// append/time/import/to_int/to_float/to_string/type/shape.
var nativeBuiltins = []struct {
	name     string
	params   []string
	variadic bool
}{
	{"__exit", []string{"code"}, false},
	{"__error", []string{"message"}, false},
	{"__range", []string{"start", "end"}, false},
	{"__print", []string{"values"}, true},
	{"__read", []string{"path"}, false},
	{"__write", []string{"path", "content"}, false},
	{"__append", []string{"path", "content"}, false},
	{"__time", nil, false},
	{"__import", []string{"path"}, false},
	{"__to_int", []string{"value"}, false},
	{"__to_float", []string{"value"}, false},
	{"__to_string", []string{"value"}, false},
	{"__type", []string{"value"}, false},
	{"__shape", []string{"value"}, false},
	{"__readdir", []string{"pattern"}, false},
}

// RegisterNatives defines every host builtin in env, each as a
// Function Node whose NativeName routes calls to callNative instead
// of the ordinary user-function body evaluator.
func RegisterNatives(env *Environment) {
	pos := ast.Pos{}
	for _, b := range nativeBuiltins {
		fn := ast.MakeFunction(pos)
		fn.NativeName = b.name
		fn.FuncName = b.name
		for i, p := range b.params {
			variadic := b.variadic && i == len(b.params)-1
			fn.Params = append(fn.Params, &ast.Param{Name: p, Variadic: variadic})
		}
		env.Define(b.name, fn)
	}
	for name, shape := range BaseTypeShapes() {
		env.Define(name, shape)
	}
}

// BaseTypeShapes returns the type-view values `int`, `float`, `bool`,
// `string`, and `any` resolve to wherever a type annotation names them
// (§4.8: "types ARE values", and §3's identifier `::` annotation is an
// ordinary expression evaluated against the environment). A type
// annotation is just an `Id` node parsed in type position, so without
// these bindings `x::int` would fail with "undefined symbol" the first
// time anything tried to evaluate it.
func BaseTypeShapes() map[string]*ast.Node {
	pos := ast.Pos{}
	return map[string]*ast.Node{
		"int":    ast.MakeInt(pos, 0, false),
		"float":  ast.MakeFloat(pos, 0, false),
		"bool":   ast.MakeBool(pos, false, false),
		"string": ast.MakeString(pos, "", false),
		"any":    ast.MakeAny(pos),
	}
}

func (it *Interpreter) callNative(fn *ast.Node, line, col int) (*ast.Node, signal, *diagnostics.Error) {
	pos := ast.Pos{Line: line, Column: col}
	arg := func(i int) *ast.Node {
		if i < len(fn.Args) && fn.Args[i] != nil {
			return fn.Args[i]
		}
		return ast.MakeEmpty(pos)
	}

	if self, ok := fn.Closure["__self"]; ok {
		return it.callBoundMethod(fn.NativeName, self, fn.Args, pos)
	}

	switch fn.NativeName {
	case "__exit":
		code := int(arg(0).IntVal)
		os.Exit(code)
		return ast.MakeEmpty(pos), signal{}, nil

	case "__error":
		return nil, signal{}, it.errf(diagnostics.RuntimeError, line, col, "%s", ast.Repr(arg(0)))

	case "__range":
		start, end := arg(0), arg(1)
		rangeNode := ast.MakeRange(pos, toInt(start), toInt(end))
		return it.evalRange(rangeNode, it.Global)

	case "__print":
		parts := arg(0)
		strs := make([]any, 0, len(parts.Elements))
		for _, e := range parts.Elements {
			strs = append(strs, printable(e))
		}
		fmt.Println(strs...)
		return ast.MakeEmpty(pos), signal{}, nil

	case "__read":
		data, err := os.ReadFile(arg(0).StrVal)
		if err != nil {
			return nil, signal{}, it.errf(diagnostics.RuntimeError, line, col, "read %q: %s", arg(0).StrVal, err)
		}
		return ast.MakeString(pos, string(data), true), signal{}, nil

	case "__write":
		if err := os.WriteFile(arg(0).StrVal, []byte(arg(1).StrVal), 0o644); err != nil {
			return nil, signal{}, it.errf(diagnostics.RuntimeError, line, col, "write %q: %s", arg(0).StrVal, err)
		}
		return ast.MakeEmpty(pos), signal{}, nil

	case "__append":
		path := arg(0).StrVal
		f, oerr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if oerr != nil {
			return nil, signal{}, it.errf(diagnostics.RuntimeError, line, col, "append %q: %s", path, oerr)
		}
		_, werr := f.WriteString(arg(1).StrVal)
		cerr := f.Close()
		if werr != nil {
			return nil, signal{}, it.errf(diagnostics.RuntimeError, line, col, "append %q: %s", path, werr)
		}
		if cerr != nil {
			return nil, signal{}, it.errf(diagnostics.RuntimeError, line, col, "append %q: %s", path, cerr)
		}
		return ast.MakeEmpty(pos), signal{}, nil

	case "__time":
		return ast.MakeInt(pos, time.Now().UnixMilli(), true), signal{}, nil

	case "__import":
		return it.doImport(arg(0).StrVal, line, col)

	case "__to_int":
		return toIntNode(arg(0), pos), signal{}, nil

	case "__to_float":
		return toFloatNode(arg(0), pos), signal{}, nil

	case "__to_string":
		return ast.MakeString(pos, printable(arg(0)), true), signal{}, nil

	case "__type":
		return ast.MakeString(pos, arg(0).Kind.String(), true), signal{}, nil

	case "__shape":
		return toShape(arg(0)), signal{}, nil

	case "__readdir":
		return it.readdir(arg(0).StrVal, pos)
	}

	return nil, signal{}, it.errf(diagnostics.RuntimeError, line, col, "unknown native %q", fn.NativeName)
}

func toInt(n *ast.Node) int64 {
	if n.Kind == ast.Float {
		return int64(n.FloatVal)
	}
	return n.IntVal
}

func printable(n *ast.Node) string {
	if n.Kind == ast.String {
		return n.StrVal
	}
	return ast.Repr(n)
}

func toIntNode(n *ast.Node, pos ast.Pos) *ast.Node {
	switch n.Kind {
	case ast.Int:
		return n
	case ast.Float:
		return ast.MakeInt(pos, int64(n.FloatVal), true)
	case ast.Bool:
		if n.BoolVal {
			return ast.MakeInt(pos, 1, true)
		}
		return ast.MakeInt(pos, 0, true)
	case ast.String:
		v, _ := strconv.ParseInt(n.StrVal, 10, 64)
		return ast.MakeInt(pos, v, true)
	default:
		return ast.MakeInt(pos, 0, true)
	}
}

func toFloatNode(n *ast.Node, pos ast.Pos) *ast.Node {
	switch n.Kind {
	case ast.Float:
		return n
	case ast.Int:
		return ast.MakeFloat(pos, float64(n.IntVal), true)
	case ast.String:
		v, _ := strconv.ParseFloat(n.StrVal, 64)
		return ast.MakeFloat(pos, v, true)
	default:
		return ast.MakeFloat(pos, 0, true)
	}
}

// toShape renders a concrete value as its type-view (§4.8's
// "shape(x)" abstraction): literal payloads drop to kind markers,
// lists keep one representative element's shape, objects keep every
// property's shape.
func toShape(n *ast.Node) *ast.Node {
	pos := ast.Pos{Line: n.Line, Column: n.Column}
	switch n.Kind {
	case ast.Int:
		return &ast.Node{Kind: ast.Int, IsLiteral: false}
	case ast.Float:
		return &ast.Node{Kind: ast.Float, IsLiteral: false}
	case ast.Bool:
		return &ast.Node{Kind: ast.Bool, IsLiteral: false}
	case ast.String:
		return &ast.Node{Kind: ast.String, IsLiteral: false}
	case ast.Empty:
		return ast.MakeEmpty(pos)
	case ast.List:
		var elem *ast.Node
		if len(n.Elements) > 0 {
			elem = toShape(n.Elements[0])
		}
		var elems []*ast.Node
		if elem != nil {
			elems = []*ast.Node{elem}
		}
		return ast.MakeList(pos, elems, false)
	case ast.Object:
		out := ast.MakeObject(pos, false)
		out.TypeName = n.TypeName
		for _, k := range n.PropOrder {
			out.AddProp(k, toShape(n.Props[k]))
		}
		return out
	case ast.Function:
		cp := ast.Clone(n)
		cp.IsLiteral = false
		cp.Args = nil
		return cp
	default:
		return n
	}
}

// readdir resolves a glob pattern (relative to it.BaseDir unless
// absolute) against the filesystem via doublestar, which is what lets
// import search paths use "**"-style recursive patterns (grounded on
// termfx-morfx's directory walker).
func (it *Interpreter) readdir(pattern string, pos ast.Pos) (*ast.Node, signal, *diagnostics.Error) {
	full := pattern
	if !filepath.IsAbs(full) {
		full = filepath.Join(it.BaseDir, pattern)
	}
	full = filepath.ToSlash(full)
	matches, err := doublestar.FilepathGlob(full)
	if err != nil {
		return nil, signal{}, it.errf(diagnostics.RuntimeError, pos.Line, pos.Column, "readdir %q: %s", pattern, err)
	}
	sort.Strings(matches)
	out := make([]*ast.Node, len(matches))
	for i, m := range matches {
		out[i] = ast.MakeString(pos, m, true)
	}
	return ast.MakeList(pos, out, true), signal{}, nil
}

// doImport lexes, parses, and evaluates path's top-level statements in
// a fresh scope enclosed by the global builtins, returning its
// surviving bindings as an Object (the module's exports). Results are
// cached by resolved absolute path so re-importing the same file
// within one run is idempotent and cheap (§4.9).
func (it *Interpreter) doImport(path string, line, col int) (*ast.Node, signal, *diagnostics.Error) {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(it.BaseDir, resolved)
	}
	resolved = filepath.Clean(resolved)

	if cached, ok := it.imports[resolved]; ok {
		return cached, signal{}, nil
	}

	ctx, err := pipeline.Run(resolved)
	if err != nil {
		return nil, signal{}, diagnostics.WrapImport(path, it.errf(diagnostics.ImportError, line, col, "%s", err))
	}
	if !ctx.OK() {
		return nil, signal{}, diagnostics.WrapImport(path, ctx.Errors[0])
	}

	child := &Interpreter{
		File:    resolved,
		Global:  it.Global,
		imports: it.imports,
		BaseDir: filepath.Dir(resolved),
	}
	moduleScope := NewEnclosed(it.Global)
	for _, stmt := range ctx.Program.Elements {
		_, sig, err := child.Eval(stmt, moduleScope)
		if err != nil {
			return nil, signal{}, diagnostics.WrapImport(path, err)
		}
		if sig.kind == signalReturn {
			break
		}
	}

	names := make([]string, 0, len(moduleScope.store))
	for name := range moduleScope.store {
		names = append(names, name)
	}
	sort.Strings(names)
	exports := ast.MakeObject(ast.Pos{Line: line, Column: col}, true)
	for _, name := range names {
		exports.AddProp(name, moduleScope.store[name])
	}
	it.imports[resolved] = exports
	return exports, signal{}, nil
}
