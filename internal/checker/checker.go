// Package checker implements the type checker as an abstract
// interpreter: it walks the same ast.Node tree the evaluator executes,
// but every literal value is replaced by its shape (a type-view Node,
// IsLiteral false) and no side effect ever reaches the real world
// (§4.8). Where the evaluator calls a function, the checker matches
// argument shapes against declared parameter types and infers a
// return shape from the union of the body's return paths, instead of
// actually running the body.
package checker

import (
	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
)

// Scope is the checker's symbol table: names bound to shapes, chained
// to an enclosing scope exactly like the evaluator's Environment.
type Scope struct {
	vars  map[string]*ast.Node
	outer *Scope
}

func NewScope(outer *Scope) *Scope {
	return &Scope{vars: map[string]*ast.Node{}, outer: outer}
}

func (s *Scope) Get(name string) (*ast.Node, bool) {
	if v, ok := s.vars[name]; ok {
		return v, true
	}
	if s.outer != nil {
		return s.outer.Get(name)
	}
	return nil, false
}

func (s *Scope) Define(name string, shape *ast.Node) { s.vars[name] = shape }

// Checker carries the file under check and a recursion guard so a
// self-referential function's return-type inference bails out to Any
// rather than looping forever (§4.8's "file/func1/func2" guard).
type Checker struct {
	File    string
	chain   []string
	guard   map[string]bool
	Errors  []*diagnostics.Error
}

func New(file string) *Checker {
	return &Checker{File: file, guard: map[string]bool{}}
}

func (c *Checker) report(class diagnostics.Class, line, col int, format string, args ...any) {
	chain := append([]string(nil), c.chain...)
	c.Errors = append(c.Errors, diagnostics.New(class, c.File, chain, line, col, format, args...))
}

// CheckProgram type-checks every top-level statement, returning
// whatever diagnostics accumulated. A program with zero diagnostics is
// not proven correct in every dynamic branch (the checker is
// conservative, not exhaustive, on constructs whose shape depends on
// runtime control flow it can't fully statically resolve) but every
// annotated function boundary and every match block it CAN see gets
// checked.
func CheckProgram(file string, program *ast.Node) []*diagnostics.Error {
	c := New(file)
	scope := NewScope(nil)
	seedBaseTypes(scope)
	for _, stmt := range program.Elements {
		c.infer(stmt, scope)
	}
	return c.Errors
}

// bindTyped mirrors the evaluator's assignment-time allowed_type
// handling (§4.5) in shape space: it resolves id's `::` annotation
// against scope, refuses to re-annotate an already-typed binding with
// anything but Any, checks shape against whichever allowed_type
// applies, and returns shape tagged with it so a later bare
// reassignment is still checked against the original annotation.
func (c *Checker) bindTyped(id *ast.Node, shape *ast.Node, scope *Scope) *ast.Node {
	existing, hasExisting := scope.Get(id.Name)

	var allowedType *ast.Node
	if hasExisting {
		allowedType = existing.AllowedType
	}

	if id.AllowedType != nil {
		resolved := typeView(c.infer(id.AllowedType, scope))
		if allowedType != nil && resolved.Kind != ast.Any {
			c.report(diagnostics.TypeError, id.Line, id.Column,
				"%q is already annotated as %s; re-annotation is forbidden", id.Name, ast.TypeRepr(allowedType))
		} else {
			allowedType = resolved
		}
	}

	if allowedType == nil {
		return shape
	}

	if ok, msg := ast.Match(allowedType, shape, ast.MatchOptions{}); !ok {
		c.report(diagnostics.TypeError, id.Line, id.Column,
			"%s does not satisfy %s: %s", ast.TypeRepr(shape), ast.TypeRepr(allowedType), msg)
	}

	bound := *shape
	bound.AllowedType = allowedType
	return &bound
}

// typeView mirrors the evaluator's annotation-resolution rule: a
// Function shape used in type position becomes a refinement
// (IsType true); everything else just collapses to its kind carrier.
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

// seedBaseTypes binds `int`, `float`, `bool`, `string`, and `any` to
// their type-view shapes in the global scope, mirroring the
// evaluator's base-type bindings (internal/evaluator.BaseTypeShapes)
// so a bare `x::int` annotation resolves the same way at check time
// as it does at run time instead of falling through to Any.
func seedBaseTypes(scope *Scope) {
	pos := ast.Pos{}
	scope.Define("int", ast.MakeInt(pos, 0, false))
	scope.Define("float", ast.MakeFloat(pos, 0, false))
	scope.Define("bool", ast.MakeBool(pos, false, false))
	scope.Define("string", ast.MakeString(pos, "", false))
	scope.Define("any", ast.MakeAny(pos))
}

// infer returns n's shape: a type-view Node for expressions, or Any
// when the checker can't usefully narrow further. It never mutates
// real program state — only Scope bindings, which hold shapes.
func (c *Checker) infer(n *ast.Node, scope *Scope) *ast.Node {
	if n == nil {
		return anyShape()
	}
	switch n.Kind {
	case ast.Int, ast.Float, ast.Bool, ast.String:
		shape := *n
		shape.IsLiteral = false
		return &shape
	case ast.Empty, ast.Any, ast.Type:
		return n
	case ast.Id:
		if shape, ok := scope.Get(n.Name); ok {
			return shape
		}
		return anyShape()
	case ast.List:
		return c.inferList(n, scope)
	case ast.Object:
		return c.inferObject(n, scope)
	case ast.Function:
		return c.inferFunctionLiteral(n, scope)
	case ast.Range:
		return ast.MakeList(pos(n), []*ast.Node{&ast.Node{Kind: ast.Int, IsLiteral: false}}, false)
	case ast.Copy:
		return c.infer(n.Left, scope)
	case ast.Op, ast.PartialOp:
		return c.inferOp(n, scope)
	case ast.Block:
		return c.inferBlock(n, scope)
	case ast.FuncCall:
		return c.inferCall(n, scope)
	case ast.IfStatement:
		c.infer(n.Left, scope)
		thenShape := c.infer(n.Body, NewScope(scope))
		if n.Right == nil {
			return anyShape()
		}
		elseShape := c.infer(n.Right, NewScope(scope))
		return ast.Union(pos(n), thenShape, elseShape)
	case ast.IfBlock:
		return c.inferIfBlock(n, scope)
	case ast.MatchBlock:
		return c.inferMatchBlock(n, scope)
	case ast.ForLoop:
		c.infer(n.Left, scope)
		c.infer(n.Body, NewScope(scope))
		return anyShape()
	case ast.WhileLoop:
		c.infer(n.Left, scope)
		c.infer(n.Body, NewScope(scope))
		return anyShape()
	case ast.Return, ast.Break, ast.Continue:
		return c.infer(n.Left, scope)
	default:
		return anyShape()
	}
}

func anyShape() *ast.Node { return &ast.Node{Kind: ast.Any} }

func pos(n *ast.Node) ast.Pos { return ast.Pos{Line: n.Line, Column: n.Column} }

func (c *Checker) inferList(n *ast.Node, scope *Scope) *ast.Node {
	var elemShapes []*ast.Node
	for _, e := range n.Elements {
		elemShapes = append(elemShapes, c.infer(e, scope))
	}
	var elem *ast.Node
	if len(elemShapes) > 0 {
		elem = ast.Union(pos(n), elemShapes...)
	}
	var elems []*ast.Node
	if elem != nil {
		elems = []*ast.Node{elem}
	}
	return ast.MakeList(pos(n), elems, false)
}

func (c *Checker) inferObject(n *ast.Node, scope *Scope) *ast.Node {
	shape := ast.MakeObject(pos(n), false)
	for _, k := range n.PropOrder {
		shape.AddProp(k, c.infer(n.Props[k], scope))
	}
	return shape
}

func (c *Checker) inferBlock(n *ast.Node, scope *Scope) *ast.Node {
	last := anyShape()
	for _, stmt := range n.Elements {
		last = c.infer(stmt, scope)
	}
	return last
}

// inferFunctionLiteral binds each parameter to its declared type (Any
// when unannotated) and infers the return shape as the union of every
// `ret` expression's shape reachable in the body, honoring an explicit
// ReturnType annotation by checking it's compatible rather than
// overriding it.
func (c *Checker) inferFunctionLiteral(n *ast.Node, scope *Scope) *ast.Node {
	key := c.File
	for _, f := range c.chain {
		key += "/" + f
	}
	key += "/" + n.FuncName
	if c.guard[key] {
		return anyShape() // recursive: break the cycle, infer Any
	}
	c.guard[key] = true
	c.chain = append(c.chain, n.FuncName)
	defer func() {
		c.chain = c.chain[:len(c.chain)-1]
		delete(c.guard, key)
	}()

	bodyScope := NewScope(scope)
	for _, p := range n.Params {
		shape := anyShape()
		if p.Type != nil {
			shape = p.Type
		}
		bodyScope.Define(p.Name, shape)
	}
	returns := collectReturnShapes(c, n.Body, bodyScope)
	inferred := ast.Union(pos(n), returns...)
	if n.ReturnType != nil {
		if ok, msg := ast.Match(n.ReturnType, withLiteralHint(inferred), ast.MatchOptions{}); !ok {
			c.report(diagnostics.TypeError, n.Line, n.Column, "function %s: inferred return shape does not satisfy declared return type: %s", n.FuncName, msg)
		}
		return n.ReturnType
	}
	return inferred
}

// withLiteralHint lets a shape whose Kind carries no literal payload
// still satisfy refinement/literal annotations during inference; the
// checker can't run a refinement (no Invoker), so Match's rule 4 falls
// back to a shape-only check, which this leaves untouched.
func withLiteralHint(n *ast.Node) *ast.Node { return n }

func collectReturnShapes(c *Checker, n *ast.Node, scope *Scope) []*ast.Node {
	if n == nil {
		return nil
	}
	var out []*ast.Node
	switch n.Kind {
	case ast.Return:
		out = append(out, c.infer(n.Left, scope))
	case ast.Block:
		for _, stmt := range n.Elements {
			out = append(out, collectReturnShapes(c, stmt, scope)...)
		}
	case ast.IfStatement:
		out = append(out, collectReturnShapes(c, n.Body, NewScope(scope))...)
		out = append(out, collectReturnShapes(c, n.Right, NewScope(scope))...)
	case ast.IfBlock, ast.MatchBlock:
		for _, cs := range n.Cases {
			out = append(out, collectReturnShapes(c, cs.Body, NewScope(scope))...)
		}
	case ast.ForLoop, ast.WhileLoop:
		out = append(out, collectReturnShapes(c, n.Body, NewScope(scope))...)
	}
	return out
}

func (c *Checker) inferIfBlock(n *ast.Node, scope *Scope) *ast.Node {
	var shapes []*ast.Node
	for _, cs := range n.Cases {
		if cs.Cond != nil {
			c.infer(cs.Cond, scope)
		}
		shapes = append(shapes, c.infer(cs.Body, NewScope(scope)))
	}
	return ast.Union(pos(n), shapes...)
}

// inferMatchBlock checks exhaustiveness when the discriminant's shape
// is a known PipeList: every alternative must be covered by at least
// one case's pattern kind, or a trailing `else` must be present
// (§4.8).
func (c *Checker) inferMatchBlock(n *ast.Node, scope *Scope) *ast.Node {
	discShape := c.infer(n.Left, scope)
	var shapes []*ast.Node
	hasElse := false
	var coveredKinds []ast.Kind
	for _, cs := range n.Cases {
		caseScope := NewScope(scope)
		if cs.Cond == nil {
			hasElse = true
		} else {
			bindPatternShapes(cs.Cond, caseScope)
			coveredKinds = append(coveredKinds, patternKinds(cs.Cond)...)
		}
		shapes = append(shapes, c.infer(cs.Body, caseScope))
	}
	if discShape.Kind == ast.PipeList && !hasElse {
		for _, alt := range discShape.Elements {
			covered := false
			for _, k := range coveredKinds {
				if k == alt.Kind {
					covered = true
					break
				}
			}
			if !covered {
				c.report(diagnostics.TypeError, n.Line, n.Column, "match block is not exhaustive: no case covers %s", ast.TypeRepr(alt))
			}
		}
	}
	return ast.Union(pos(n), shapes...)
}

// bindPatternShapes binds an Id pattern's name to Any in the case
// scope, mirroring the evaluator's bind-on-match semantics.
func bindPatternShapes(pattern *ast.Node, scope *Scope) {
	switch pattern.Kind {
	case ast.Id:
		scope.Define(pattern.Name, anyShape())
	case ast.Op:
		if pattern.OpSymbol == "..." && pattern.Right != nil {
			scope.Define(pattern.Right.Name, ast.MakeList(ast.Pos{}, nil, false))
		}
	case ast.List:
		for _, e := range pattern.Elements {
			bindPatternShapes(e, scope)
		}
	case ast.Object:
		for _, k := range pattern.PropOrder {
			bindPatternShapes(pattern.Props[k], scope)
		}
	}
}

func patternKinds(pattern *ast.Node) []ast.Kind {
	switch pattern.Kind {
	case ast.Empty:
		return nil // wildcard: doesn't single out one kind
	default:
		return []ast.Kind{pattern.Kind}
	}
}

func (c *Checker) inferOp(n *ast.Node, scope *Scope) *ast.Node {
	switch n.OpSymbol {
	case ".":
		left := c.infer(n.Left, scope)
		if left.Kind == ast.Object {
			if shape, ok := left.Props[n.Right.Name]; ok {
				return shape
			}
		}
		return anyShape()
	case "[]":
		left := c.infer(n.Left, scope)
		c.infer(n.Right, scope)
		switch left.Kind {
		case ast.List:
			if len(left.Elements) > 0 {
				return left.Elements[0]
			}
			return anyShape()
		case ast.String:
			return &ast.Node{Kind: ast.String}
		}
		return anyShape()
	case "=":
		shape := c.infer(n.Right, scope)
		if n.Left.Kind == ast.Id {
			shape = c.bindTyped(n.Left, shape, scope)
			scope.Define(n.Left.Name, shape)
		} else {
			c.infer(n.Left, scope)
		}
		return shape
	case "==", "!=", "<", "<=", ">", ">=", "&&", "||", "!":
		if n.Left != nil {
			c.infer(n.Left, scope)
		}
		if n.Right != nil {
			c.infer(n.Right, scope)
		}
		return &ast.Node{Kind: ast.Bool}
	case ">>":
		c.infer(n.Left, scope)
		return c.infer(n.Right, scope)
	default:
		left := anyShape()
		if n.Left != nil {
			left = c.infer(n.Left, scope)
		}
		right := anyShape()
		if n.Right != nil {
			right = c.infer(n.Right, scope)
		}
		if left.Kind == ast.String && right.Kind == ast.String {
			return &ast.Node{Kind: ast.String}
		}
		if left.Kind == ast.Float || right.Kind == ast.Float {
			return &ast.Node{Kind: ast.Float}
		}
		if left.Kind == ast.Int && right.Kind == ast.Int {
			return &ast.Node{Kind: ast.Int}
		}
		return anyShape()
	}
}

// inferCall matches each argument's inferred shape against the
// callee's declared parameter types when the callee resolves to a
// concrete Function or FuncList shape; otherwise it conservatively
// infers Any rather than guessing.
func (c *Checker) inferCall(n *ast.Node, scope *Scope) *ast.Node {
	callee := c.infer(n.Left, scope)
	var argShapes []*ast.Node
	for _, a := range n.Args {
		if a.Kind == ast.Op && (a.OpSymbol == ":" || a.OpSymbol == "...") {
			argShapes = append(argShapes, c.infer(a.Right, scope))
			continue
		}
		argShapes = append(argShapes, c.infer(a, scope))
	}

	switch callee.Kind {
	case ast.FuncList:
		target, err := ast.ResolveOverload(callee, argShapes, ast.MatchOptions{})
		if err != nil {
			c.report(diagnostics.ArgTypeError, n.Line, n.Column, "%s", err.Error())
			return anyShape()
		}
		return c.returnShapeOf(target, scope)
	case ast.Function:
		for i, p := range callee.Params {
			if i >= len(argShapes) || p.Type == nil {
				continue
			}
			if ok, msg := ast.Match(p.Type, argShapes[i], ast.MatchOptions{}); !ok {
				c.report(diagnostics.ArgTypeError, n.Line, n.Column, "argument %q: %s", p.Name, msg)
			}
		}
		return c.returnShapeOf(callee, scope)
	default:
		return anyShape()
	}
}

func (c *Checker) returnShapeOf(fn *ast.Node, scope *Scope) *ast.Node {
	if fn.ReturnType != nil {
		return fn.ReturnType
	}
	return anyShape()
}
