package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
)

func TestInferOpArithmeticYieldsInt(t *testing.T) {
	c := New("test.gl")
	scope := NewScope(nil)
	n := ast.MakeOp(ast.Pos{}, "+", ast.MakeInt(ast.Pos{}, 1, true), ast.MakeInt(ast.Pos{}, 2, true), true)
	shape := c.infer(n, scope)
	assert.Equal(t, ast.Int, shape.Kind)
	assert.Empty(t, c.Errors)
}

func TestInferOpStringConcatYieldsString(t *testing.T) {
	c := New("test.gl")
	scope := NewScope(nil)
	n := ast.MakeOp(ast.Pos{}, "+", ast.MakeString(ast.Pos{}, "a", true), ast.MakeString(ast.Pos{}, "b", true), true)
	shape := c.infer(n, scope)
	assert.Equal(t, ast.String, shape.Kind)
}

func TestInferCallFuncListReportsArgTypeErrorOnNoMatch(t *testing.T) {
	c := New("test.gl")
	scope := NewScope(nil)

	intFn := ast.MakeFunction(ast.Pos{})
	intFn.Params = []*ast.Param{{Name: "v", Type: &ast.Node{Kind: ast.Int}}}
	strFn := ast.MakeFunction(ast.Pos{})
	strFn.Params = []*ast.Param{{Name: "v", Type: &ast.Node{Kind: ast.String}}}
	set := ast.MakeFuncList(ast.Pos{}, []*ast.Node{intFn, strFn})
	scope.Define("f", set)

	call := &ast.Node{Kind: ast.FuncCall, Left: ast.MakeId(ast.Pos{}, "f"), Args: []*ast.Node{
		ast.MakeBool(ast.Pos{}, true, true),
	}}
	c.infer(call, scope)
	require.NotEmpty(t, c.Errors)
	assert.Equal(t, diagnostics.ArgTypeError, c.Errors[0].Class)
}

func TestInferCallFuncListResolvesMatchingArm(t *testing.T) {
	c := New("test.gl")
	scope := NewScope(nil)

	intFn := ast.MakeFunction(ast.Pos{})
	intFn.Params = []*ast.Param{{Name: "v", Type: &ast.Node{Kind: ast.Int}}}
	intFn.ReturnType = &ast.Node{Kind: ast.Int}
	set := ast.MakeFuncList(ast.Pos{}, []*ast.Node{intFn})
	scope.Define("f", set)

	call := &ast.Node{Kind: ast.FuncCall, Left: ast.MakeId(ast.Pos{}, "f"), Args: []*ast.Node{
		ast.MakeInt(ast.Pos{}, 5, true),
	}}
	shape := c.infer(call, scope)
	assert.Empty(t, c.Errors)
	assert.Equal(t, ast.Int, shape.Kind)
}

func TestInferCallPlainFunctionArgMismatch(t *testing.T) {
	c := New("test.gl")
	scope := NewScope(nil)

	fnShape := ast.MakeFunction(ast.Pos{})
	fnShape.Params = []*ast.Param{{Name: "v", Type: &ast.Node{Kind: ast.Int}}}
	fnShape.ReturnType = &ast.Node{Kind: ast.Int}
	scope.Define("f", fnShape)

	call := &ast.Node{Kind: ast.FuncCall, Left: ast.MakeId(ast.Pos{}, "f"), Args: []*ast.Node{
		ast.MakeString(ast.Pos{}, "oops", true),
	}}
	c.infer(call, scope)
	require.NotEmpty(t, c.Errors)
	assert.Equal(t, diagnostics.ArgTypeError, c.Errors[0].Class)
}

func TestInferIfStatementUnionsBranchShapes(t *testing.T) {
	c := New("test.gl")
	scope := NewScope(nil)
	n := &ast.Node{
		Kind: ast.IfStatement,
		Left: ast.MakeBool(ast.Pos{}, true, true),
		Body: ast.MakeBlock(ast.Pos{}, []*ast.Node{ast.MakeInt(ast.Pos{}, 1, true)}),
		Right: ast.MakeBlock(ast.Pos{}, []*ast.Node{ast.MakeString(ast.Pos{}, "x", true)}),
	}
	shape := c.infer(n, scope)
	assert.Equal(t, ast.PipeList, shape.Kind)
	assert.Len(t, shape.Elements, 2)
}
