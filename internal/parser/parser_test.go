package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/parser"
)

func parseExpr(t *testing.T, src string) *ast.Node {
	t.Helper()
	prog, errs := parser.Parse("test.gl", src)
	require.Empty(t, errs)
	require.Len(t, prog.Elements, 1)
	return prog.Elements[0]
}

func TestParseArithmeticPrecedence(t *testing.T) {
	n := parseExpr(t, "1 + 2 * 3")
	require.Equal(t, ast.Op, n.Kind)
	assert.Equal(t, "+", n.OpSymbol)
	assert.Equal(t, ast.Int, n.Left.Kind)
	require.Equal(t, ast.Op, n.Right.Kind)
	assert.Equal(t, "*", n.Right.OpSymbol)
}

func TestParseAssignment(t *testing.T) {
	n := parseExpr(t, "x = 5")
	require.Equal(t, ast.Op, n.Kind)
	assert.Equal(t, "=", n.OpSymbol)
	assert.Equal(t, "x", n.Left.Name)
	assert.Equal(t, int64(5), n.Right.IntVal)
}

func TestParseTypedIdentifier(t *testing.T) {
	n := parseExpr(t, "x::int")
	require.Equal(t, ast.Id, n.Kind)
	require.NotNil(t, n.AllowedType)
	assert.Equal(t, "int", n.AllowedType.Name)
}

func TestParseListLiteral(t *testing.T) {
	n := parseExpr(t, "[1, 2, 3]")
	require.Equal(t, ast.List, n.Kind)
	assert.True(t, n.IsLiteral)
	assert.Len(t, n.Elements, 3)
}

func TestParseFunctionLiteralDisambiguatedFromList(t *testing.T) {
	n := parseExpr(t, "[x y] => x + y")
	require.Equal(t, ast.Function, n.Kind)
	assert.Len(t, n.Params, 2)
	assert.Equal(t, "x", n.Params[0].Name)
	assert.Equal(t, "y", n.Params[1].Name)
	require.NotNil(t, n.Body)
	assert.Len(t, n.Body.Elements, 1)
}

func TestParseFunctionLiteralWithTypesAndReturn(t *testing.T) {
	n := parseExpr(t, "[x::int y::int] :: int => x + y")
	require.Equal(t, ast.Function, n.Kind)
	require.NotNil(t, n.Params[0].Type)
	assert.Equal(t, "int", n.Params[0].Type.Name)
	require.NotNil(t, n.ReturnType)
	assert.Equal(t, "int", n.ReturnType.Name)
}

func TestParseObjectLiteral(t *testing.T) {
	n := parseExpr(t, `{x: 1, y: 2}`)
	require.Equal(t, ast.Object, n.Kind)
	assert.Equal(t, []string{"x", "y"}, n.PropOrder)
	assert.Equal(t, int64(1), n.Props["x"].IntVal)
}

func TestParseMemberAndIndex(t *testing.T) {
	n := parseExpr(t, "a.b[0]")
	require.Equal(t, ast.Op, n.Kind)
	assert.Equal(t, "[]", n.OpSymbol)
	require.Equal(t, ast.Op, n.Left.Kind)
	assert.Equal(t, ".", n.Left.OpSymbol)
	assert.Equal(t, "a", n.Left.Left.Name)
	assert.Equal(t, "b", n.Left.Right.Name)
}

func TestParseFuncCall(t *testing.T) {
	n := parseExpr(t, `f(1, name: 2, ...rest)`)
	require.Equal(t, ast.FuncCall, n.Kind)
	assert.Equal(t, "f", n.Left.Name)
	require.Len(t, n.Args, 3)
	assert.Equal(t, ast.Int, n.Args[0].Kind)
	assert.Equal(t, ":", n.Args[1].OpSymbol)
	assert.Equal(t, "name", n.Args[1].Left.Name)
	assert.Equal(t, "...", n.Args[2].OpSymbol)
}

func TestParseTuple(t *testing.T) {
	n := parseExpr(t, "(1, 2)")
	require.Equal(t, ast.CommaList, n.Kind)
	assert.Len(t, n.Elements, 2)
}

func TestParseParenGroupUnwrapsSingle(t *testing.T) {
	n := parseExpr(t, "(1 + 2)")
	require.Equal(t, ast.Op, n.Kind)
	assert.Equal(t, "+", n.OpSymbol)
}

func TestParsePartialOpFromHole(t *testing.T) {
	n := parseExpr(t, "_ + 1")
	require.Equal(t, ast.PartialOp, n.Kind)
	assert.Equal(t, "+", n.OpSymbol)
}

func TestParseUnionTypeAnnotation(t *testing.T) {
	n := parseExpr(t, "x::(int | string)")
	require.NotNil(t, n.AllowedType)
	assert.Equal(t, ast.PipeList, n.AllowedType.Kind)
	assert.Len(t, n.AllowedType.Elements, 2)
}

func TestParseSyntaxErrorRecovered(t *testing.T) {
	_, errs := parser.Parse("bad.gl", "x = )")
	assert.NotEmpty(t, errs)
}
