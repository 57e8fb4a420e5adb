package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dibsonthis/Glide/internal/ast"
)

var pos = ast.Pos{Line: 1, Column: 1}

func TestReprLiterals(t *testing.T) {
	assert.Equal(t, "5", ast.Repr(ast.MakeInt(pos, 5, true)))
	assert.Equal(t, "int", ast.Repr(ast.MakeInt(pos, 0, false)))
	assert.Equal(t, "3.5", ast.Repr(ast.MakeFloat(pos, 3.5, true)))
	assert.Equal(t, "true", ast.Repr(ast.MakeBool(pos, true, true)))
	assert.Equal(t, "bool", ast.Repr(ast.MakeBool(pos, true, false)))
	assert.Equal(t, "hello", ast.Repr(ast.MakeString(pos, "hello", true)))
	assert.Equal(t, "string", ast.Repr(ast.MakeString(pos, "hello", false)))
	assert.Equal(t, "null", ast.Repr(ast.MakeEmpty(pos)))
	assert.Equal(t, "any", ast.Repr(ast.MakeAny(pos)))
	assert.Equal(t, "x", ast.Repr(ast.MakeId(pos, "x")))
}

func TestReprList(t *testing.T) {
	l := ast.MakeList(pos, []*ast.Node{
		ast.MakeInt(pos, 1, true),
		ast.MakeString(pos, "a", true),
	}, true)
	assert.Equal(t, `[ 1 "a" ]`, ast.Repr(l))

	typeView := ast.MakeList(pos, nil, false)
	assert.Equal(t, "list", ast.Repr(typeView))
}

func TestReprObject(t *testing.T) {
	obj := ast.MakeObject(pos, true)
	obj.AddProp("x", ast.MakeInt(pos, 1, true))
	obj.AddProp("y", ast.MakeInt(pos, 2, true))
	assert.Equal(t, "{\n  x: 1\n  y: 2\n}", ast.Repr(obj))

	named := ast.MakeObject(pos, true)
	named.TypeName = "Point"
	assert.Equal(t, "Point", ast.Repr(named))
}

func TestReprFunction(t *testing.T) {
	fn := ast.MakeFunction(pos)
	fn.Params = []*ast.Param{
		{Name: "x"},
	}
	assert.Equal(t, "[ x::any ] => any", ast.Repr(fn))
}

func TestReprPipeList(t *testing.T) {
	pl := ast.MakePipeList(pos, []*ast.Node{
		ast.MakeInt(pos, 1, true),
		ast.MakeString(pos, "a", true),
	})
	assert.Equal(t, `1 | "a"`, ast.Repr(pl))
}

func TestTypeReprCollapsesLiterals(t *testing.T) {
	assert.Equal(t, "int", ast.TypeRepr(ast.MakeInt(pos, 5, true)))
	assert.Equal(t, "string", ast.TypeRepr(ast.MakeString(pos, "x", true)))
}

func TestTypeReprFunctionReturnsTypeView(t *testing.T) {
	fn := ast.MakeFunction(pos)
	fn.ReturnType = ast.MakeInt(pos, 0, true)
	assert.Equal(t, "[ ] => int", ast.TypeRepr(fn))
}
