package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dibsonthis/Glide/internal/ast"
)

func makeOverload(paramType *ast.Node) *ast.Node {
	f := ast.MakeFunction(pos)
	f.Params = []*ast.Param{{Name: "v", Type: paramType}}
	return f
}

func TestResolveOverloadPicksMatchingArm(t *testing.T) {
	intFn := makeOverload(ast.MakeInt(pos, 0, false))
	strFn := makeOverload(ast.MakeString(pos, "", false))
	set := ast.MakeFuncList(pos, []*ast.Node{intFn, strFn})

	chosen, err := ast.ResolveOverload(set, []*ast.Node{ast.MakeInt(pos, 5, true)}, ast.MatchOptions{})
	assert.NoError(t, err)
	assert.NotNil(t, chosen.Args[0])
	assert.Equal(t, int64(5), chosen.Args[0].IntVal)

	chosen, err = ast.ResolveOverload(set, []*ast.Node{ast.MakeString(pos, "hi", true)}, ast.MatchOptions{})
	assert.NoError(t, err)
	assert.Equal(t, "hi", chosen.Args[0].StrVal)
}

func TestResolveOverloadNoMatch(t *testing.T) {
	intFn := makeOverload(ast.MakeInt(pos, 0, false))
	set := ast.MakeFuncList(pos, []*ast.Node{intFn})

	_, err := ast.ResolveOverload(set, []*ast.Node{ast.MakeString(pos, "x", true)}, ast.MatchOptions{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no matching definition")
}

func TestResolveOverloadAnyReservedForLastArm(t *testing.T) {
	anyFn := makeOverload(ast.MakeAny(pos))
	intFn := makeOverload(ast.MakeInt(pos, 0, false))
	set := ast.MakeFuncList(pos, []*ast.Node{anyFn, intFn})

	// An Any-typed argument skips all but the last overload, since an
	// earlier match would be non-deterministic with respect to intFn.
	chosen, err := ast.ResolveOverload(set, []*ast.Node{ast.MakeAny(pos)}, ast.MatchOptions{})
	assert.NoError(t, err)
	assert.Equal(t, ast.Int, chosen.Params[0].Type.Kind)
}

func TestResolveOverloadPartialLeavesHoles(t *testing.T) {
	f := ast.MakeFunction(pos)
	f.Params = []*ast.Param{
		{Name: "a", Type: ast.MakeInt(pos, 0, false)},
		{Name: "b", Type: ast.MakeInt(pos, 0, false)},
	}
	set := ast.MakeFuncList(pos, []*ast.Node{f})

	chosen, err := ast.ResolveOverload(set, []*ast.Node{ast.MakeInt(pos, 1, true)}, ast.MatchOptions{})
	assert.NoError(t, err)
	assert.Len(t, chosen.Args, 2)
	assert.NotNil(t, chosen.Args[0])
	assert.Nil(t, chosen.Args[1])
}
