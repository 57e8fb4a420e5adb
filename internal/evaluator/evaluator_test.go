package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
	"github.com/dibsonthis/Glide/internal/evaluator"
	"github.com/dibsonthis/Glide/internal/parser"
)

// runProgram parses src and evaluates every top-level statement in a
// fresh environment (natives registered, no bootstrap loaded), and
// returns the last statement's result.
func runProgram(t *testing.T, src string) (*ast.Node, *diagnostics.Error) {
	t.Helper()
	prog, errs := parser.Parse("test.gl", src)
	require.Empty(t, errs)

	env := evaluator.NewEnvironment()
	evaluator.RegisterNatives(env)
	it := evaluator.New("test.gl", env)

	var last *ast.Node
	for _, stmt := range prog.Elements {
		val, _, err := it.Eval(stmt, env)
		if err != nil {
			return nil, err
		}
		last = val
	}
	return last, nil
}

func TestEvalArithmetic(t *testing.T) {
	result, err := runProgram(t, "1 + 2 * 3")
	require.Nil(t, err)
	require.Equal(t, ast.Int, result.Kind)
	assert.Equal(t, int64(7), result.IntVal)
}

func TestEvalTypedFunctionArgTypeErrorAborts(t *testing.T) {
	_, err := runProgram(t, `
f = [x::int] => x + 1
f("bad")
`)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.ArgTypeError, err.Class)
}

func TestEvalTypedFunctionAcceptsMatchingArg(t *testing.T) {
	result, err := runProgram(t, `
f = [x::int] => x + 1
f(6)
`)
	require.Nil(t, err)
	assert.Equal(t, int64(7), result.IntVal)
}

func TestEvalCollectionPipelineFilterMap(t *testing.T) {
	result, err := runProgram(t, `
ls = [1, 2, 3, 4]
ls.filter([x] => x % 2 == 0).map([x] => x * x)
`)
	require.Nil(t, err)
	require.Equal(t, ast.List, result.Kind)
	require.Len(t, result.Elements, 2)
	assert.Equal(t, int64(4), result.Elements[0].IntVal)
	assert.Equal(t, int64(16), result.Elements[1].IntVal)
}

func TestEvalThisBindingMutatesOwnObject(t *testing.T) {
	result, err := runProgram(t, `
counter = {
  n: 0,
  bump: [] => this.n = this.n + 1
}
counter.bump()
counter.bump()
counter.n
`)
	require.Nil(t, err)
	assert.Equal(t, int64(2), result.IntVal)
}

func TestEvalMatchBlockRangePattern(t *testing.T) {
	result, err := runProgram(t, `
classify = [n] => match (n) {
  0 .. 9: "small"
  10 .. 99: "medium"
  else: "large"
}
classify(5)
`)
	require.Nil(t, err)
	assert.Equal(t, "small", result.StrVal)

	result, err = runProgram(t, `
classify = [n] => match (n) {
  0 .. 9: "small"
  10 .. 99: "medium"
  else: "large"
}
classify(42)
`)
	require.Nil(t, err)
	assert.Equal(t, "medium", result.StrVal)
}

func TestEvalDivisionAndModuloByZero(t *testing.T) {
	_, err := runProgram(t, "1 / 0")
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.RuntimeError, err.Class)

	_, err = runProgram(t, "1 % 0")
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.RuntimeError, err.Class)
}

func TestEvalStringAndListConcatenation(t *testing.T) {
	result, err := runProgram(t, `"foo" + "bar"`)
	require.Nil(t, err)
	assert.Equal(t, "foobar", result.StrVal)

	result, err = runProgram(t, "[1, 2] + [3, 4]")
	require.Nil(t, err)
	require.Len(t, result.Elements, 4)
	assert.Equal(t, int64(3), result.Elements[2].IntVal)
}

func TestEvalNegativeIndexWraparound(t *testing.T) {
	result, err := runProgram(t, `
ls = [10, 20, 30]
ls[-1]
`)
	require.Nil(t, err)
	assert.Equal(t, int64(30), result.IntVal)
}

func TestEvalIndexOutOfRange(t *testing.T) {
	_, err := runProgram(t, `
ls = [1, 2, 3]
ls[5]
`)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.RuntimeError, err.Class)
}

func TestEvalInPlaceListMutationSharesOwnership(t *testing.T) {
	result, err := runProgram(t, `
a = [1, 2, 3]
b = a
b.append(4)
a.length
`)
	require.Nil(t, err)
	assert.Equal(t, int64(4), result.IntVal)
}

func TestEvalDeleteRemovesBinding(t *testing.T) {
	_, err := runProgram(t, `
x = 1
delete(x)
x
`)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.RuntimeError, err.Class)
	assert.Contains(t, err.Message, "undefined symbol")
}

func TestEvalPipeOperatorAppliesFunction(t *testing.T) {
	result, err := runProgram(t, `
double = [x] => x * 2
5 >> double
`)
	require.Nil(t, err)
	assert.Equal(t, int64(10), result.IntVal)
}

func TestEvalPipeOperatorFillsPartialOpHole(t *testing.T) {
	result, err := runProgram(t, "3 >> (_ + 4)")
	require.Nil(t, err)
	assert.Equal(t, int64(7), result.IntVal)
}

// TestEvalRefinementTypeArgTypeError exercises §4.2 rule 4 directly at
// the ast level, pre-building both the refinement and its caller
// rather than going through source so the case is isolated from
// whatever surface syntax a program used to define the refinement.
func TestEvalRefinementTypeArgTypeError(t *testing.T) {
	pos := ast.Pos{Line: 1, Column: 1}

	positive := ast.MakeFunction(pos)
	positive.IsType = true
	positive.FuncName = "Positive"
	positive.Params = []*ast.Param{{Name: "x", Type: &ast.Node{Kind: ast.Int}}}
	positive.Body = ast.MakeBlock(pos, []*ast.Node{
		ast.MakeOp(pos, ">", ast.MakeId(pos, "x"), ast.MakeInt(pos, 0, true), true),
	})

	f := ast.MakeFunction(pos)
	f.FuncName = "f"
	f.Params = []*ast.Param{{Name: "x", Type: positive}}
	f.Body = ast.MakeBlock(pos, []*ast.Node{ast.MakeId(pos, "x")})
	f.Closure = map[string]*ast.Node{}

	env := evaluator.NewEnvironment()
	evaluator.RegisterNatives(env)
	it := evaluator.New("test.gl", env)

	callNeg := &ast.Node{Kind: ast.FuncCall, Left: ast.MakeId(pos, "f"), Args: []*ast.Node{
		ast.MakeInt(pos, -5, true),
	}}
	env.Define("f", f)
	_, _, err := it.Eval(callNeg, env)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.ArgTypeError, err.Class)

	callPos := &ast.Node{Kind: ast.FuncCall, Left: ast.MakeId(pos, "f"), Args: []*ast.Node{
		ast.MakeInt(pos, 5, true),
	}}
	result, _, err := it.Eval(callPos, env)
	require.Nil(t, err)
	assert.Equal(t, int64(5), result.IntVal)
}

// TestEvalTypedAssignmentRunsRefinementAtRuntime exercises §4.5: a
// named refinement used as an identifier's `::` annotation must
// actually be invoked when the rhs is a literal, not just shape-
// checked, and the failure must name the refinement.
func TestEvalTypedAssignmentRunsRefinementAtRuntime(t *testing.T) {
	_, err := runProgram(t, `
Positive = [x::int] => x > 0
y::Positive = -3
`)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.TypeError, err.Class)
	assert.Contains(t, err.Error(), "Positive")
}

func TestEvalTypedAssignmentAcceptsSatisfyingValue(t *testing.T) {
	result, err := runProgram(t, `
Positive = [x::int] => x > 0
y::Positive = 3
y
`)
	require.Nil(t, err)
	assert.Equal(t, int64(3), result.IntVal)
}

func TestEvalTypedAssignmentRejectsReannotation(t *testing.T) {
	_, err := runProgram(t, `
y::int = 1
y::string = "oops"
`)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.TypeError, err.Class)
}

func TestEvalTypedAssignmentRecheckOnPlainReassignment(t *testing.T) {
	_, err := runProgram(t, `
y::int = 1
y = "oops"
`)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.TypeError, err.Class)
}

// TestEvalPipeSpreadsCommaListIntoSuccessiveHoles exercises §4.4: a
// CommaList piped into a function fills successive parameters instead
// of arriving as one argument.
func TestEvalPipeSpreadsCommaListIntoSuccessiveHoles(t *testing.T) {
	result, err := runProgram(t, `
add = [a b] => a + b
(2, 3) >> add
`)
	require.Nil(t, err)
	assert.Equal(t, int64(5), result.IntVal)
}
