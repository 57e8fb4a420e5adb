package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/builtins"
	"github.com/dibsonthis/Glide/internal/evaluator"
	"github.com/dibsonthis/Glide/internal/parser"
)

func TestDefaultSourceEmbedsBootstrap(t *testing.T) {
	src := builtins.DefaultSource()
	assert.Contains(t, src, "print =")
	assert.Contains(t, src, "range =")
	assert.Contains(t, src, "to_string =")
}

func TestLoadIntoRegistersPublicWrappers(t *testing.T) {
	env := evaluator.NewEnvironment()
	evaluator.RegisterNatives(env)

	berr := builtins.LoadInto(env, builtins.DefaultSource())
	require.Nil(t, berr)

	for _, name := range []string{
		"print", "error", "exit", "range", "read", "write", "append",
		"time", "import", "to_int", "to_float", "to_string", "type",
		"shape", "readdir",
	} {
		v, ok := env.Get(name)
		require.True(t, ok, "expected %q to be defined", name)
		assert.Equal(t, ast.Function, v.Kind)
	}
}

func TestLoadIntoAndRunRangeAndToString(t *testing.T) {
	env := evaluator.NewEnvironment()
	evaluator.RegisterNatives(env)
	require.Nil(t, builtins.LoadInto(env, builtins.DefaultSource()))

	prog, errs := parser.Parse("test.gl", `to_string(range(0, 3))`)
	require.Empty(t, errs)

	it := evaluator.New("test.gl", env)
	var result *ast.Node
	for _, stmt := range prog.Elements {
		val, _, err := it.Eval(stmt, env)
		require.Nil(t, err)
		result = val
	}
	require.Equal(t, ast.String, result.Kind)
	assert.Equal(t, `[ 0 1 2 ]`, result.StrVal)
}

func TestLoadIntoRejectsBadSource(t *testing.T) {
	env := evaluator.NewEnvironment()
	evaluator.RegisterNatives(env)

	berr := builtins.LoadInto(env, "x = )")
	require.NotNil(t, berr)
}
