package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dibsonthis/Glide/internal/diagnostics"
)

func TestErrorFormat(t *testing.T) {
	err := diagnostics.New(diagnostics.RuntimeError, "main.gl", []string{"f", "g"}, 3, 7, "bad value %d", 5)
	assert.Equal(t, `RuntimeError main.gl/f/g @ (3, 7): bad value 5`, err.Error())
}

func TestErrorFormatNoChain(t *testing.T) {
	err := diagnostics.New(diagnostics.SyntaxError, "main.gl", nil, 1, 1, "unexpected token")
	assert.Equal(t, `SyntaxError main.gl @ (1, 1): unexpected token`, err.Error())
}

func TestWrapImportPreservesInnerPosition(t *testing.T) {
	inner := diagnostics.New(diagnostics.RuntimeError, "lib.gl", []string{"init"}, 10, 2, "boom")
	wrapped := diagnostics.WrapImport("./lib.gl", inner)

	assert.Equal(t, diagnostics.ImportError, wrapped.Class)
	assert.Equal(t, "lib.gl", wrapped.File)
	assert.Equal(t, 10, wrapped.Line)
	assert.Equal(t, 2, wrapped.Column)
	assert.Same(t, inner, wrapped.Wrapped)
	assert.Contains(t, wrapped.Message, `while importing "./lib.gl"`)
	assert.Contains(t, wrapped.Message, "boom")
}

func TestNewRunIDUniqueAndNonEmpty(t *testing.T) {
	a := diagnostics.NewRunID()
	b := diagnostics.NewRunID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
