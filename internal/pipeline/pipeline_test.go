package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dibsonthis/Glide/internal/pipeline"
)

func TestRunSourceParsesProgram(t *testing.T) {
	ctx := pipeline.RunSource("test.gl", "x = 1 + 2")
	assert.True(t, ctx.OK())
	assert.NotNil(t, ctx.Program)
	assert.NotEmpty(t, ctx.RunID)
	assert.Equal(t, "test.gl", ctx.File)
}

func TestRunSourceCollectsParseErrors(t *testing.T) {
	ctx := pipeline.RunSource("bad.gl", "x = )")
	assert.False(t, ctx.OK())
	assert.NotEmpty(t, ctx.Errors)
}

func TestRunSourceEachCallGetsFreshRunID(t *testing.T) {
	a := pipeline.RunSource("a.gl", "x = 1")
	b := pipeline.RunSource("b.gl", "x = 1")
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.gl")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	ctx, err := pipeline.Run(path)
	require.NoError(t, err)
	assert.True(t, ctx.OK())
	assert.Equal(t, path, ctx.File)
}

func TestRunMissingFileReturnsError(t *testing.T) {
	_, err := pipeline.Run(filepath.Join(t.TempDir(), "missing.gl"))
	assert.Error(t, err)
}
