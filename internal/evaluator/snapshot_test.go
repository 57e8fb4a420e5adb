package evaluator_test

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/dibsonthis/Glide/internal/ast"
)

// TestMain lets go-snaps prune snapshots no longer written by any test
// in this package once the whole suite has run (§4.8: Repr/TypeRepr
// output is exactly what these snapshots pin down).
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// runProgramSnapshot runs src to completion and snapshots the Repr of
// its last statement's result, catching accidental Repr/TypeRepr
// format drift across evaluator changes the same way the interpreter
// these tests are modeled on (internal/interp/fixture_test.go,
// CWBudde-go-dws) snapshots fixture output.
func runProgramSnapshot(t *testing.T, name, src string) {
	t.Helper()
	result, err := runProgram(t, src)
	require.Nil(t, err)
	snaps.MatchSnapshot(t, name, ast.Repr(result))
}

func TestSnapshotArithmeticResult(t *testing.T) {
	runProgramSnapshot(t, "arithmetic", "(1 + 2) * 3 - 4 / 2")
}

func TestSnapshotListPipeline(t *testing.T) {
	runProgramSnapshot(t, "list_pipeline", `
ls = [1, 2, 3, 4, 5]
ls.filter([x] => x % 2 == 0).map([x] => x * x)
`)
}

func TestSnapshotFunctionLiteralRepr(t *testing.T) {
	runProgramSnapshot(t, "function_literal", `
add = [a::int b::int] => a + b
add
`)
}

func TestSnapshotObjectLiteral(t *testing.T) {
	runProgramSnapshot(t, "object_literal", `
point = { x: 1, y: 2 }
point
`)
}
