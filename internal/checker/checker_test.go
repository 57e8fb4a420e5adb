package checker_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dibsonthis/Glide/internal/checker"
	"github.com/dibsonthis/Glide/internal/parser"
)

func check(t *testing.T, src string) []string {
	t.Helper()
	prog, parseErrs := parser.Parse("test.gl", src)
	require.Empty(t, parseErrs)
	errs := checker.CheckProgram("test.gl", prog)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return msgs
}

func TestCheckProgramCleanArithmetic(t *testing.T) {
	assert.Empty(t, check(t, "x = 1 + 2"))
}

func TestCheckMatchBlockNotExhaustiveWithoutElse(t *testing.T) {
	errs := check(t, `f = [x::(int | string)] => match (x) { 1: "one" }`)
	require.NotEmpty(t, errs)
	found := false
	for _, m := range errs {
		if strings.Contains(m, "not exhaustive") {
			found = true
		}
	}
	assert.True(t, found, "expected a match-exhaustiveness diagnostic, got: %v", errs)
}

func TestCheckMatchBlockExhaustiveWithElse(t *testing.T) {
	errs := check(t, `f = [x::(int | string)] => match (x) { 1: "one"; else: "other" }`)
	for _, m := range errs {
		assert.NotContains(t, m, "not exhaustive")
	}
}

func TestCheckTypedAssignmentAcceptsMatchingShape(t *testing.T) {
	assert.Empty(t, check(t, "y::int = 5"))
}

func TestCheckTypedAssignmentRejectsMismatchedShape(t *testing.T) {
	errs := check(t, `y::int = "five"`)
	require.NotEmpty(t, errs)
}

func TestCheckTypedAssignmentRejectsReannotation(t *testing.T) {
	errs := check(t, `
y::int = 1
y::string = "oops"
`)
	require.NotEmpty(t, errs)
	found := false
	for _, m := range errs {
		if strings.Contains(m, "re-annotation") {
			found = true
		}
	}
	assert.True(t, found, "expected a re-annotation diagnostic, got: %v", errs)
}
