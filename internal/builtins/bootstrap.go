// Package builtins embeds the bundled builtins.gl bootstrap and loads
// it into a fresh global scope ahead of a program's own source (§6).
// A project's glide.json may point at a different bootstrap file on
// disk instead (internal/config); this package only owns the default.
package builtins

import (
	_ "embed"

	"github.com/dibsonthis/Glide/internal/diagnostics"
	"github.com/dibsonthis/Glide/internal/evaluator"
	"github.com/dibsonthis/Glide/internal/pipeline"
)

//go:embed builtins.gl
var defaultSource string

// DefaultSource returns the bundled bootstrap's text.
func DefaultSource() string { return defaultSource }

// LoadInto parses source (the default, or a project's override read
// from disk by the caller) and evaluates it directly into env, which
// must already hold the native host functions (evaluator.RegisterNatives).
func LoadInto(env *evaluator.Environment, source string) *diagnostics.Error {
	ctx := pipeline.RunSource("<builtins>", source)
	if !ctx.OK() {
		return ctx.Errors[0]
	}
	it := evaluator.New("<builtins>", env)
	for _, stmt := range ctx.Program.Elements {
		_, _, err := it.Eval(stmt, env)
		if err != nil {
			return err
		}
	}
	return nil
}
