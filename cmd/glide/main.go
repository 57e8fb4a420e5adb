// Command glide runs a single Glide source file: lex, parse, type
// check, then evaluate (§1, §6). Every classified diagnostic prints
// as one line and exits the process with status 1; there is no
// recovery path (§7).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dibsonthis/Glide/internal/builtins"
	"github.com/dibsonthis/Glide/internal/checker"
	"github.com/dibsonthis/Glide/internal/config"
	"github.com/dibsonthis/Glide/internal/evaluator"
	"github.com/dibsonthis/Glide/internal/pipeline"
)

func main() {
	root := &cobra.Command{
		Use:           "glide <path>",
		Short:         "Run a Glide program",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	cfg, err := config.Load("glide.json")
	if err != nil {
		return err
	}

	ctx, err := pipeline.Run(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "glide: run %s: %s\n", ctx.RunID, path)
	if !ctx.OK() {
		fmt.Fprintln(os.Stderr, ctx.Errors[0].Error())
		os.Exit(1)
	}

	if errs := checker.CheckProgram(path, ctx.Program); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(1)
	}

	env := evaluator.NewEnvironment()
	evaluator.RegisterNatives(env)

	bootSource := builtins.DefaultSource()
	if cfg.BootstrapPath != "" {
		if data, rerr := os.ReadFile(cfg.BootstrapPath); rerr == nil {
			bootSource = string(data)
		}
	}
	if berr := builtins.LoadInto(env, bootSource); berr != nil {
		fmt.Fprintln(os.Stderr, berr.Error())
		os.Exit(1)
	}

	it := evaluator.New(path, env)
	for _, stmt := range ctx.Program.Elements {
		if _, _, ierr := it.Eval(stmt, env); ierr != nil {
			fmt.Fprintln(os.Stderr, ierr.Error())
			os.Exit(1)
		}
	}
	return nil
}
