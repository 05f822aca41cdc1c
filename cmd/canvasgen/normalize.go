package main

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/canvasgen/internal/app/render"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
	"github.com/alexisbeaulieu97/canvasgen/pkg/diff"
)

type normalizeOptions struct {
	InputPath string
	ScanPath  string
	Diff      bool
}

var normalizeCmdRunner = runNormalize

var canonicalJSON = &ojg.Options{Indent: 2, Sort: true}

func newNormalizeCmd(root *rootFlags) *cobra.Command {
	opts := normalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize <input.json>",
		Short: "Print the canonical form of a declarative tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InputPath = args[0]
			return normalizeCmdRunner(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ScanPath, "scan", "", "Scan results used to resolve component identifiers")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Show a unified diff against the input instead")

	return cmd
}

func runNormalize(cmd *cobra.Command, root *rootFlags, opts normalizeOptions) error {
	ctx := cmd.Context()
	app, err := newAppContext(ctx, root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	input, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return newCommandError("read input", opts.InputPath, err, "Check the path to the declarative JSON file")
	}

	store, err := scanStorage(ctx, app, opts.ScanPath)
	if err != nil {
		return err
	}
	svc, err := render.NewService(ctx, render.Dependencies{Config: app.Config, Storage: store, Logger: app.Logger})
	if err != nil {
		return newCommandError("prepare normalizer", opts.InputPath, err, "Check the inventory tables and stored scan results")
	}

	normalized, unresolved, err := svc.Normalize(input, opts.InputPath)
	if err != nil {
		return newCommandError("normalize", opts.InputPath, err, "Fix the JSON syntax at the reported line")
	}

	out := cmd.OutOrStdout()
	canonical := oj.JSON(normalized, canonicalJSON)
	if opts.Diff {
		original, err := tree.ParseJSON(input, opts.InputPath)
		if err != nil {
			return newCommandError("normalize", opts.InputPath, err, "Fix the JSON syntax at the reported line")
		}
		before := oj.JSON(original, canonicalJSON)
		fmt.Fprint(out, diff.Unified([]byte(before+"\n"), []byte(canonical+"\n"), opts.InputPath, "normalized"))
	} else {
		fmt.Fprintln(out, canonical)
	}

	for _, u := range unresolved {
		printWarning(cmd.ErrOrStderr(), "component %q has no identifier (placeholder %s)", u.Type, u.ID)
	}
	return nil
}
