package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/canvasgen/internal/inventory"
	"github.com/alexisbeaulieu97/canvasgen/internal/resolve"
)

type colorOptions struct {
	Name       string
	TokensPath string
	StylesPath string
	JSON       bool
}

var colorCmdRunner = runColor

func newColorCmd(root *rootFlags) *cobra.Command {
	opts := colorOptions{}

	cmd := &cobra.Command{
		Use:   "color <name>",
		Short: "Resolve a color name against tokens, color styles and the fallback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			return colorCmdRunner(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.TokensPath, "tokens", "", "Design token table (overrides configuration)")
	cmd.Flags().StringVar(&opts.StylesPath, "styles", "", "Color style table (overrides configuration)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the resolution as JSON")

	return cmd
}

type colorJSONOutput struct {
	Name   string         `json:"name"`
	Hex    string         `json:"hex"`
	Source resolve.Source `json:"source"`
}

func runColor(cmd *cobra.Command, root *rootFlags, opts colorOptions) error {
	app, err := newAppContext(cmd.Context(), root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	applyTableOverrides(app, opts.TokensPath, opts.StylesPath)

	tables, err := inventory.LoadTables(app.Config.Inventory.Tokens, app.Config.Inventory.ColorStyles)
	if err != nil {
		return newCommandError("load color tables", opts.Name, err, "Check the --tokens and --styles files")
	}
	fallback, err := resolve.ParseHex(app.Config.Render.FallbackColor)
	if err != nil {
		return newCommandError("parse fallback color", app.Config.Render.FallbackColor, err, "Set render.fallback_color to a #rrggbb value")
	}

	rgb, source := resolve.NewColorResolver(tables, fallback).Color(opts.Name)
	hex := resolve.Hex(rgb)

	out := cmd.OutOrStdout()
	if opts.JSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(colorJSONOutput{Name: opts.Name, Hex: hex, Source: source})
	}

	sourceStyle := successStyle
	if source == resolve.SourceFallback {
		sourceStyle = warningStyle
	}
	fmt.Fprintf(out, "%s %s %s\n", titleStyle.Render(opts.Name), swatch(hex), sourceStyle.Render("("+string(source)+")"))
	return nil
}
