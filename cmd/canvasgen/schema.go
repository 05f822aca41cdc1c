package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/canvasgen/internal/inventory"
	"github.com/alexisbeaulieu97/canvasgen/internal/schema"
)

type schemaOptions struct {
	ScanPath string
	JSON     bool
}

var (
	schemaCmdRunner = runSchema
	nowFunc         = time.Now
)

func newSchemaCmd(root *rootFlags) *cobra.Command {
	opts := schemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "List the component schemas built from scan results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return schemaCmdRunner(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ScanPath, "scan", "", "Scan results to read instead of stored ones")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output schemas as JSON")

	return cmd
}

func runSchema(cmd *cobra.Command, root *rootFlags, opts schemaOptions) error {
	ctx := cmd.Context()
	app, err := newAppContext(ctx, root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	store, err := scanStorage(ctx, app, opts.ScanPath)
	if err != nil {
		return err
	}
	catalog, err := inventory.LoadCatalog(ctx, store, app.Config.Storage.ScanKey)
	if err != nil {
		return newCommandError("load scan results", app.Config.Storage.Path, err, "Import fresh results with 'canvasgen scan import'")
	}
	registry, stale, err := schema.LoadRegistry(catalog.All(), nowFunc(), app.Config.Render.SchemaMaxAge)
	if err != nil {
		return newCommandError("build schemas", app.Config.Storage.Path, err, "Import fresh results with 'canvasgen scan import'")
	}

	if opts.JSON {
		return writeSchemaJSON(cmd.OutOrStdout(), registry.GetAll(), stale)
	}
	writeSchemaText(cmd.OutOrStdout(), registry.GetAll(), stale)
	return nil
}

type schemaJSONOutput struct {
	Count   int                       `json:"count"`
	Stale   []string                  `json:"stale"`
	Schemas []*schema.ComponentSchema `json:"schemas"`
}

func writeSchemaJSON(w io.Writer, schemas []*schema.ComponentSchema, stale []string) error {
	payload := schemaJSONOutput{Count: len(schemas), Stale: stale, Schemas: schemas}
	if payload.Stale == nil {
		payload.Stale = []string{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func writeSchemaText(w io.Writer, schemas []*schema.ComponentSchema, stale []string) {
	if len(schemas) == 0 {
		fmt.Fprintln(w, "No scan results stored.")
		fmt.Fprintln(w, dimStyle.Render("Import some with: canvasgen scan import <file>"))
		return
	}

	staleSet := make(map[string]bool, len(stale))
	for _, id := range stale {
		staleSet[id] = true
	}

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Schemas (%d)", len(schemas))))
	for _, s := range schemas {
		marker := successStyle.Render(iconSuccess)
		if staleSet[s.ID] {
			marker = warningStyle.Render(iconWarning)
		}
		line := fmt.Sprintf("%s %s %s", marker, s.ID, s.Name)
		if s.ComponentType != "" {
			line += " " + dimStyle.Render("("+s.ComponentType+")")
		}
		if staleSet[s.ID] {
			line += " " + warningStyle.Render("stale")
		}
		fmt.Fprintln(w, line)

		if len(s.Variants) > 0 {
			fmt.Fprintf(w, "    variants: %s\n", formatAxes(s.Variants))
		}
		if len(s.TextLayers) > 0 {
			fmt.Fprintf(w, "    text:     %s\n", strings.Join(sortedKeys(s.TextLayers), ", "))
		}
		if len(s.MediaLayers) > 0 {
			fmt.Fprintf(w, "    media:    %s\n", strings.Join(sortedKeys(s.MediaLayers), ", "))
		}
		if !s.ScannedAt.IsZero() {
			fmt.Fprintf(w, "    %s\n", dimStyle.Render("scanned "+s.ScannedAt.Format(time.RFC3339)))
		}
	}
}

func formatAxes(axes map[string][]string) string {
	names := sortedKeys(axes)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=[%s]", name, strings.Join(axes[name], "|")))
	}
	return strings.Join(parts, " ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
