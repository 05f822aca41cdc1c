package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/canvasgen/internal/app/render"
	"github.com/alexisbeaulieu97/canvasgen/internal/engine"
	"github.com/alexisbeaulieu97/canvasgen/internal/infrastructure/memdoc"
	"github.com/alexisbeaulieu97/canvasgen/internal/inventory"
	"github.com/alexisbeaulieu97/canvasgen/internal/perf"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/storage"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
)

type renderOptions struct {
	InputPath   string
	LibraryPath string
	ScanPath    string
	TokensPath  string
	StylesPath  string
	ParentID    string
	JSON        bool
}

var renderCmdRunner = runRender

func newRenderCmd(root *rootFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <input.json>",
		Short: "Render a declarative tree into an in-memory document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InputPath = args[0]
			return renderCmdRunner(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.LibraryPath, "library", "l", "", "Component library fixture (YAML)")
	cmd.Flags().StringVar(&opts.ScanPath, "scan", "", "Scan results to use instead of stored ones")
	cmd.Flags().StringVar(&opts.TokensPath, "tokens", "", "Design token table (overrides configuration)")
	cmd.Flags().StringVar(&opts.StylesPath, "styles", "", "Color style table (overrides configuration)")
	cmd.Flags().StringVar(&opts.ParentID, "parent", "", "Node to render into instead of the current page")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the rendered tree as JSON")
	cmd.MarkFlagRequired("library") //nolint:errcheck

	return cmd
}

func runRender(cmd *cobra.Command, root *rootFlags, opts renderOptions) error {
	ctx := cmd.Context()
	app, err := newAppContext(ctx, root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	applyTableOverrides(app, opts.TokensPath, opts.StylesPath)

	input, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return newCommandError("read input", opts.InputPath, err, "Check the path to the declarative JSON file")
	}

	lib, err := memdoc.LoadLibrary(opts.LibraryPath)
	if err != nil {
		return newCommandError("load library", opts.LibraryPath, err, "Fix the library fixture and try again")
	}
	doc, err := memdoc.NewFromLibrary(lib)
	if err != nil {
		return newCommandError("load library", opts.LibraryPath, err, "Fix the library fixture and try again")
	}

	store, err := scanStorage(ctx, app, opts.ScanPath)
	if err != nil {
		return err
	}

	svc, err := render.NewService(ctx, render.Dependencies{
		Config:  app.Config,
		Storage: store,
		Logger:  app.Logger,
		Tracker: app.Tracker,
	})
	if err != nil {
		return newCommandError("prepare renderer", opts.InputPath, err, "Check the inventory tables and stored scan results")
	}

	out, renderErr := svc.Render(ctx, doc, render.RenderRequest{
		Input:    input,
		Source:   opts.InputPath,
		ParentID: opts.ParentID,
	})
	if out == nil {
		return newCommandError("render", opts.InputPath, renderErr, "Fix the input and try again")
	}

	if opts.JSON {
		if err := writeRenderJSON(cmd.OutOrStdout(), out, renderErr); err != nil {
			return err
		}
	} else {
		writeRenderText(cmd.OutOrStdout(), out, doc.Notifications())
	}

	if renderErr != nil {
		return newCommandError("render", opts.InputPath, renderErr, "The error frame in the output marks where generation stopped")
	}
	return nil
}

// scanStorage returns storage holding the scan results to render with. A
// scan file is loaded into memory and never written back.
func scanStorage(ctx context.Context, app *AppContext, scanPath string) (ports.ClientStorage, error) {
	if scanPath == "" {
		store, err := app.OpenStore()
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	infos, err := inventory.LoadScanFile(scanPath)
	if err != nil {
		return nil, newCommandError("load scan results", scanPath, err, "Re-run the component scan and export the results again")
	}
	mem := storage.NewMemoryStore()
	if err := mem.Set(ctx, app.Config.Storage.ScanKey, infos); err != nil {
		return nil, err
	}
	return mem, nil
}

func applyTableOverrides(app *AppContext, tokens, styles string) {
	if tokens != "" {
		app.Config.Inventory.Tokens = tokens
	}
	if styles != "" {
		app.Config.Inventory.ColorStyles = styles
	}
}

type renderJSONOutput struct {
	Root         *memdoc.NodeSnapshot  `json:"root,omitempty"`
	Diagnostics  []engine.Diagnostic   `json:"diagnostics"`
	Unresolved   []tree.Unresolved     `json:"unresolved,omitempty"`
	StaleSchemas []string              `json:"staleSchemas,omitempty"`
	Perf         map[string]perf.Stats `json:"perf,omitempty"`
	Error        string                `json:"error,omitempty"`
}

func writeRenderJSON(w io.Writer, out *render.Outcome, renderErr error) error {
	payload := renderJSONOutput{
		Diagnostics:  out.Diagnostics,
		Unresolved:   out.Unresolved,
		StaleSchemas: out.StaleSchemas,
		Perf:         out.Perf,
	}
	if payload.Diagnostics == nil {
		payload.Diagnostics = []engine.Diagnostic{}
	}
	if out.Root != nil {
		snapshot := memdoc.Snapshot(out.Root)
		payload.Root = &snapshot
	}
	if renderErr != nil {
		payload.Error = renderErr.Error()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func writeRenderText(w io.Writer, out *render.Outcome, notifications []memdoc.Notification) {
	if out.Root != nil {
		fmt.Fprintln(w, nodeTree(memdoc.Snapshot(out.Root)).String())
	}
	for _, u := range out.Unresolved {
		printWarning(w, "component %q has no identifier (placeholder %s)", u.Type, u.ID)
	}
	for _, id := range out.StaleSchemas {
		printWarning(w, "schema %s is stale; rescan the component", id)
	}
	for _, n := range notifications {
		if n.Error {
			fmt.Fprintln(w, failureStyle.Render(iconError)+" "+n.Message)
		}
	}
	printDiagnostics(w, out.Diagnostics)
	printPerf(w, out.Perf)
}
