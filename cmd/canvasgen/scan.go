package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/canvasgen/internal/inventory"
)

type scanImportOptions struct {
	FilePath string
}

var (
	scanImportCmdRunner = runScanImport
	scanClearCmdRunner  = runScanClear
)

func newScanCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Manage stored component scan results",
	}

	cmd.AddCommand(newScanImportCmd(root))
	cmd.AddCommand(newScanClearCmd(root))

	return cmd
}

func newScanImportCmd(root *rootFlags) *cobra.Command {
	opts := scanImportOptions{}

	return &cobra.Command{
		Use:   "import <file>",
		Short: "Validate scan results and store them for later renders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.FilePath = args[0]
			return scanImportCmdRunner(cmd, root, opts)
		},
	}
}

func newScanClearCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove stored scan results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return scanClearCmdRunner(cmd, root)
		},
	}
}

func runScanImport(cmd *cobra.Command, root *rootFlags, opts scanImportOptions) error {
	ctx := cmd.Context()
	app, err := newAppContext(ctx, root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	infos, err := inventory.LoadScanFile(opts.FilePath)
	if err != nil {
		return newCommandError("import scan results", opts.FilePath, err, "Fix the reported record and import again")
	}

	store, err := app.OpenStore()
	if err != nil {
		return err
	}
	key := app.Config.Storage.ScanKey
	if err := store.Set(ctx, key, infos); err != nil {
		return newCommandError("store scan results", store.Path(), err, "Check permissions on the storage file")
	}

	app.Logger.Info(ctx, "scan results imported", "components", len(infos), "key", key, "path", store.Path())
	fmt.Fprintf(cmd.OutOrStdout(), "%s Stored %d components under %q in %s\n",
		successStyle.Render(iconSuccess), len(infos), key, store.Path())
	return nil
}

func runScanClear(cmd *cobra.Command, root *rootFlags) error {
	ctx := cmd.Context()
	app, err := newAppContext(ctx, root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	store, err := app.OpenStore()
	if err != nil {
		return err
	}
	key := app.Config.Storage.ScanKey
	if err := store.Delete(ctx, key); err != nil {
		return newCommandError("clear scan results", store.Path(), err, "Check permissions on the storage file")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Cleared %q from %s\n", successStyle.Render(iconSuccess), key, store.Path())
	return nil
}
