package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath  string
	verbose     bool
	logFormat   string
	storagePath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "canvasgen",
		Short:         "canvasgen renders declarative UI trees into design documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to configuration file (default ~/.canvasgen/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: auto, text or json")
	cmd.PersistentFlags().StringVar(&flags.storagePath, "storage", "", "Override the client storage file")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newNormalizeCmd(flags))
	cmd.AddCommand(newSchemaCmd(flags))
	cmd.AddCommand(newScanCmd(flags))
	cmd.AddCommand(newColorCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
