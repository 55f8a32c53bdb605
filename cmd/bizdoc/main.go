package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:           "bizdoc",
		Short:         "Parse business markdown documents into structured data",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: $BIZDOC_CONFIG, then environment only)")

	root.AddCommand(
		parseCmd(&opts),
		analyzeCmd(&opts),
		batchCmd(&opts),
		exportCmd(&opts),
		serveCmd(&opts),
	)
	return root
}
