// Command portdash serves the stock portfolio dashboard, or renders its
// page once to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portdash",
		Short:         "Stock portfolio dashboard",
		Args:          cobra.NoArgs,
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $PORTDASH_CONFIG, then portdash.toml next to the binary)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newRenderCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
