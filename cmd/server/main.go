// cmd/server/main.go
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

type rootOptions struct {
	configPath string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "moderation",
		Short:         "Content moderation service for the creator marketplace",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.yaml")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to the SQLite database (overrides config)")

	root.AddCommand(newServeCmd(opts), newSeedCmd(opts), newScreenCmd(opts))
	return root
}
