// cmd/server/seed.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the built-in keyword rules that are not stored yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			inserted := a.seed(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d keyword rules\n", inserted)
			return nil
		},
	}
}
