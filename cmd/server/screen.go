// cmd/server/screen.go
package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
)

func newScreenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "screen [text]",
		Short: "Screen text against the current policy and print the verdict",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			result := a.service.Screen(cmd.Context(), strings.Join(args, " "))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
