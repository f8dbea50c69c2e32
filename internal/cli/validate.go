package cli

import (
	"fmt"

	"github.com/couchcryptid/neighborhood-insights/internal/adapter/memstore"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <seed-file>",
		Short: "Check a YAML place seed file",
		Long:  "Load a seed file and check every record against the metric ranges, reporting the first problem found.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := memstore.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d places\n", len(store.Keys()))
			return nil
		},
	}
}
