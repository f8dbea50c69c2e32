package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type keyLister interface {
	Keys() []string
}

func newPlacesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "places",
		Short: "List the places in the local store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.checkFormat(); err != nil {
				return err
			}
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			lister, ok := e.store.(keyLister)
			if !ok {
				return errors.New("place listing needs a local store; unset FACTORS_BASE_URL or pass --seed-file")
			}

			type row struct {
				Key    string               `json:"key"`
				Record domain.MetricsRecord `json:"record"`
			}
			rows := make([]row, 0, len(lister.Keys()))
			for _, key := range lister.Keys() {
				rec, err := e.store.Lookup(cmd.Context(), key)
				if err != nil {
					return err
				}
				rows = append(rows, row{Key: key, Record: rec})
			}

			out := cmd.OutOrStdout()
			if opts.format == "json" {
				b, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PLACE\tWALK\tSCHOOLS\tCRIME\tINCOME\tGROWTH")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d\t%g\t%d\t$%s\t%g%%\n",
					r.Key, r.Record.Walkability, r.Record.SchoolScore, r.Record.CrimeIndex,
					humanize.Comma(int64(r.Record.MedianIncome)), r.Record.PriceGrowth5y)
			}
			return tw.Flush()
		},
	}
}
