package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/couchcryptid/neighborhood-insights/internal/insight"
	"github.com/spf13/cobra"
)

func newLookupCmd(opts *options) *cobra.Command {
	var city, region string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Summarize a place with its pros and cons",
		Example: `  insights lookup --city Fullerton --region CA
  insights lookup --city Austin --region TX --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.checkFormat(); err != nil {
				return err
			}
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			report, err := e.service.Lookup(cmd.Context(), city, region)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", report.Key, err)
			}
			if opts.format == "json" {
				return writeReportJSON(cmd.OutOrStdout(), report)
			}
			writeReportText(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "City name (required)")
	cmd.Flags().StringVar(&region, "region", "", "State or region code (required)")
	_ = cmd.MarkFlagRequired("city")
	_ = cmd.MarkFlagRequired("region")
	return cmd
}

func writeReportJSON(w io.Writer, report insight.Report) error {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// writeReportText prints the narrative followed by the pros and cons lists.
// A miss prints only the narrative, which asks for a place.
func writeReportText(w io.Writer, report insight.Report) {
	fmt.Fprintln(w, report.Narrative)
	if !report.Found {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pros:")
	for _, o := range report.Insights.Positives {
		fmt.Fprintf(w, "  + %s\n", o.Text)
	}
	fmt.Fprintln(w, "Cons:")
	for _, o := range report.Insights.Negatives {
		fmt.Fprintf(w, "  - %s\n", o.Text)
	}
}
