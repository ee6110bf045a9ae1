package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Dewansh29/StockPulse/pkg/analysis"
)

func newOutlookCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "outlook [ticker]",
		Short: "Long-term outlook from the latest day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker, bars, err := loadTicker(opts, args[0])
			if err != nil {
				return err
			}
			out, err := analysis.ComputeOutlook(ticker, bars)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
