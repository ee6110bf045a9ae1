package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dewansh29/StockPulse/pkg/analysis"
)

func newTrendCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend [ticker]",
		Short: "Indicator table for the last trading year",
		Example: `  analyzer trend AAPL
  analyzer trend AAPL --limit 5 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker, bars, err := loadTicker(opts, args[0])
			if err != nil {
				return err
			}
			points, err := analysis.Trend(ticker, bars)
			if err != nil {
				return err
			}
			if opts.limit > 0 && len(points) > opts.limit {
				points = points[len(points)-opts.limit:]
			}

			out := cmd.OutOrStdout()
			if opts.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(points)
			}
			return writeTrendTable(out, points)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "only the most recent n days (0 = all)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	return cmd
}

func writeTrendTable(w io.Writer, points []analysis.TrendPoint) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCLOSE\tSMA50\tSMA200\tRSI14\tBB_LOWER\tBB_UPPER\tTREND\tMOMENTUM")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
			p.Date.Format("2006-01-02"), p.Close, p.SMA50, p.SMA200, p.RSI14,
			p.BBLower, p.BBUpper, p.Trend, p.Momentum)
	}
	return tw.Flush()
}
