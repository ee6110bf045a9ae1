// Package cli holds the analyzer's commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Dewansh29/StockPulse/pkg/analysis"
)

const defaultHistoryFile = "final_stock_data.csv"

type options struct {
	file  string
	limit int
	json  bool
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "analyzer",
		Short: "StockPulse trend analyzer",
		Long: `StockPulse trend analyzer

Reads daily price history (Date,Ticker,Open,High,Low,Close,Volume) and derives
moving averages, RSI and Bollinger bands per ticker.

Commands:
    tickers              - list tickers in the history file
    trend   [ticker]     - indicator table for the last trading year
    outlook [ticker]     - long-term outlook from the latest day
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional
			_ = godotenv.Load()
		},
	}

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", defaultHistoryFile, "CSV price history")

	root.AddCommand(newTickersCmd(opts))
	root.AddCommand(newTrendCmd(opts))
	root.AddCommand(newOutlookCmd(opts))
	return root
}

func newTickersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tickers",
		Short: "List tickers in the history file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bars, err := analysis.LoadHistoryFile(opts.file)
			if err != nil {
				return err
			}
			for _, t := range analysis.Tickers(bars) {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func loadTicker(opts *options, arg string) (string, []analysis.Bar, error) {
	bars, err := analysis.LoadHistoryFile(opts.file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load %s: %w", opts.file, err)
	}
	return strings.ToUpper(strings.TrimSpace(arg)), bars, nil
}
