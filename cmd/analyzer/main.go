// Command analyzer prints trend indicators and outlooks from a CSV price
// history.
//
//	go run ./cmd/analyzer outlook AAPL
//	go run ./cmd/analyzer trend AAPL --limit 10
package main

import (
	"os"

	"github.com/Dewansh29/StockPulse/cmd/analyzer/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
