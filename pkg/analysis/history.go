// Package analysis derives technical indicators and trend labels from daily
// price history.
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Bar is one trading day for one ticker.
type Bar struct {
	Date   time.Time
	Ticker string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

var (
	ErrMissingColumn = errors.New("history: missing column")

	requiredColumns = []string{"Date", "Ticker", "Open", "High", "Low", "Close", "Volume"}

	// day-first layouts come before ISO so 03/04/2024 reads as 3 April
	dateLayouts = []string{
		"02/01/2006",
		"02-01-2006",
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
)

// LoadHistoryFile opens path and parses it with LoadHistory.
func LoadHistoryFile(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadHistory(f)
}

// LoadHistory parses a CSV with a Date,Ticker,Open,High,Low,Close,Volume header
// (any column order, extra columns ignored). Rows whose date or prices do not
// parse are skipped.
func LoadHistory(r io.Reader) ([]Bar, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var bars []Bar
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		bar, ok := parseBar(record, idx)
		if !ok {
			continue
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

func parseBar(record []string, idx map[string]int) (Bar, bool) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, ok := parseDate(field("Date"))
	if !ok {
		return Bar{}, false
	}

	bar := Bar{Date: date, Ticker: field("Ticker")}
	for _, f := range []struct {
		col string
		dst *float64
	}{
		{"Open", &bar.Open},
		{"High", &bar.High},
		{"Low", &bar.Low},
		{"Close", &bar.Close},
		{"Volume", &bar.Volume},
	} {
		v, err := strconv.ParseFloat(field(f.col), 64)
		if err != nil {
			return Bar{}, false
		}
		*f.dst = v
	}

	return bar, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Tickers lists the distinct tickers in order of first appearance.
func Tickers(bars []Bar) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range bars {
		if !seen[b.Ticker] {
			seen[b.Ticker] = true
			out = append(out, b.Ticker)
		}
	}
	return out
}

// ForTicker returns the bars of one ticker, oldest first.
func ForTicker(bars []Bar, ticker string) []Bar {
	var out []Bar
	for _, b := range bars {
		if b.Ticker == ticker {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
