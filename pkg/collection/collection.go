// Package collection holds the ordered, symbol-keyed set of stock records
// shown on the dashboard.
package collection

import (
	"strings"
	"sync"

	"github.com/Dewansh29/StockPulse/pkg/models"
)

// StockCollection is an ordered sequence of records keyed by symbol.
// Append does not deduplicate; UpdateBySymbol only ever touches the first match.
type StockCollection struct {
	mu      sync.RWMutex
	records []models.StockRecord
}

// New returns a collection pre-seeded with the given records, in order.
func New(seed ...models.StockRecord) *StockCollection {
	records := make([]models.StockRecord, len(seed))
	copy(records, seed)
	return &StockCollection{records: records}
}

// Append adds record to the end of the sequence.
func (c *StockCollection) Append(record models.StockRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, record)
}

// UpdateBySymbol merges patch over the first record with the given symbol.
// It reports false, leaving the collection unchanged, when no record matches.
func (c *StockCollection) UpdateBySymbol(symbol string, patch models.StockPatch) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(symbol)
	if i < 0 {
		return false
	}
	c.records[i] = c.records[i].Merge(patch)
	return true
}

// List returns a copy of the records in insertion order.
func (c *StockCollection) List() []models.StockRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.StockRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Summary counts records by direction flag.
func (c *StockCollection) Summary() models.Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := models.Summary{Total: len(c.records)}
	for _, r := range c.records {
		if r.IsPositive {
			s.Gainers++
		} else {
			s.Losers++
		}
	}
	return s
}

// Find returns the first record with the given symbol.
func (c *StockCollection) Find(symbol string) (models.StockRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(symbol)
	if i < 0 {
		return models.StockRecord{}, false
	}
	return c.records[i], true
}

func (c *StockCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Symbols lists the distinct symbols in order of first appearance.
func (c *StockCollection) Symbols() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool, len(c.records))
	symbols := make([]string, 0, len(c.records))
	for _, r := range c.records {
		if seen[r.Symbol] {
			continue
		}
		seen[r.Symbol] = true
		symbols = append(symbols, r.Symbol)
	}
	return symbols
}

// Filter returns the records whose symbol starts with term or whose company
// name contains it, ignoring case. A blank term matches everything.
func (c *StockCollection) Filter(term string) []models.StockRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return c.List()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.StockRecord
	for _, r := range c.records {
		if strings.HasPrefix(strings.ToLower(r.Symbol), term) ||
			strings.Contains(strings.ToLower(r.Company), term) {
			out = append(out, r)
		}
	}
	return out
}

// caller holds c.mu
func (c *StockCollection) indexOf(symbol string) int {
	for i, r := range c.records {
		if r.Symbol == symbol {
			return i
		}
	}
	return -1
}
