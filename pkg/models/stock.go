package models

import "github.com/shopspring/decimal"

// StockRecord is the display data for a single ticker.
type StockRecord struct {
	Symbol        string          `json:"symbol"`
	Company       string          `json:"company"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	IsPositive    bool            `json:"is_positive"`
}

// NewStockRecord builds a record whose direction flag follows the sign of change.
func NewStockRecord(symbol, company string, price, change, changePercent decimal.Decimal) StockRecord {
	return StockRecord{
		Symbol:        symbol,
		Company:       company,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		IsPositive:    !change.IsNegative(),
	}
}

// StockPatch carries the fields of a partial update. Nil fields are retained.
// The symbol is the collection key and cannot be patched.
type StockPatch struct {
	Company       *string          `json:"company,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Change        *decimal.Decimal `json:"change,omitempty"`
	ChangePercent *decimal.Decimal `json:"change_percent,omitempty"`
	IsPositive    *bool            `json:"is_positive,omitempty"`
}

// IsEmpty reports whether the patch would leave a record untouched.
func (p StockPatch) IsEmpty() bool {
	return p.Company == nil && p.Price == nil && p.Change == nil &&
		p.ChangePercent == nil && p.IsPositive == nil
}

// Merge returns a copy of r with every non-nil patch field written over it.
func (r StockRecord) Merge(p StockPatch) StockRecord {
	if p.Company != nil {
		r.Company = *p.Company
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.Change != nil {
		r.Change = *p.Change
	}
	if p.ChangePercent != nil {
		r.ChangePercent = *p.ChangePercent
	}
	if p.IsPositive != nil {
		r.IsPositive = *p.IsPositive
	}
	return r
}

// Summary holds the aggregate counts shown above the grid.
type Summary struct {
	Total   int `json:"total"`
	Gainers int `json:"gainers"`
	Losers  int `json:"losers"`
}

// StockUpdate represents a single quote tick for a stock symbol
type StockUpdate struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Timestamp     int64           `json:"timestamp"` // unix micro
	SeqID         int64           `json:"seq_id"`    // monotonic counter per symbol
}

// Patch converts the tick into the partial update applied to a record.
func (u StockUpdate) Patch() StockPatch {
	price, change, pct := u.Price, u.Change, u.ChangePercent
	positive := !change.IsNegative()
	return StockPatch{
		Price:         &price,
		Change:        &change,
		ChangePercent: &pct,
		IsPositive:    &positive,
	}
}
