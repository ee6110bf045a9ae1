package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Dewansh29/StockPulse/pkg/models"
)

// Res is the envelope every API response is wrapped in.
type Res struct {
	Success bool        `json:"success"`
	Error   interface{} `json:"error"`
	Data    interface{} `json:"data"`
}

type ErrorType struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func OK(data interface{}) Res {
	return Res{Success: true, Data: data}
}

// GetStocks

type GetStocksRes struct {
	Stocks  []models.StockRecord `json:"stocks"`
	Summary models.Summary       `json:"summary"`
}

// AddStock

type AddStockReq struct {
	Symbol        string           `json:"symbol" binding:"required"`
	Company       string           `json:"company" binding:"required"`
	Price         *decimal.Decimal `json:"price" binding:"required"`
	Change        decimal.Decimal  `json:"change"`
	ChangePercent decimal.Decimal  `json:"change_percent"`
	IsPositive    *bool            `json:"is_positive"`
}

// Record builds the stock record; direction follows change unless given.
func (r AddStockReq) Record() models.StockRecord {
	rec := models.NewStockRecord(r.Symbol, r.Company, *r.Price, r.Change, r.ChangePercent)
	if r.IsPositive != nil {
		rec.IsPositive = *r.IsPositive
	}
	return rec
}
