package collection

import (
	"github.com/shopspring/decimal"

	"github.com/Dewansh29/StockPulse/pkg/models"
)

// SampleStocks returns the demo records the dashboard starts with.
func SampleStocks() []models.StockRecord {
	return []models.StockRecord{
		sample("AAPL", "Apple Inc.", "185.42", "2.34", "1.28"),
		sample("GOOGL", "Alphabet Inc.", "142.56", "-1.23", "-0.85"),
		sample("TSLA", "Tesla Inc.", "234.67", "5.78", "2.53"),
		sample("MSFT", "Microsoft Corp.", "378.90", "3.45", "0.92"),
		sample("AMZN", "Amazon.com Inc.", "167.23", "-2.67", "-1.57"),
		sample("NVDA", "NVIDIA Corp.", "489.12", "12.34", "2.59"),
	}
}

func sample(symbol, company, price, change, pct string) models.StockRecord {
	return models.NewStockRecord(symbol, company,
		decimal.RequireFromString(price),
		decimal.RequireFromString(change),
		decimal.RequireFromString(pct))
}
