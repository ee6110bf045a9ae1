package analysis

import (
	"errors"
	"fmt"
	"time"
)

const (
	UpTrend   = "Uptrend"
	DownTrend = "Downtrend"

	Overbought = "Overbought"
	Oversold   = "Oversold"
	Neutral    = "Neutral"

	// NotAvailable marks outlook fields that need a predictive model.
	NotAvailable = "N/A"

	// one trading year
	trendWindow = 252
)

var (
	ErrTickerNotFound      = errors.New("ticker not found")
	ErrInsufficientHistory = errors.New("not enough historical data for a full analysis")
)

// TrendPoint is one day of history with its indicators and labels.
type TrendPoint struct {
	Date     time.Time `json:"date"`
	Ticker   string    `json:"ticker"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
	SMA50    float64   `json:"sma_50"`
	SMA200   float64   `json:"sma_200"`
	RSI14    float64   `json:"rsi_14"`
	BBUpper  float64   `json:"bb_upper"`
	BBMid    float64   `json:"bb_mid"`
	BBLower  float64   `json:"bb_lower"`
	Trend    string    `json:"trend"`
	Momentum string    `json:"momentum"`
}

// Outlook summarizes the latest day of a ticker.
type Outlook struct {
	Ticker              string `json:"ticker"`
	LastUpdated         string `json:"last_updated_date"`
	LastClose           string `json:"last_close_price"`
	LongTermOutlook     string `json:"long_term_outlook"`
	ShortTermPrediction string `json:"short_term_prediction_5D"`
	PriceTarget         string `json:"prediction_price_target"`
}

// Trend computes indicators for one ticker and returns, at most, the last
// trading year of days on which every indicator is defined.
func Trend(ticker string, bars []Bar) ([]TrendPoint, error) {
	points, err := indicatorPoints(ticker, bars)
	if err != nil {
		return nil, err
	}
	if len(points) > trendWindow {
		points = points[len(points)-trendWindow:]
	}
	return points, nil
}

// ComputeOutlook derives the long-term outlook from the most recent complete day.
func ComputeOutlook(ticker string, bars []Bar) (Outlook, error) {
	points, err := indicatorPoints(ticker, bars)
	if err != nil {
		return Outlook{}, err
	}
	latest := points[len(points)-1]

	return Outlook{
		Ticker:              ticker,
		LastUpdated:         latest.Date.Format("2006-01-02"),
		LastClose:           fmt.Sprintf("%.2f", latest.Close),
		LongTermOutlook:     latest.Trend,
		ShortTermPrediction: NotAvailable,
		PriceTarget:         NotAvailable,
	}, nil
}

func indicatorPoints(ticker string, bars []Bar) ([]TrendPoint, error) {
	history := ForTicker(bars, ticker)
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	closes := make([]float64, len(history))
	for i, b := range history {
		closes[i] = b.Close
	}

	sma50 := SMA(closes, 50)
	sma200 := SMA(closes, 200)
	rsi := RSI(closes, 14)
	upper, mid, lower := Bollinger(closes, 20, 2)

	var points []TrendPoint
	for i, b := range history {
		if isMissing(sma50[i]) || isMissing(sma200[i]) || isMissing(rsi[i]) ||
			isMissing(upper[i]) || isMissing(mid[i]) || isMissing(lower[i]) {
			continue
		}
		points = append(points, TrendPoint{
			Date:     b.Date,
			Ticker:   b.Ticker,
			Open:     b.Open,
			High:     b.High,
			Low:      b.Low,
			Close:    b.Close,
			Volume:   b.Volume,
			SMA50:    sma50[i],
			SMA200:   sma200[i],
			RSI14:    rsi[i],
			BBUpper:  upper[i],
			BBMid:    mid[i],
			BBLower:  lower[i],
			Trend:    trendLabel(sma50[i], sma200[i]),
			Momentum: momentumLabel(rsi[i]),
		})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientHistory, ticker)
	}
	return points, nil
}

func trendLabel(sma50, sma200 float64) string {
	if sma50 > sma200 {
		return UpTrend
	}
	return DownTrend
}

func momentumLabel(rsi float64) string {
	switch {
	case rsi > 70:
		return Overbought
	case rsi < 30:
		return Oversold
	default:
		return Neutral
	}
}
