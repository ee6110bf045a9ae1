package app

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/pkg/analysis"
	"github.com/Dewansh29/StockPulse/pkg/collection"
	"github.com/Dewansh29/StockPulse/pkg/models"
)

type stubAnalyzer struct {
	outlook analysis.Outlook
	err     error
	calls   []string
}

func (s *stubAnalyzer) Outlook(ticker string) (analysis.Outlook, error) {
	s.calls = append(s.calls, ticker)
	return s.outlook, s.err
}

func newApp(analyzer Analyzer) *App {
	return New(collection.New(collection.SampleStocks()...), analyzer, zap.NewNop())
}

func TestAddAndUpdateFireChangeHook(t *testing.T) {
	a := New(collection.New(), nil, zap.NewNop())
	changes := 0
	a.OnChange(func() { changes++ })

	a.AddStock(models.NewStockRecord("AAPL", "Apple Inc.",
		decimal.RequireFromString("185.42"), decimal.RequireFromString("2.34"), decimal.RequireFromString("1.28")))
	assert.Equal(t, 1, changes)

	price := decimal.RequireFromString("190")
	assert.True(t, a.UpdateStock("AAPL", models.StockPatch{Price: &price}))
	assert.Equal(t, 2, changes)

	assert.False(t, a.UpdateStock("NOPE", models.StockPatch{Price: &price}))
	assert.Equal(t, 2, changes, "a missed update must not fire the hook")

	stocks := a.GetStocks()
	require.Len(t, stocks, 1)
	assert.True(t, stocks[0].Price.Equal(price))
	assert.Equal(t, models.Summary{Total: 1, Gainers: 1, Losers: 0}, a.Summary())
}

func TestAddStockFiresAddedHook(t *testing.T) {
	a := newApp(nil)
	var added []string
	a.OnStockAdded(func(symbol string) { added = append(added, symbol) })

	a.AddStock(models.NewStockRecord("NFLX", "Netflix Inc.",
		decimal.RequireFromString("410.00"), decimal.RequireFromString("1.00"), decimal.RequireFromString("0.24")))
	price := decimal.RequireFromString("190")
	a.UpdateStock("AAPL", models.StockPatch{Price: &price})

	assert.Equal(t, []string{"NFLX"}, added)
}

func TestApplyTick(t *testing.T) {
	a := newApp(nil)

	ok := a.ApplyTick(models.StockUpdate{
		Symbol:        "GOOGL",
		Price:         decimal.RequireFromString("145.00"),
		Change:        decimal.RequireFromString("1.21"),
		ChangePercent: decimal.RequireFromString("0.84"),
		SeqID:         1,
	})
	require.True(t, ok)

	rec, found := a.Find("GOOGL")
	require.True(t, found)
	assert.True(t, rec.IsPositive)
	assert.Equal(t, "Alphabet Inc.", rec.Company)
	assert.Equal(t, models.Summary{Total: 6, Gainers: 5, Losers: 1}, a.Summary())

	assert.False(t, a.ApplyTick(models.StockUpdate{Symbol: "IBM"}))
}

func TestSearchState(t *testing.T) {
	a := newApp(nil)

	a.FocusSearch()
	assert.Equal(t, SearchState{Active: true, Focused: true}, a.Search())

	a.SetSearchActive(false)
	assert.False(t, a.Search().Active)

	a.SearchStock("TSLA")
	assert.Equal(t, "TSLA", a.SearchValue())
	assert.True(t, a.Search().Focused)

	a.SetSearchValue("")
	assert.Equal(t, "", a.SearchValue())
}

func TestSubmitSearch(t *testing.T) {
	a := newApp(nil)
	a.SearchStock("  ms ")

	res, ok := a.SubmitSearch("  ms ")
	require.True(t, ok)
	assert.Equal(t, "ms", res.Term)
	assert.Equal(t, "Searching for ms...", res.Notification.Message)
	assert.Equal(t, int64(3000), res.Notification.DurationMS)
	_, err := uuid.Parse(res.Notification.ID)
	assert.NoError(t, err)

	require.Len(t, res.Matches, 1)
	assert.Equal(t, "MSFT", res.Matches[0].Symbol)

	assert.Equal(t, SearchState{}, a.Search(), "search bar is cleared and deactivated")
}

func TestSubmitSearch_BlankIsIgnored(t *testing.T) {
	a := newApp(nil)
	a.SetSearchValue("   ")
	a.FocusSearch()

	_, ok := a.SubmitSearch("   ")
	assert.False(t, ok)
	assert.Equal(t, SearchState{Value: "   ", Active: true, Focused: true}, a.Search())
}

func TestAnalyze(t *testing.T) {
	_, err := newApp(nil).Analyze("AAPL")
	assert.ErrorIs(t, err, ErrAnalysisUnavailable)

	stub := &stubAnalyzer{outlook: analysis.Outlook{Ticker: "AAPL", LongTermOutlook: analysis.UpTrend}}
	out, err := newApp(stub).Analyze("AAPL")
	require.NoError(t, err)
	assert.Equal(t, analysis.UpTrend, out.LongTermOutlook)
	assert.Equal(t, []string{"AAPL"}, stub.calls)

	failing := &stubAnalyzer{err: analysis.ErrTickerNotFound}
	_, err = newApp(failing).Analyze("IBM")
	assert.True(t, errors.Is(err, analysis.ErrTickerNotFound))
}
