// Package app holds the dashboard's page-level state: the stock collection,
// the search bar and the optional analysis service.
package app

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/pkg/analysis"
	"github.com/Dewansh29/StockPulse/pkg/collection"
	"github.com/Dewansh29/StockPulse/pkg/models"
)

// NotificationLifetime is how long a search notification stays on screen.
const NotificationLifetime = 3 * time.Second

var ErrAnalysisUnavailable = errors.New("analysis is not configured")

// Analyzer produces a long-term outlook for a ticker.
type Analyzer interface {
	Outlook(ticker string) (analysis.Outlook, error)
}

type SearchState struct {
	Value   string `json:"value"`
	Active  bool   `json:"active"`
	Focused bool   `json:"focused"`
}

type Notification struct {
	ID         string `json:"id"`
	Message    string `json:"message"`
	DurationMS int64  `json:"duration_ms"`
}

type SearchResult struct {
	Term         string               `json:"term"`
	Matches      []models.StockRecord `json:"matches"`
	Notification Notification         `json:"notification"`
}

type App struct {
	stocks   *collection.StockCollection
	analyzer Analyzer
	logger   *zap.Logger

	mu       sync.RWMutex
	search   SearchState
	onChange []func()
	onAdd    []func(symbol string)
}

// New builds the context. analyzer may be nil.
func New(stocks *collection.StockCollection, analyzer Analyzer, logger *zap.Logger) *App {
	return &App{
		stocks:   stocks,
		analyzer: analyzer,
		logger:   logger,
	}
}

// OnChange registers fn to run after every successful collection mutation.
func (a *App) OnChange(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onChange = append(a.onChange, fn)
}

// OnStockAdded registers fn to run with the symbol of every appended record.
func (a *App) OnStockAdded(fn func(symbol string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onAdd = append(a.onAdd, fn)
}

func (a *App) AddStock(record models.StockRecord) {
	a.stocks.Append(record)
	a.logger.Debug("Stock added", zap.String("symbol", record.Symbol))
	a.changed()

	a.mu.RLock()
	hooks := a.onAdd
	a.mu.RUnlock()
	for _, fn := range hooks {
		fn(record.Symbol)
	}
}

func (a *App) UpdateStock(symbol string, patch models.StockPatch) bool {
	if !a.stocks.UpdateBySymbol(symbol, patch) {
		return false
	}
	a.changed()
	return true
}

// ApplyTick applies a quote update to the matching record, if any.
func (a *App) ApplyTick(u models.StockUpdate) bool {
	return a.UpdateStock(u.Symbol, u.Patch())
}

func (a *App) GetStocks() []models.StockRecord { return a.stocks.List() }
func (a *App) Summary() models.Summary         { return a.stocks.Summary() }

func (a *App) Find(symbol string) (models.StockRecord, bool) {
	return a.stocks.Find(symbol)
}

func (a *App) Filter(term string) []models.StockRecord {
	return a.stocks.Filter(term)
}

func (a *App) Search() SearchState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.search
}

func (a *App) FocusSearch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.search.Focused = true
	a.search.Active = true
}

func (a *App) SetSearchActive(active bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.search.Active = active
	a.search.Focused = active
}

func (a *App) SetSearchValue(v string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.search.Value = v
}

func (a *App) SearchValue() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.search.Value
}

// SearchStock puts symbol into the search bar and focuses it.
func (a *App) SearchStock(symbol string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.search.Value = symbol
	a.search.Focused = true
	a.search.Active = true
}

// SubmitSearch runs a search for raw. A blank term is ignored and leaves the
// search state untouched.
func (a *App) SubmitSearch(raw string) (SearchResult, bool) {
	term := strings.TrimSpace(raw)
	if term == "" {
		return SearchResult{}, false
	}

	a.mu.Lock()
	a.search = SearchState{}
	a.mu.Unlock()

	a.logger.Info("Searching for stock", zap.String("term", term))

	return SearchResult{
		Term:    term,
		Matches: a.stocks.Filter(term),
		Notification: Notification{
			ID:         uuid.NewString(),
			Message:    "Searching for " + term + "...",
			DurationMS: NotificationLifetime.Milliseconds(),
		},
	}, true
}

func (a *App) Analyze(symbol string) (analysis.Outlook, error) {
	a.logger.Info("Analyzing stock", zap.String("symbol", symbol))
	if a.analyzer == nil {
		return analysis.Outlook{}, ErrAnalysisUnavailable
	}
	return a.analyzer.Outlook(symbol)
}

func (a *App) changed() {
	a.mu.RLock()
	hooks := a.onChange
	a.mu.RUnlock()

	for _, fn := range hooks {
		fn()
	}
}
