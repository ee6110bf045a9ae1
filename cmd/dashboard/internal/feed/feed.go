// Package feed keeps the dashboard's stock collection in step with the live
// quote cache.
package feed

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/repository"
	"github.com/Dewansh29/StockPulse/pkg/models"
)

const unsubscribeTimeout = 2 * time.Second

// Applier receives decoded quote ticks.
type Applier interface {
	ApplyTick(u models.StockUpdate) bool
}

type Feed struct {
	store  repository.QuoteStore
	target Applier
	logger *zap.Logger

	mu         sync.Mutex
	lastSeq    map[string]int64
	subscribed map[string]bool
}

func New(store repository.QuoteStore, target Applier, logger *zap.Logger) *Feed {
	return &Feed{
		store:   store,
		target:  target,
		logger:  logger,
		lastSeq:    make(map[string]int64),
		subscribed: make(map[string]bool),
	}
}

// Start applies cached snapshots, subscribes to every symbol and then blocks
// applying live ticks until ctx is done. Every subscription is dropped before
// it returns.
func (f *Feed) Start(ctx context.Context, symbols []string) error {
	defer f.unsubscribeAll()

	snapshots, err := f.store.GetSnapshots(ctx, symbols)
	if err != nil {
		return err
	}
	for _, snap := range snapshots {
		f.handle("", snap)
	}

	for _, sym := range symbols {
		if _, err := f.subscribe(ctx, sym); err != nil {
			return err
		}
	}
	f.logger.Info("Quote feed subscribed", zap.Strings("symbols", symbols))

	f.store.RunPubSub(ctx, f.handle)
	return ctx.Err()
}

// Track subscribes to a symbol that joined the collection after Start and
// applies its cached quote. Symbols already subscribed are left alone.
func (f *Feed) Track(ctx context.Context, symbol string) error {
	added, err := f.subscribe(ctx, symbol)
	if err != nil || !added {
		return err
	}

	snapshots, err := f.store.GetSnapshots(ctx, []string{symbol})
	if err != nil {
		return err
	}
	for _, snap := range snapshots {
		f.handle(symbol, snap)
	}
	f.logger.Info("Quote feed subscribed", zap.String("symbol", symbol))
	return nil
}

// Subscribed lists the symbols with a live subscription.
func (f *Feed) Subscribed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.subscribed))
	for sym := range f.subscribed {
		out = append(out, sym)
	}
	return out
}

func (f *Feed) subscribe(ctx context.Context, symbol string) (bool, error) {
	f.mu.Lock()
	if f.subscribed[symbol] {
		f.mu.Unlock()
		return false, nil
	}
	f.subscribed[symbol] = true
	f.mu.Unlock()

	if err := f.store.SubscribeToFeed(ctx, symbol); err != nil {
		f.mu.Lock()
		delete(f.subscribed, symbol)
		f.mu.Unlock()
		return false, err
	}
	return true, nil
}

func (f *Feed) unsubscribeAll() {
	f.mu.Lock()
	symbols := make([]string, 0, len(f.subscribed))
	for sym := range f.subscribed {
		symbols = append(symbols, sym)
	}
	f.subscribed = make(map[string]bool)
	f.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), unsubscribeTimeout)
	defer cancel()
	for _, sym := range symbols {
		if err := f.store.UnsubscribeFromFeed(ctx, sym); err != nil {
			f.logger.Warn("Unsubscribe failed", zap.String("symbol", sym), zap.Error(err))
		}
	}
}

// handle decodes one payload and applies it unless it is older than what was
// already applied for the symbol.
func (f *Feed) handle(symbol, payload string) {
	var u models.StockUpdate
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		f.logger.Warn("Malformed quote", zap.String("symbol", symbol), zap.Error(err))
		return
	}
	if symbol != "" && u.Symbol != symbol {
		f.logger.Warn("Quote symbol mismatch", zap.String("channel", symbol), zap.String("symbol", u.Symbol))
		return
	}

	f.mu.Lock()
	if u.SeqID <= f.lastSeq[u.Symbol] {
		f.mu.Unlock()
		return
	}
	f.lastSeq[u.Symbol] = u.SeqID
	f.mu.Unlock()

	if !f.target.ApplyTick(u) {
		f.logger.Debug("Quote for unknown symbol", zap.String("symbol", u.Symbol))
	}
}
