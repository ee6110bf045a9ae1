package repository

import (
	"context"
)

// QuoteStore is the dashboard's view of the live quote cache.
type QuoteStore interface {
	GetSnapshots(ctx context.Context, symbols []string) ([]string, error)
	SubscribeToFeed(ctx context.Context, symbol string) error
	UnsubscribeFromFeed(ctx context.Context, symbol string) error
	RunPubSub(ctx context.Context, onMessage func(symbol string, payload string))
	Close() error
}
