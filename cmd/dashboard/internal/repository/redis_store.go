package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Dewansh29/StockPulse/pkg/models"
)

const (
	KeyPrefix     = models.QuoteKeyPrefix
	ChannelPrefix = models.QuoteChannelPrefix
)

// Compile-time check to ensure RedisStore implements QuoteStore
var _ QuoteStore = (*RedisStore)(nil)

type RedisStore struct {
	client *redis.Client
	pubsub *redis.PubSub
	mu     sync.Mutex
}

func NewRedisStore(client *redis.Client) *RedisStore {
	ps := client.Subscribe(context.Background())
	return &RedisStore{
		client: client,
		pubsub: ps,
	}
}

// GetSnapshots fetches the latest quote for each symbol (MGET). Symbols
// without a cached quote are skipped.
func (r *RedisStore) GetSnapshots(ctx context.Context, symbols []string) ([]string, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	keys := make([]string, len(symbols))
	for i, sym := range symbols {
		keys[i] = models.QuoteKey(sym)
	}

	results, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	var snapshots []string
	for _, val := range results {
		if payload, ok := val.(string); ok && payload != "" {
			snapshots = append(snapshots, payload)
		}
	}
	return snapshots, nil
}

func (r *RedisStore) SubscribeToFeed(ctx context.Context, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pubsub.Subscribe(ctx, models.QuoteChannel(symbol))
}

func (r *RedisStore) UnsubscribeFromFeed(ctx context.Context, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pubsub.Unsubscribe(ctx, models.QuoteChannel(symbol))
}

// RunPubSub blocks, handing each message's symbol and payload to onMessage,
// until ctx is done or the subscription is closed.
func (r *RedisStore) RunPubSub(ctx context.Context, onMessage func(symbol string, payload string)) {
	ch := r.pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			symbol := strings.TrimPrefix(msg.Channel, ChannelPrefix)
			if symbol == msg.Channel || symbol == "" {
				continue
			}
			onMessage(symbol, msg.Payload)
		}
	}
}

func (r *RedisStore) Close() error {
	if err := r.pubsub.Close(); err != nil {
		return err
	}
	return r.client.Close()
}
