package testutils

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/Dewansh29/StockPulse/pkg/models"
)

// MockKafkaReader replays Messages, then reports DeadlineExceeded so the
// processor's read loop stops.
type MockKafkaReader struct {
	Messages []kafka.Message
	Index    int
	Mu       sync.Mutex
	Closed   bool
}

func (m *MockKafkaReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	if m.Closed {
		return kafka.Message{}, io.EOF
	}
	if m.Index >= len(m.Messages) {
		return kafka.Message{}, context.DeadlineExceeded
	}

	msg := m.Messages[m.Index]
	m.Index++
	return msg, nil
}

func (m *MockKafkaReader) Close() error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Closed = true
	return nil
}

// QuoteWrite is one quote command queued on the pipeline.
type QuoteWrite struct {
	Op     string // SET or PUBLISH
	Key    string
	Symbol string
	TTL    time.Duration
	Tick   models.StockUpdate
}

// MockPipeline decodes and records the quote commands queued on it.
type MockPipeline struct {
	redis.Pipeliner

	ExecCount int
	Writes    []QuoteWrite
	Mu        sync.Mutex
}

func (m *MockPipeline) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.record("SET", key, models.QuoteKeyPrefix, value, expiration)
	return redis.NewStatusCmd(ctx)
}

func (m *MockPipeline) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	m.record("PUBLISH", channel, models.QuoteChannelPrefix, message, 0)
	return redis.NewIntCmd(ctx)
}

func (m *MockPipeline) Exec(ctx context.Context) ([]redis.Cmder, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.ExecCount++
	return nil, nil
}

// Published returns the SeqIDs published for symbol, in order.
func (m *MockPipeline) Published(symbol string) []int64 {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	var seqs []int64
	for _, w := range m.Writes {
		if w.Op == "PUBLISH" && w.Symbol == symbol {
			seqs = append(seqs, w.Tick.SeqID)
		}
	}
	return seqs
}

func (m *MockPipeline) record(op, key, prefix string, value interface{}, ttl time.Duration) {
	w := QuoteWrite{Op: op, Key: key, TTL: ttl}
	if strings.HasPrefix(key, prefix) {
		w.Symbol = strings.TrimPrefix(key, prefix)
	}
	if b, ok := value.([]byte); ok {
		_ = json.Unmarshal(b, &w.Tick)
	}

	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Writes = append(m.Writes, w)
}

type MockRedisClient struct {
	PipelineSpy *MockPipeline
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{PipelineSpy: &MockPipeline{}}
}

func (m *MockRedisClient) Pipeline() redis.Pipeliner {
	return m.PipelineSpy
}

func (m *MockRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusCmd(ctx)
}

func (m *MockRedisClient) Close() error { return nil }
