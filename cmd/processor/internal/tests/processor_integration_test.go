package tests

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/cmd/processor/internal/processor"
	"github.com/Dewansh29/StockPulse/cmd/processor/internal/testutils"
	"github.com/Dewansh29/StockPulse/pkg/config"
	"github.com/Dewansh29/StockPulse/pkg/models"
)

func TestProcessor_EndToEnd_Flow(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	update := models.StockUpdate{
		Symbol:        "GOOGL",
		Price:         decimal.RequireFromString("143.10"),
		Change:        decimal.RequireFromString("-0.69"),
		ChangePercent: decimal.RequireFromString("-0.48"),
		SeqID:         100,
	}
	val, _ := json.Marshal(update)

	// Use Mock Reader because spinning up real Kafka is heavy/complex for unit tests
	mockReader := &testutils.MockKafkaReader{Messages: []kafka.Message{
		{Key: []byte("GOOGL"), Value: val},
	}}

	cfg := &config.Config{}
	cfg.Processor.NumWorkers = 1

	proc := processor.NewProcessor(cfg, zap.NewNop(), rdb, mockReader)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		proc.Run(ctx)
		close(done)
	}()

	key := models.QuoteKey("GOOGL")
	success := false
	for i := 0; i < 10; i++ {
		if mr.Exists(key) {
			success = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !success {
		t.Fatalf("Processor did not write %s to Redis", key)
	}

	savedVal, _ := mr.Get(key)
	if savedVal != string(val) {
		t.Errorf("Redis value mismatch.\nGot:  %s\nWant: %s", savedVal, string(val))
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Hour {
		t.Errorf("Expected a TTL of at most an hour, got %v", ttl)
	}

	var cached models.StockUpdate
	if err := json.Unmarshal([]byte(savedVal), &cached); err != nil || !cached.Patch().Price.Equal(update.Price) {
		t.Errorf("Cached quote does not decode back to the tick: %v", err)
	}

	cancel()
	<-done
}
