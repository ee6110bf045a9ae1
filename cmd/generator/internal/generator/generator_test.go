package generator_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/cmd/generator/internal/generator"
	"github.com/Dewansh29/StockPulse/cmd/generator/internal/testutils"
	"github.com/Dewansh29/StockPulse/pkg/collection"
	"github.com/Dewansh29/StockPulse/pkg/models"
)

func newGenerator(walk generator.Walk, writer generator.KafkaWriter) *generator.StockGenerator {
	return generator.NewStockGenerator(zap.NewNop(), writer, collection.SampleStocks(), 0.5,
		100*time.Millisecond, walk, &testutils.MockClock{CurrentTime: time.Unix(0, 0)})
}

func TestGenerator_Logic(t *testing.T) {
	mockWriter := &testutils.MockKafkaWriter{}

	// Always pick index 0 (AAPL) with no movement
	gen := newGenerator(&testutils.MockWalk{Index: 0, Move: 0}, mockWriter)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	gen.Run(ctx)

	mockWriter.Mu.Lock()
	defer mockWriter.Mu.Unlock()

	if len(mockWriter.Messages) == 0 {
		t.Fatal("Expected messages to be generated")
	}

	var update models.StockUpdate
	if err := json.Unmarshal(mockWriter.Messages[0].Value, &update); err != nil {
		t.Fatalf("Generated invalid JSON: %v", err)
	}

	if update.Symbol != "AAPL" || string(mockWriter.Messages[0].Key) != "AAPL" {
		t.Errorf("Expected AAPL, got %s", update.Symbol)
	}
	if update.SeqID != 1 {
		t.Errorf("Expected SeqID 1, got %d", update.SeqID)
	}
	// no movement: the seed quote is reproduced against its previous close
	if !update.Price.Equal(decimal.RequireFromString("185.42")) {
		t.Errorf("Expected price 185.42, got %s", update.Price)
	}
	if !update.Change.Equal(decimal.RequireFromString("2.34")) {
		t.Errorf("Expected change 2.34, got %s", update.Change)
	}
	if !update.ChangePercent.Equal(decimal.RequireFromString("1.28")) {
		t.Errorf("Expected change percent 1.28, got %s", update.ChangePercent)
	}
	if update.Timestamp != 0 {
		t.Errorf("Expected the mock clock's timestamp, got %d", update.Timestamp)
	}

	var second models.StockUpdate
	json.Unmarshal(mockWriter.Messages[1].Value, &second)
	if second.SeqID != 2 {
		t.Errorf("Expected SeqID to increase per symbol, got %d", second.SeqID)
	}
}

func TestGenerator_NextMovesWithinVolatility(t *testing.T) {
	tests := []struct {
		name      string
		move      float64
		wantPrice string
		positive  bool
	}{
		// GOOGL 142.56, previous close 143.79
		{"max up", 1, "143.27", false},
		{"max down", -1, "141.85", false},
		{"flat", 0, "142.56", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newGenerator(&testutils.MockWalk{Move: tt.move}, &testutils.MockKafkaWriter{})

			tick := gen.Next("GOOGL")

			if tick.Price.StringFixed(2) != tt.wantPrice {
				t.Errorf("Expected price %s, got %s", tt.wantPrice, tick.Price.StringFixed(2))
			}
			if !tick.Change.Equal(tick.Price.Sub(decimal.RequireFromString("143.79"))) {
				t.Errorf("Change should be measured against the previous close, got %s", tick.Change)
			}
			if tick.Patch().IsPositive == nil || *tick.Patch().IsPositive != tt.positive {
				t.Errorf("Unexpected direction for %s", tick.Change)
			}
		})
	}
}

func TestGenerator_WriteErrorsDoNotStopTheLoop(t *testing.T) {
	mockWriter := &testutils.MockKafkaWriter{ShouldFail: true}
	gen := newGenerator(&testutils.MockWalk{}, mockWriter)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	gen.Run(ctx)

	if len(mockWriter.Messages) != 0 {
		t.Errorf("Failed writes should not be recorded")
	}
}

func TestTopicCreator_Ensure(t *testing.T) {
	mockDialer := &testutils.MockKafkaDialer{}
	tc := generator.NewTopicCreator(zap.NewNop(), mockDialer, &testutils.MockClock{})

	if err := tc.Ensure(context.Background(), []string{"broker:9092"}, "quote_ticks", 4); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	if mockDialer.ConnSpy == nil || len(mockDialer.ConnSpy.CreatedTopics) == 0 {
		t.Fatal("No topics created")
	}
	created := mockDialer.ConnSpy.CreatedTopics[0]
	if created.Topic != "quote_ticks" || created.NumPartitions != 4 {
		t.Errorf("Unexpected topic config %+v", created)
	}
	if len(mockDialer.Dialed) != 2 || mockDialer.Dialed[1] != "localhost:9092" {
		t.Errorf("Expected broker then controller dial, got %v", mockDialer.Dialed)
	}
}

func TestTopicCreator_Errors(t *testing.T) {
	exists := &testutils.MockKafkaDialer{ConnSpy: &testutils.MockKafkaConn{CreateErr: kafka.TopicAlreadyExists}}
	tc := generator.NewTopicCreator(zap.NewNop(), exists, &testutils.MockClock{})
	if err := tc.Ensure(context.Background(), []string{"b:9092"}, "t", 1); err != nil {
		t.Errorf("An existing topic should not be an error, got %v", err)
	}

	unreachable := &testutils.MockKafkaDialer{DialErr: errors.New("connection refused")}
	tc = generator.NewTopicCreator(zap.NewNop(), unreachable, &testutils.MockClock{})
	if err := tc.Ensure(context.Background(), []string{"a:9092", "b:9092"}, "t", 1); err == nil {
		t.Error("Expected a dial error")
	}
	if len(unreachable.Dialed) != 2 {
		t.Errorf("Expected every broker to be tried, got %v", unreachable.Dialed)
	}

	if err := tc.Ensure(context.Background(), nil, "t", 1); err == nil {
		t.Error("Expected an error without brokers")
	}

	notReady := &testutils.MockKafkaDialer{ConnSpy: &testutils.MockKafkaConn{NoPartitions: true}}
	tc = generator.NewTopicCreator(zap.NewNop(), notReady, &testutils.MockClock{})
	if err := tc.Ensure(context.Background(), []string{"b:9092"}, "t", 1); !errors.Is(err, generator.ErrTopicNotReady) {
		t.Errorf("Expected ErrTopicNotReady, got %v", err)
	}
}

func TestRandomWalk_Bounds(t *testing.T) {
	w := generator.NewRandomWalk(42)
	for i := 0; i < 1000; i++ {
		if p := w.Pick(6); p < 0 || p >= 6 {
			t.Fatalf("Pick out of range: %d", p)
		}
		if s := w.Step(); s < -1 || s >= 1 {
			t.Fatalf("Step out of range: %f", s)
		}
	}

	a, b := generator.NewRandomWalk(7), generator.NewRandomWalk(7)
	if a.Step() != b.Step() {
		t.Error("Walks with the same seed should agree")
	}
}
