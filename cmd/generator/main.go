package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/cmd/generator/internal/generator"
	"github.com/Dewansh29/StockPulse/pkg/collection"
	"github.com/Dewansh29/StockPulse/pkg/config"
)

const topicPartitions = 4

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := config.NewLogger(cfg.Logger)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := generator.SystemClock{}
	topics := generator.NewTopicCreator(logger, &generator.BrokerDialer{Dialer: &kafka.Dialer{Timeout: 10 * time.Second}}, clock)
	if err := topics.Ensure(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, topicPartitions); err != nil {
		logger.Warn("Topic setup incomplete", zap.Error(err))
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Kafka.Brokers...),
		Topic:    cfg.Kafka.Topic,
		Balancer: &kafka.Hash{}, // same symbol, same partition
		// Send batches to reduce network IO
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
	}

	walk := generator.NewRandomWalk(time.Now().UnixNano())
	gen := generator.NewStockGenerator(logger, writer, collection.SampleStocks(),
		cfg.Generator.Volatility, cfg.Generator.Interval, walk, clock)

	gen.Run(ctx)
	logger.Info("Shutdown signal received")

	// Flush buffered ticks
	if err := writer.Close(); err != nil {
		logger.Error("Error closing Kafka writer", zap.Error(err))
	} else {
		logger.Info("Kafka writer closed cleanly")
	}
}
