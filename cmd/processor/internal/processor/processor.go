// Package processor moves quote ticks from Kafka into the Redis quote cache
// and publishes them to dashboard subscribers.
package processor

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/pkg/config"
	"github.com/Dewansh29/StockPulse/pkg/models"
)

const (
	quoteTTL      = time.Hour
	workerBacklog = 100
)

type Processor struct {
	logger     Logger
	rdb        RedisClient
	reader     KafkaReader
	numWorkers int
}

func NewProcessor(cfg *config.Config, logger Logger, rdb RedisClient, reader KafkaReader) *Processor {
	return &Processor{
		logger:     logger,
		rdb:        rdb,
		reader:     reader,
		numWorkers: cfg.Processor.NumWorkers,
	}
}

// Run consumes until ctx is done, then drains the workers.
func (p *Processor) Run(ctx context.Context) error {
	workerChans := make([]chan []byte, p.numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < p.numWorkers; i++ {
		workerChans[i] = make(chan []byte, workerBacklog)
		wg.Add(1)
		go p.worker(i, workerChans[i], &wg)
	}

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		p.logger.Info("Processor Started", zap.Int("workers", p.numWorkers))
		for {
			m, err := p.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				p.logger.Error("Kafka Read Error", zap.Error(err))
				continue
			}

			// same symbol, same worker: keeps per-symbol ordering
			workerID := getWorkerID(m.Key, p.numWorkers)

			select {
			case workerChans[workerID] <- m.Value:
			case <-ctx.Done():
				return
			default:
				p.logger.Warn("Dropping slow tick", zap.String("symbol", string(m.Key)), zap.Int("worker_id", workerID))
			}
		}
	}()

	<-ctx.Done()
	<-readerDone
	p.logger.Info("Shutdown signal received, stopping processor...")

	for _, ch := range workerChans {
		close(ch)
	}
	p.logger.Info("Waiting for workers to drain...")
	wg.Wait()

	return nil
}

func (p *Processor) worker(id int, msgs <-chan []byte, wg *sync.WaitGroup) {
	defer wg.Done()
	ctx := context.Background()

	// only valid because a symbol always lands on the same worker
	lastSeq := make(map[string]int64)

	for payload := range msgs {
		var tick models.StockUpdate
		if err := json.Unmarshal(payload, &tick); err != nil {
			p.logger.Error("JSON Unmarshal Error", zap.Error(err))
			continue
		}
		if tick.Symbol == "" {
			p.logger.Warn("Tick without symbol", zap.ByteString("payload", payload))
			continue
		}

		if tick.SeqID <= lastSeq[tick.Symbol] {
			p.logger.Debug("Skipping duplicate tick", zap.String("symbol", tick.Symbol), zap.Int64("seq_id", tick.SeqID))
			continue
		}

		pipe := p.rdb.Pipeline()
		pipe.Set(ctx, models.QuoteKey(tick.Symbol), payload, quoteTTL)
		pipe.Publish(ctx, models.QuoteChannel(tick.Symbol), payload)

		if _, err := pipe.Exec(ctx); err != nil {
			p.logger.Error("Redis Pipeline Error", zap.Error(err), zap.String("symbol", tick.Symbol))
			continue
		}
		p.logger.Debug("Processed", zap.String("symbol", tick.Symbol), zap.Int("worker_id", id), zap.Int64("seq_id", tick.SeqID))
		lastSeq[tick.Symbol] = tick.SeqID
	}
}

func getWorkerID(key []byte, numWorkers int) int {
	h := fnv.New32a()
	h.Write(key)
	return int(h.Sum32() % uint32(numWorkers))
}
