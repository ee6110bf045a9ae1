// Package generator simulates quote ticks for a set of stocks and writes them
// to Kafka.
package generator

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/pkg/models"
)

var (
	hundred  = decimal.NewFromInt(100)
	minPrice = decimal.RequireFromString("0.01")
)

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Walk decides which symbol moves next and by how much.
type Walk interface {
	// Pick returns an index in [0, n).
	Pick(n int) int
	// Step returns the next move as a fraction of the volatility, in [-1, 1).
	Step() float64
}

// RandomWalk draws picks and steps uniformly.
type RandomWalk struct {
	rnd *rand.Rand
}

func NewRandomWalk(seed int64) *RandomWalk {
	return &RandomWalk{rnd: rand.New(rand.NewSource(seed))}
}

func (w *RandomWalk) Pick(n int) int { return w.rnd.Intn(n) }
func (w *RandomWalk) Step() float64  { return w.rnd.Float64()*2 - 1 }

// quoteState tracks one symbol's random walk against its previous close.
type quoteState struct {
	prevClose decimal.Decimal
	price     decimal.Decimal
	seq       int64
}

type StockGenerator struct {
	logger     *zap.Logger
	writer     KafkaWriter
	symbols    []string
	quotes     map[string]*quoteState
	volatility decimal.Decimal
	interval   time.Duration
	walk       Walk
	clock      Clock
}

// NewStockGenerator starts each symbol at its seed price, with the seed's
// change defining the previous close. volatility is the largest move per
// tick, in percent of the current price.
func NewStockGenerator(
	logger *zap.Logger,
	writer KafkaWriter,
	seeds []models.StockRecord,
	volatility float64,
	interval time.Duration,
	walk Walk,
	clock Clock,
) *StockGenerator {
	sg := &StockGenerator{
		logger:     logger,
		writer:     writer,
		quotes:     make(map[string]*quoteState, len(seeds)),
		volatility: decimal.NewFromFloat(volatility),
		interval:   interval,
		walk:       walk,
		clock:      clock,
	}
	for _, s := range seeds {
		if _, dup := sg.quotes[s.Symbol]; dup {
			continue
		}
		sg.symbols = append(sg.symbols, s.Symbol)
		sg.quotes[s.Symbol] = &quoteState{
			prevClose: s.Price.Sub(s.Change),
			price:     s.Price,
		}
	}
	return sg
}

func (sg *StockGenerator) Run(ctx context.Context) {
	sg.logger.Info("Generator Started", zap.Strings("symbols", sg.symbols))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if len(sg.symbols) == 0 {
				sg.clock.Sleep(1 * time.Second)
				continue
			}

			symbol := sg.symbols[sg.walk.Pick(len(sg.symbols))]
			tick := sg.Next(symbol)

			payload, err := json.Marshal(tick)
			if err != nil {
				sg.logger.Error("JSON Marshal Error", zap.Error(err))
				continue
			}

			err = sg.writer.WriteMessages(ctx, kafka.Message{
				Key:   []byte(symbol),
				Value: payload,
			})
			if err != nil {
				sg.logger.Error("Kafka Write Error", zap.Error(err))
			} else {
				sg.logger.Debug("Sent tick", zap.String("symbol", symbol), zap.String("price", tick.Price.StringFixed(2)))
			}

			sg.clock.Sleep(sg.interval)
		}
	}
}

// Next advances symbol's random walk by one step and returns the tick.
func (sg *StockGenerator) Next(symbol string) models.StockUpdate {
	q := sg.quotes[symbol]

	movePct := decimal.NewFromFloat(sg.walk.Step()).Mul(sg.volatility)
	price := q.price.Add(q.price.Mul(movePct).Div(hundred)).Round(2)
	if price.LessThan(minPrice) {
		price = minPrice
	}
	q.price = price
	q.seq++

	change := price.Sub(q.prevClose)
	pct := decimal.Zero
	if !q.prevClose.IsZero() {
		pct = change.Div(q.prevClose).Mul(hundred).Round(2)
	}

	return models.StockUpdate{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: pct,
		Timestamp:     sg.clock.Now().UnixMicro(),
		SeqID:         q.seq,
	}
}
