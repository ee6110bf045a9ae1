package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/gobwas/ws"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/api"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/api/handler"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/app"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/events"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/feed"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/gateway"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/render"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/repository"
	"github.com/Dewansh29/StockPulse/pkg/analysis"
	"github.com/Dewansh29/StockPulse/pkg/collection"
	"github.com/Dewansh29/StockPulse/pkg/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := config.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stocks := collection.New()
	if cfg.Dashboard.SeedSample {
		stocks = collection.New(collection.SampleStocks()...)
	}

	var analyzer app.Analyzer
	if cfg.Dashboard.HistoryFile != "" {
		svc, err := analysis.LoadService(cfg.Dashboard.HistoryFile, cfg.Dashboard.AnalysisTTL)
		if err != nil {
			logger.Warn("Analysis disabled", zap.String("file", cfg.Dashboard.HistoryFile), zap.Error(err))
		} else {
			analyzer = svc
			logger.Info("Analysis enabled", zap.Strings("tickers", svc.Tickers()))
		}
	}

	dashboard := app.New(stocks, analyzer, logger)

	renderer, err := render.New()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	dispatcher := events.NewDispatcher(logger)
	events.Bind(dispatcher, dashboard, renderer, logger)

	var feedDone chan struct{}
	if cfg.Dashboard.FeedEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := repository.NewRedisStore(rdb)
		defer store.Close()

		quotes := feed.New(store, dashboard, logger)
		dashboard.OnStockAdded(func(symbol string) {
			if err := quotes.Track(ctx, symbol); err != nil {
				logger.Warn("Quote subscription failed", zap.String("symbol", symbol), zap.Error(err))
			}
		})

		feedDone = make(chan struct{})
		go func() {
			defer close(feedDone)
			if err := quotes.Start(ctx, stocks.Symbols()); err != nil && err != context.Canceled {
				logger.Error("Quote feed stopped", zap.Error(err))
			}
		}()
	}

	wsHandler := func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			logger.Warn("Websocket upgrade failed", zap.Error(err))
			return
		}
		gateway.NewClient(conn, dispatcher, logger).Start()
	}

	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	hd := handler.NewHandler(dashboard, renderer, cfg.Dashboard.Suggestions, logger)
	router := api.NewRouter(hd, wsHandler, cfg.Dashboard.RequestTimeout, logger)

	srv := &http.Server{Addr: cfg.App.Port, Handler: router}

	go func() {
		logger.Info("Server Started", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP Error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cancel()
	srv.Shutdown(context.Background())
	if feedDone != nil {
		<-feedDone
	}
	logger.Info("Shutdown Complete")
}
