package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur-booking/internal/config"
	"github.com/iliyamo/fyyur-booking/internal/database"
	"github.com/iliyamo/fyyur-booking/internal/logging"
	"github.com/iliyamo/fyyur-booking/internal/metrics"
	"github.com/iliyamo/fyyur-booking/internal/queue"
	"github.com/iliyamo/fyyur-booking/internal/router"
	"github.com/iliyamo/fyyur-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.IsDev(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Fatal("database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	rdb, err := config.NewRedisClient(config.LoadRedisConfig())
	if err != nil {
		logger.Warn("redis unavailable; cache and rate limit disabled", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []service.Option{service.WithLogger(logger), service.WithMetrics(m)}
	qcfg := config.LoadQueueConfig()
	if qcfg.Enabled {
		pub := queue.NewPublisher(qcfg, logger)
		opts = append(opts, service.WithPublisher(pub))
		go func() {
			if err := pub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("event publisher stopped", zap.Error(err))
			}
		}()
		go func() {
			if err := queue.NewConsumer(qcfg, logger).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("activity consumer stopped", zap.Error(err))
			}
		}()
	}
	dir := service.NewDirectory(db, opts...)

	e := router.New(router.Deps{
		Dir:            dir,
		DB:             db,
		Redis:          rdb,
		Cache:          config.LoadCacheConfig(),
		RateLimit:      config.LoadRateLimitConfig(),
		Metrics:        m,
		Gatherer:       reg,
		Log:            logger,
		EditorSecret:   cfg.EditorSecret,
		RequestTimeout: cfg.RequestTimeout,
	})

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.Bool("write_auth", cfg.EditorSecret != ""))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
