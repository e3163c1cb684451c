package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/labstack/echo"

	"github.com/govlens/governance-backend/analytics"
	"github.com/govlens/governance-backend/api"
	"github.com/govlens/governance-backend/cache"
	"github.com/govlens/governance-backend/cfg"
	"github.com/govlens/governance-backend/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		panic(err.Error())
	}

	serviceCfg, err := cfg.New()
	if err != nil {
		panic(err.Error())
	}

	if err := setupSentry(serviceCfg); err != nil {
		panic(err)
	}
	defer sentry.Flush(2 * time.Second)

	logger, err := newLogger(serviceCfg)
	if err != nil {
		panic("cannot init logger")
	}
	logger.Info("Start API server...")

	defer func() {
		if err := recover(); err != nil {
			logger.Error("cannot recover")
		}
		if err := logger.Sync(); err != nil {
			logger.Error("cannot sync log")
		}
	}()

	dbClient, err := db.NewClient(db.Config{
		DbAdapter: db.Adapter(serviceCfg.StorageDriver),
		DbName:    serviceCfg.StorageDB,
		URL:       serviceCfg.StorageURI,
		MinConn:   serviceCfg.StorageMinConn,
		MaxConn:   serviceCfg.StorageMaxConn,
		FlushDB:   serviceCfg.StorageIsFlush,
		Logger:    logger,
	})
	if err != nil {
		log.Panicf("cannot create storage client %s", err.Error())
	}

	cacheClient, err := cache.New(cache.Config{
		Adapter:            cache.Adapter(serviceCfg.CacheEngine),
		URL:                serviceCfg.CacheURL,
		DB:                 serviceCfg.CacheDB,
		Password:           serviceCfg.CachePassword,
		IsFlush:            serviceCfg.CacheIsFlush,
		DefaultExpiredTime: serviceCfg.CacheExpiredTime,
		Logger:             logger,
	})
	if err != nil {
		log.Panicf("cannot create cache client %s", err.Error())
	}

	srv := (&api.Server{}).
		SetSecret(serviceCfg.HttpRequestSecret).
		SetLogger(logger).
		SetStorage(dbClient).
		SetCache(cacheClient).
		SetAnalyzer(analytics.NewAnalyzer(logger)).
		SetThresholds(serviceCfg.SimilarityThreshold, serviceCfg.NakamotoThreshold)

	e := echo.New()
	go func() {
		api.Start(e, srv, serviceCfg)
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	waitExit := make(chan bool)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for range sigCh {
			cancel()
			if err := e.Shutdown(ctx); err != nil {
				panic(err)
			}
			waitExit <- true
		}
	}()
	<-waitExit
}

func setupSentry(cfg cfg.AnalyticsConfig) error {
	opts := sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.ServerMode,
	}
	if err := sentry.Init(opts); err != nil {
		return err
	}
	return nil
}
