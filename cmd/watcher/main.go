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

	"github.com/govlens/governance-backend/analytics"
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

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         serviceCfg.SentryDSN,
		Environment: serviceCfg.ServerMode,
	}); err != nil {
		panic(err)
	}
	defer sentry.Flush(2 * time.Second)

	logger, err := newLogger(serviceCfg)
	if err != nil {
		panic("cannot init logger")
	}
	logger.Info("Start watcher...")

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

	w := &watcher{
		cfg:         serviceCfg,
		dbClient:    dbClient,
		cacheClient: cacheClient,
		analyzer:    analytics.NewAnalyzer(logger),
		logger:      logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go w.run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	cancel()
}
