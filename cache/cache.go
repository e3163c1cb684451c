// Package cache
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"
)

type Adapter string

const (
	RedisAdapter Adapter = "redis"
)

type Config struct {
	Adapter  Adapter
	URL      string
	DB       int
	Password string

	IsFlush bool

	DefaultExpiredTime time.Duration

	Logger *zap.Logger
}

type Client interface {
	ConcentrationReport(ctx context.Context, protocol string) (*types.MetricsReport, error)
	UpdateConcentrationReport(ctx context.Context, protocol string, report *types.MetricsReport) error

	BlockReport(ctx context.Context, protocol string) (*types.BlockResult, error)
	UpdateBlockReport(ctx context.Context, protocol string, report *types.BlockResult) error

	NetworkReport(ctx context.Context, protocol string) (*types.NetworkResult, error)
	UpdateNetworkReport(ctx context.Context, protocol string, report *types.NetworkResult) error

	// ingest summary
	UpdateTotalHolders(ctx context.Context, protocol string, holders uint64) error
	TotalHolders(ctx context.Context, protocol string) uint64

	ServerStatus(ctx context.Context) (*types.ServerStatus, error)
	UpdateServerStatus(ctx context.Context, serverStatus *types.ServerStatus) error
}

func New(cfg Config) (Client, error) {
	switch cfg.Adapter {
	case RedisAdapter:
		return newRedis(cfg)
	}
	return nil, errors.New("invalid cache config")
}

func newRedis(cfg Config) (Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		DB:       cfg.DB,
		Password: cfg.Password,
	})

	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	if cfg.IsFlush {
		msg, err := redisClient.FlushAll(context.Background()).Result()
		if err != nil || msg != "OK" {
			return nil, err
		}
	}

	logger := cfg.Logger.With(zap.String("cache", "redis"))
	client := &Redis{
		client: redisClient,
		logger: logger,
	}
	client.cfg = cfg
	return client, nil
}
