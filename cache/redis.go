// Package cache
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"
	"github.com/govlens/governance-backend/utils"
)

const (
	KeyConcentrationReport = "#report#concentration#%s"
	KeyBlockReport         = "#report#blocks#%s"
	KeyNetworkReport       = "#report#network#%s"

	KeyTotalHolders = "#holders#total#%s"

	KeyServerStatus = "#server#status"

	defaultExpiredTime = 60 * time.Minute
)

type Redis struct {
	cfg    Config
	client *redis.Client

	logger *zap.Logger
}

func (c *Redis) expiration() time.Duration {
	if c.cfg.DefaultExpiredTime > 0 {
		return c.cfg.DefaultExpiredTime
	}
	return defaultExpiredTime
}

func (c *Redis) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if _, err := c.client.Set(ctx, key, string(data), c.expiration()).Result(); err != nil {
		return err
	}
	return nil
}

func (c *Redis) get(ctx context.Context, key string, value interface{}) error {
	result, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(result), value)
}

func (c *Redis) UpdateConcentrationReport(ctx context.Context, protocol string, report *types.MetricsReport) error {
	return c.set(ctx, fmt.Sprintf(KeyConcentrationReport, protocol), report)
}

func (c *Redis) ConcentrationReport(ctx context.Context, protocol string) (*types.MetricsReport, error) {
	var report *types.MetricsReport
	if err := c.get(ctx, fmt.Sprintf(KeyConcentrationReport, protocol), &report); err != nil {
		return nil, err
	}
	return report, nil
}

func (c *Redis) UpdateBlockReport(ctx context.Context, protocol string, report *types.BlockResult) error {
	return c.set(ctx, fmt.Sprintf(KeyBlockReport, protocol), report)
}

func (c *Redis) BlockReport(ctx context.Context, protocol string) (*types.BlockResult, error) {
	var report *types.BlockResult
	if err := c.get(ctx, fmt.Sprintf(KeyBlockReport, protocol), &report); err != nil {
		return nil, err
	}
	return report, nil
}

func (c *Redis) UpdateNetworkReport(ctx context.Context, protocol string, report *types.NetworkResult) error {
	return c.set(ctx, fmt.Sprintf(KeyNetworkReport, protocol), report)
}

func (c *Redis) NetworkReport(ctx context.Context, protocol string) (*types.NetworkResult, error) {
	var report *types.NetworkResult
	if err := c.get(ctx, fmt.Sprintf(KeyNetworkReport, protocol), &report); err != nil {
		return nil, err
	}
	return report, nil
}

func (c *Redis) UpdateTotalHolders(ctx context.Context, protocol string, holders uint64) error {
	if err := c.client.Set(ctx, fmt.Sprintf(KeyTotalHolders, protocol), strconv.FormatUint(holders, 10), 0).Err(); err != nil {
		c.logger.Warn("cannot set total holders", zap.Error(err), zap.String("protocol", protocol))
		return err
	}
	return nil
}

func (c *Redis) TotalHolders(ctx context.Context, protocol string) uint64 {
	result, err := c.client.Get(ctx, fmt.Sprintf(KeyTotalHolders, protocol)).Result()
	if err != nil {
		return 0
	}
	return utils.StrToUint64(result)
}

func (c *Redis) UpdateServerStatus(ctx context.Context, serverStatus *types.ServerStatus) error {
	data, err := json.Marshal(serverStatus)
	if err != nil {
		return err
	}
	if _, err := c.client.Set(ctx, KeyServerStatus, string(data), 0).Result(); err != nil {
		return err
	}
	return nil
}

func (c *Redis) ServerStatus(ctx context.Context) (*types.ServerStatus, error) {
	result, err := c.client.Get(ctx, KeyServerStatus).Result()
	if err != nil {
		return nil, err
	}
	var status *types.ServerStatus
	if err := json.Unmarshal([]byte(result), &status); err != nil {
		return nil, err
	}
	return status, nil
}
