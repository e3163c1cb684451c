// Package db
package db

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"
)

type Adapter string

const (
	MGO Adapter = "mgo"
)

type Config struct {
	DbAdapter Adapter
	DbName    string
	URL       string
	MinConn   int
	MaxConn   int
	FlushDB   bool

	Logger *zap.Logger
}

type Client interface {
	ping() error
	dropCollection(collectionName string)
	dropDatabase(ctx context.Context) error

	IHolders
	IProposals
	IDelegations
	IReports

	// Stats
	UpdateStats(ctx context.Context, stats *types.ProtocolStats) error
	Stats(ctx context.Context, protocol string) (*types.ProtocolStats, error)
	Protocols(ctx context.Context) ([]string, error)
}

func NewClient(cfg Config) (Client, error) {
	switch cfg.DbAdapter {
	case MGO:
		return newMongoDB(cfg)
	default:
		return nil, errors.New("invalid db config")
	}
}
