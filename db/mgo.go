// Package db
package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"
)

const (
	cHolders     = "Holders"
	cProposals   = "Proposals"
	cDelegations = "Delegations"
	cReports     = "Reports"
	cStats       = "Stats"
)

type mongoDB struct {
	logger  *zap.Logger
	wrapper *Mgo
	db      *mongo.Database
}

func newMongoDB(cfg Config) (*mongoDB, error) {
	ctx := context.Background()
	dbClient := &mongoDB{
		logger:  cfg.Logger,
		wrapper: &Mgo{},
	}
	mgoOptions := options.Client()
	mgoOptions.ApplyURI(cfg.URL)
	mgoOptions.SetMinPoolSize(uint64(cfg.MinConn))
	mgoOptions.SetMaxPoolSize(uint64(cfg.MaxConn))
	mgoClient, err := mongo.NewClient(mgoOptions)
	if err != nil {
		return nil, err
	}

	if err := mgoClient.Connect(context.Background()); err != nil {
		return nil, err
	}

	dbClient.db = mgoClient.Database(cfg.DbName)
	dbClient.wrapper.Database(dbClient.db)

	if cfg.FlushDB {
		cfg.Logger.Info("Start flush database")
		if err := mgoClient.Database(cfg.DbName).Drop(ctx); err != nil {
			return nil, err
		}
	}
	_ = createIndexes(dbClient)

	return dbClient, nil
}

func createIndexes(dbClient *mongoDB) error {
	type CIndex struct {
		c     string
		model []mongo.IndexModel
	}

	indexes := []CIndex{
		{c: cHolders, model: dbClient.createHoldersCollectionIndexes()},
		{c: cProposals, model: dbClient.createProposalsCollectionIndexes()},
		{c: cDelegations, model: dbClient.createDelegationsCollectionIndexes()},
		{c: cReports, model: []mongo.IndexModel{{Keys: bson.D{{Key: "protocol", Value: 1}, {Key: "kind", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)}}},
		{c: cStats, model: []mongo.IndexModel{{Keys: bson.M{"protocol": 1}, Options: options.Index().SetUnique(true).SetSparse(true)}}},
	}
	for _, cIdx := range indexes {
		if err := dbClient.wrapper.C(cIdx.c).EnsureIndex(cIdx.model); err != nil {
			return err
		}
	}
	return nil
}

//region General

func (m *mongoDB) ping() error {
	return nil
}

func (m *mongoDB) dropCollection(collectionName string) {
	if _, err := m.wrapper.C(collectionName).RemoveAll(nil); err != nil {
		return
	}
}

func (m *mongoDB) dropDatabase(ctx context.Context) error {
	return m.wrapper.DropDatabase(ctx)
}

//endregion General

// region Stats

func (m *mongoDB) UpdateStats(ctx context.Context, stats *types.ProtocolStats) error {
	stats.UpdatedAt = time.Now().Unix()
	if _, err := m.wrapper.C(cStats).Upsert(bson.M{"protocol": stats.Protocol}, stats); err != nil {
		m.logger.Warn("cannot update stats", zap.Error(err), zap.String("protocol", stats.Protocol))
		return err
	}
	return nil
}

func (m *mongoDB) Stats(ctx context.Context, protocol string) (*types.ProtocolStats, error) {
	var stats *types.ProtocolStats
	if err := m.wrapper.C(cStats).FindOne(bson.M{"protocol": protocol}).Decode(&stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Protocols lists every protocol with at least one stored holder.
func (m *mongoDB) Protocols(ctx context.Context) ([]string, error) {
	data, err := m.wrapper.C(cHolders).Distinct("protocol", bson.M{})
	if err != nil {
		return nil, err
	}
	protocols := make([]string, 0, len(data))
	for _, d := range data {
		if p, ok := d.(string); ok && p != "" {
			protocols = append(protocols, p)
		}
	}
	return protocols, nil
}

// endregion Stats
