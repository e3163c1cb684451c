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

type IDelegations interface {
	createDelegationsCollectionIndexes() []mongo.IndexModel
	UpsertDelegations(ctx context.Context, delegations []*types.Delegation) error
	Delegations(ctx context.Context, protocol string, pagination *types.Pagination) ([]*types.Delegation, uint64, error)
	AllDelegations(ctx context.Context, protocol string) ([]*types.Delegation, error)
	UniqueDelegates(ctx context.Context, protocol string) (int, error)
	RemoveDelegations(ctx context.Context, protocol string) error
}

func (m *mongoDB) createDelegationsCollectionIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "protocol", Value: 1}, {Key: "delegator", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.M{"delegate": 1}, Options: options.Index().SetSparse(true)},
	}
}

// UpsertDelegations writes one document per delegator, so a re-delegation
// replaces the previous record instead of accumulating next to it.
func (m *mongoDB) UpsertDelegations(ctx context.Context, delegations []*types.Delegation) error {
	lgr := m.logger.With(zap.String("method", "UpsertDelegations"))
	startUpsertTime := time.Now()
	var models []mongo.WriteModel
	for _, d := range delegations {
		models = append(models, mongo.NewUpdateOneModel().SetUpsert(true).SetFilter(bson.M{"protocol": d.Protocol, "delegator": d.Delegator}).SetUpdate(bson.M{"$set": d}))
	}
	if len(models) == 0 {
		return nil
	}
	if _, err := m.wrapper.C(cDelegations).BulkUpsert(models); err != nil {
		lgr.Warn("cannot write delegations", zap.Error(err))
		return err
	}
	lgr.Debug("Finished upsert", zap.Duration("Total", time.Since(startUpsertTime)))
	return nil
}

func (m *mongoDB) Delegations(ctx context.Context, protocol string, pagination *types.Pagination) ([]*types.Delegation, uint64, error) {
	var (
		delegations []*types.Delegation
		opts        []*options.FindOptions
	)
	if pagination != nil {
		pagination.Sanitize()
		opts = append(opts, options.Find().SetSkip(int64(pagination.Skip)), options.Find().SetLimit(int64(pagination.Limit)))
	}
	crit := bson.M{"protocol": protocol}
	cursor, err := m.wrapper.C(cDelegations).Find(crit, opts...)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &delegations); err != nil {
		return nil, 0, err
	}
	total, err := m.wrapper.C(cDelegations).Count(crit)
	if err != nil {
		return nil, 0, err
	}
	return delegations, uint64(total), nil
}

func (m *mongoDB) AllDelegations(ctx context.Context, protocol string) ([]*types.Delegation, error) {
	var delegations []*types.Delegation
	cursor, err := m.wrapper.C(cDelegations).Find(bson.M{"protocol": protocol}, options.Find().SetSort(bson.M{"updatedAt": 1}))
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &delegations); err != nil {
		return nil, err
	}
	return delegations, nil
}

func (m *mongoDB) UniqueDelegates(ctx context.Context, protocol string) (int, error) {
	data, err := m.wrapper.C(cDelegations).Distinct("delegate", bson.M{"protocol": protocol})
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

func (m *mongoDB) RemoveDelegations(ctx context.Context, protocol string) error {
	if _, err := m.wrapper.C(cDelegations).RemoveAll(bson.M{"protocol": protocol}); err != nil {
		return err
	}
	return nil
}
