package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"
)

type IHolders interface {
	createHoldersCollectionIndexes() []mongo.IndexModel
	UpdateHolders(ctx context.Context, holders []*types.Holder) error
	GetListHolders(ctx context.Context, filter *types.HolderFilter) ([]*types.Holder, uint64, error)
	AllHolders(ctx context.Context, protocol string) ([]*types.Holder, error)
	RemoveHolders(ctx context.Context, protocol string) error
}

func (m *mongoDB) createHoldersCollectionIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.M{"balanceFloat": -1}, Options: options.Index().SetSparse(true)},
		{Keys: bson.M{"protocol": 1}, Options: options.Index().SetSparse(true)},
		{Keys: bson.M{"address": 1}, Options: options.Index().SetSparse(true)},
	}
}

func (m *mongoDB) UpdateHolders(ctx context.Context, holders []*types.Holder) error {
	holdersBulkWriter := make([]mongo.WriteModel, len(holders))
	for i := range holders {
		holderModel := mongo.NewUpdateOneModel().SetUpsert(true).SetFilter(bson.M{"address": holders[i].Address, "protocol": holders[i].Protocol}).SetUpdate(bson.M{"$set": holders[i]})
		holdersBulkWriter[i] = holderModel
	}
	if len(holdersBulkWriter) > 0 {
		if _, err := m.wrapper.C(cHolders).BulkWrite(holdersBulkWriter); err != nil {
			return err
		}
	}
	return nil
}

func (m *mongoDB) GetListHolders(ctx context.Context, filter *types.HolderFilter) ([]*types.Holder, uint64, error) {
	var (
		holders []*types.Holder
		crit    = bson.M{}
	)
	critBytes, err := bson.Marshal(filter)
	if err != nil {
		m.logger.Warn("Cannot marshal holder filter criteria", zap.Error(err))
	}
	err = bson.Unmarshal(critBytes, &crit)
	if err != nil {
		m.logger.Warn("Cannot unmarshal holder filter criteria", zap.Error(err))
	}
	opts := []*options.FindOptions{
		options.Find().SetSort(bson.M{"balanceFloat": -1}),
	}
	if filter.Pagination != nil {
		filter.Pagination.Sanitize()
		opts = append(opts, options.Find().SetSkip(int64(filter.Pagination.Skip)), options.Find().SetLimit(int64(filter.Pagination.Limit)))
	}
	cursor, err := m.wrapper.C(cHolders).Find(crit, opts...)
	if err != nil {
		return nil, 0, err
	}

	if err := cursor.All(ctx, &holders); err != nil {
		return nil, 0, err
	}

	total, err := m.wrapper.C(cHolders).Count(crit)
	if err != nil {
		return nil, 0, err
	}

	return holders, uint64(total), nil
}

// AllHolders loads the full holder set of a protocol, unpaginated. The
// analysis jobs need the complete distribution, not a page of it.
func (m *mongoDB) AllHolders(ctx context.Context, protocol string) ([]*types.Holder, error) {
	var holders []*types.Holder
	cursor, err := m.wrapper.C(cHolders).Find(bson.M{"protocol": protocol}, options.Find().SetSort(bson.M{"balanceFloat": -1}))
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &holders); err != nil {
		return nil, err
	}
	return holders, nil
}

func (m *mongoDB) RemoveHolders(ctx context.Context, protocol string) error {
	if _, err := m.wrapper.C(cHolders).RemoveAll(bson.M{"protocol": protocol}); err != nil {
		return err
	}
	return nil
}
